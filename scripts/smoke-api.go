package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Smoke test against a running API: health check, device listing,
// record one reading, then verify it shows up first in the history.
func main() {
	base := flag.String("url", "http://localhost:8080", "API base URL")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	var health struct {
		Status string `json:"status"`
	}
	mustGet(client, *base+"/health", &health)
	if health.Status != "ok" {
		log.Fatalf("health check returned %q", health.Status)
	}
	log.Println("health ok")

	var devices []struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	mustGet(client, *base+"/devices", &devices)
	if len(devices) == 0 {
		log.Fatal("no devices seeded")
	}
	log.Printf("%d devices, first: %s (%s)", len(devices), devices[0].Name, devices[0].Status)

	target := devices[0].ID
	payload, _ := json.Marshal(map[string]any{"powerUsageKw": 42.0})
	resp, err := client.Post(fmt.Sprintf("%s/devices/%d/readings", *base, target), "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("record reading failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("record reading: expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Fatalf("decode created reading: %v", err)
	}
	log.Printf("recorded reading %s", created.ID)

	var readings []struct {
		ID string `json:"id"`
	}
	mustGet(client, fmt.Sprintf("%s/devices/%d/readings?limit=1", *base, target), &readings)
	if len(readings) != 1 || readings[0].ID != created.ID {
		log.Fatalf("expected new reading first in history, got %+v", readings)
	}
	log.Println("smoke test passed")
}

func mustGet(client *http.Client, url string, out any) {
	resp, err := client.Get(url)
	if err != nil {
		log.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Fatalf("GET %s: decode: %v", url, err)
	}
}
