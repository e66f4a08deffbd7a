package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/config"
)

type createReading struct {
	PowerUsageKw float64 `json:"powerUsageKw"`
	Timestamp    string  `json:"timestamp,omitempty"`
}

// Posts a stream of random readings for the seeded devices through the
// public create endpoint.
func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	viper.SetDefault("SIMULATOR_API_URL", "http://localhost:8080")
	viper.SetDefault("SIMULATOR_COUNT", 100)

	base := viper.GetString("SIMULATOR_API_URL")
	count := viper.GetInt("SIMULATOR_COUNT")
	client := &http.Client{Timeout: 10 * time.Second}

	for i := 0; i < count; i++ {
		deviceID := rand.Int63n(5) + 1
		r := createReading{PowerUsageKw: rand.Float64()*50 + 10}
		payload, _ := json.Marshal(r)

		url := fmt.Sprintf("%s/devices/%d/readings", base, deviceID)
		resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
		if err != nil {
			log.Error().Err(err).Str("url", url).Msg("post failed")
			time.Sleep(500 * time.Millisecond)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			log.Error().Int("status", resp.StatusCode).Str("url", url).Msg("unexpected response")
		}
		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Msg("simulation done")
}
