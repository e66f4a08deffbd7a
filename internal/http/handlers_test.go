package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/domain"
	httpHandlers "github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/http"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/service"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/status"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/store"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type errorBody struct {
	Error struct {
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newApp() (*fiber.App, *store.DeviceStore, *store.ReadingStore) {
	devices := store.NewDeviceStore()
	readings := store.NewReadingStore()
	engine := status.NewEngine(30*time.Minute, 120*time.Minute)
	svcs := service.New(devices, readings, engine)
	svcs.Query.SetClock(func() time.Time { return testNow })

	app := fiber.New()
	httpHandlers.Register(app, svcs)
	return app, devices, readings
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body []byte) (*nethttp.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Reading response body failed: %v", err)
	}
	resp.Body.Close()
	return resp, raw
}

func TestHealth(t *testing.T) {
	app, _, _ := newApp()

	resp, raw := doRequest(t, app, "GET", "/health", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestListDevices(t *testing.T) {
	app, devices, readings := newApp()
	devices.Add(domain.Device{ID: 1, Name: "Device Alpha", Site: "Building A"})
	readings.Insert(domain.Reading{DeviceID: 1, Timestamp: testNow.Add(-5 * time.Minute), PowerUsageKw: 20})

	resp, raw := doRequest(t, app, "GET", "/devices", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var out []domain.Device
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("Expected 1 device, got %d", len(out))
	}
	if out[0].Status != domain.StatusOnline {
		t.Errorf("Expected derived status online, got %s", out[0].Status)
	}
}

func TestListReadings_UnknownDevice(t *testing.T) {
	app, _, _ := newApp()

	resp, raw := doRequest(t, app, "GET", "/devices/99999/readings", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("Expected 404, got %d", resp.StatusCode)
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body.Error.Message != "Device not found" {
		t.Errorf("Expected 'Device not found', got %q", body.Error.Message)
	}
	if body.Error.Details["deviceId"] != float64(99999) {
		t.Errorf("Expected deviceId 99999 in details, got %v", body.Error.Details["deviceId"])
	}
}

func TestListReadings_UnparseableID(t *testing.T) {
	app, _, _ := newApp()

	resp, _ := doRequest(t, app, "GET", "/devices/abc/readings", nil)
	if resp.StatusCode != 404 {
		t.Errorf("Expected 404 for unparseable id, got %d", resp.StatusCode)
	}
}

func TestListReadings_LimitApplied(t *testing.T) {
	app, devices, readings := newApp()
	devices.Add(domain.Device{ID: 1, Name: "Device Alpha", Site: "Building A"})
	for i := 0; i < 5; i++ {
		readings.Insert(domain.Reading{DeviceID: 1, Timestamp: testNow.Add(time.Duration(-i) * time.Minute), PowerUsageKw: 20})
	}

	resp, raw := doRequest(t, app, "GET", "/devices/1/readings?limit=2", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var out []domain.Reading
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Expected 2 readings, got %d", len(out))
	}
	if !out[0].Timestamp.Equal(testNow) {
		t.Errorf("Expected newest reading first, got %v", out[0].Timestamp)
	}
}

func TestListReadings_UnparseableLimitFallsBack(t *testing.T) {
	app, devices, readings := newApp()
	devices.Add(domain.Device{ID: 1, Name: "Device Alpha", Site: "Building A"})
	for i := 0; i < store.DefaultLimit+5; i++ {
		readings.Insert(domain.Reading{DeviceID: 1, Timestamp: testNow.Add(time.Duration(-i) * time.Minute), PowerUsageKw: 20})
	}

	resp, raw := doRequest(t, app, "GET", "/devices/1/readings?limit=abc", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var out []domain.Reading
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(out) != store.DefaultLimit {
		t.Errorf("Expected default limit %d readings, got %d", store.DefaultLimit, len(out))
	}
}

func TestCreateReading_Success(t *testing.T) {
	app, devices, readings := newApp()
	devices.Add(domain.Device{ID: 1, Name: "Device Alpha", Site: "Building A"})

	payload := []byte(`{"powerUsageKw": 33.5, "timestamp": "2026-03-15T11:00:00Z"}`)
	resp, raw := doRequest(t, app, "POST", "/devices/1/readings", payload)
	if resp.StatusCode != 201 {
		t.Fatalf("Expected 201, got %d: %s", resp.StatusCode, raw)
	}
	var created domain.Reading
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected created reading to carry an id")
	}
	if created.PowerUsageKw != 33.5 {
		t.Errorf("Expected power 33.5, got %v", created.PowerUsageKw)
	}
	if readings.Count() != 1 {
		t.Errorf("Expected 1 stored reading, got %d", readings.Count())
	}
}

func TestCreateReading_DefaultTimestamp(t *testing.T) {
	app, devices, _ := newApp()
	devices.Add(domain.Device{ID: 1, Name: "Device Alpha", Site: "Building A"})

	resp, raw := doRequest(t, app, "POST", "/devices/1/readings", []byte(`{"powerUsageKw": 10}`))
	if resp.StatusCode != 201 {
		t.Fatalf("Expected 201, got %d: %s", resp.StatusCode, raw)
	}
	var created domain.Reading
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !created.Timestamp.Equal(testNow) {
		t.Errorf("Expected call-time timestamp %v, got %v", testNow, created.Timestamp)
	}
}

func TestCreateReading_NegativePower(t *testing.T) {
	app, devices, readings := newApp()
	devices.Add(domain.Device{ID: 1, Name: "Device Alpha", Site: "Building A"})

	resp, _ := doRequest(t, app, "POST", "/devices/1/readings", []byte(`{"powerUsageKw": -1}`))
	if resp.StatusCode != 400 {
		t.Errorf("Expected 400 for negative power, got %d", resp.StatusCode)
	}
	if readings.Count() != 0 {
		t.Error("Expected store untouched after rejected reading")
	}
}

func TestCreateReading_MissingPower(t *testing.T) {
	app, devices, _ := newApp()
	devices.Add(domain.Device{ID: 1, Name: "Device Alpha", Site: "Building A"})

	resp, _ := doRequest(t, app, "POST", "/devices/1/readings", []byte(`{}`))
	if resp.StatusCode != 400 {
		t.Errorf("Expected 400 for missing power, got %d", resp.StatusCode)
	}
}

func TestCreateReading_BadTimestamp(t *testing.T) {
	app, devices, _ := newApp()
	devices.Add(domain.Device{ID: 1, Name: "Device Alpha", Site: "Building A"})

	resp, _ := doRequest(t, app, "POST", "/devices/1/readings", []byte(`{"powerUsageKw": 10, "timestamp": "yesterday"}`))
	if resp.StatusCode != 400 {
		t.Errorf("Expected 400 for bad timestamp, got %d", resp.StatusCode)
	}
}

func TestCreateReading_UnknownDevice(t *testing.T) {
	app, _, readings := newApp()

	resp, raw := doRequest(t, app, "POST", "/devices/7/readings", []byte(`{"powerUsageKw": 10}`))
	if resp.StatusCode != 404 {
		t.Fatalf("Expected 404, got %d", resp.StatusCode)
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body.Error.Details["deviceId"] != float64(7) {
		t.Errorf("Expected deviceId 7 in details, got %v", body.Error.Details["deviceId"])
	}
	if readings.Count() != 0 {
		t.Error("Expected store untouched after unknown device")
	}
}

func TestCreateReading_MalformedBody(t *testing.T) {
	app, devices, _ := newApp()
	devices.Add(domain.Device{ID: 1, Name: "Device Alpha", Site: "Building A"})

	resp, _ := doRequest(t, app, "POST", "/devices/1/readings", []byte(`{not json`))
	if resp.StatusCode != 400 {
		t.Errorf("Expected 400 for malformed body, got %d", resp.StatusCode)
	}
}
