package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"telemetry-dashboard-go/internal/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New() *Client {
	base := os.Getenv("API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return &Client{
		baseURL: base,
		http: &http.Client{ Timeout: 10 * time.Second },
	}
}

func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	var out models.Health
	if err := c.getJSON(ctx, "/health", &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Devices(ctx context.Context) ([]models.Device, error) {
	var out []models.Device
	if err := c.getJSON(ctx, "/devices", &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Readings(ctx context.Context, deviceID int64, limit int) ([]models.Reading, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	var out []models.Reading
	if err := c.getJSON(ctx, fmt.Sprintf("/devices/%d/readings", deviceID), &out, params); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RecordReading(ctx context.Context, deviceID int64, powerUsageKw float64, timestamp string) (*models.Reading, error) {
	payload := models.CreateReadingRequest{ PowerUsageKw: powerUsageKw, Timestamp: timestamp }
	b, _ := json.Marshal(payload)
	u := fmt.Sprintf("%s/devices/%d/readings", c.baseURL, deviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil { return nil, err }
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil { return nil, err }
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		var apiErr models.APIError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("record reading failed: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("record reading failed: %s", resp.Status)
	}
	var out models.Reading
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return nil, err }
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any, params url.Values) error {
	u := c.baseURL + path
	if params != nil {
		if query := params.Encode(); query != "" {
			u += "?" + query
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil { return err }
	resp, err := c.http.Do(req)
	if err != nil { return err }
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
