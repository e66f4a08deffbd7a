package models

type Device struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Site   string `json:"site"`
	Status string `json:"status"`
}

type Reading struct {
	ID           string  `json:"id"`
	DeviceID     int64   `json:"deviceId"`
	Timestamp    string  `json:"timestamp"`
	PowerUsageKw float64 `json:"powerUsageKw"`
}

type CreateReadingRequest struct {
	PowerUsageKw float64 `json:"powerUsageKw"`
	Timestamp    string  `json:"timestamp,omitempty"`
}

type Health struct {
	Status string `json:"status"`
}

type APIError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
