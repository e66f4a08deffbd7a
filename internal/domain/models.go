package domain

import "time"

// DeviceStatus is derived from a device's most recent reading, never
// stored authoritatively.
type DeviceStatus string

const (
	StatusOnline  DeviceStatus = "online"
	StatusWarning DeviceStatus = "warning"
	StatusOffline DeviceStatus = "offline"
)

type Device struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Site   string       `json:"site"`
	Status DeviceStatus `json:"status"`
}

type Reading struct {
	ID           string    `json:"id"`
	DeviceID     int64     `json:"deviceId"`
	Timestamp    time.Time `json:"timestamp"`
	PowerUsageKw float64   `json:"powerUsageKw"`
}
