package status

import (
	"time"

	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/domain"
)

// Engine derives a device's operational status from its reading
// history. It holds no state beyond its thresholds and never mutates
// its input.
type Engine struct {
	warningAfter time.Duration
	offlineAfter time.Duration
}

// NewEngine creates an engine with the given staleness thresholds.
func NewEngine(warningAfter, offlineAfter time.Duration) *Engine {
	return &Engine{
		warningAfter: warningAfter,
		offlineAfter: offlineAfter,
	}
}

// Derive maps a device's readings to a status at the given instant.
// A device with no readings is offline. Otherwise the age of the
// newest reading decides: strictly older than offlineAfter is offline,
// strictly older than warningAfter is warning, anything else
// (including future-dated readings) is online.
func (e *Engine) Derive(readings []domain.Reading, now time.Time) domain.DeviceStatus {
	if len(readings) == 0 {
		return domain.StatusOffline
	}

	latest := readings[0].Timestamp
	for _, r := range readings[1:] {
		if r.Timestamp.After(latest) {
			latest = r.Timestamp
		}
	}

	age := now.Sub(latest)
	switch {
	case age > e.offlineAfter:
		return domain.StatusOffline
	case age > e.warningAfter:
		return domain.StatusWarning
	default:
		return domain.StatusOnline
	}
}
