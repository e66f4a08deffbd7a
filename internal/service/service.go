package service

import (
	"time"

	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/status"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/store"
)

type Services struct {
	Devices  *store.DeviceStore
	Readings *store.ReadingStore
	Query    *QueryService
}

func New(devices *store.DeviceStore, readings *store.ReadingStore, engine *status.Engine) *Services {
	return &Services{
		Devices:  devices,
		Readings: readings,
		Query: &QueryService{
			devices:  devices,
			readings: readings,
			engine:   engine,
			now:      time.Now,
		},
	}
}

// QueryService answers the dashboard queries and owns the single
// mutating entry point for telemetry. It holds no state of its own;
// all reads and writes go through the stores.
type QueryService struct {
	devices  *store.DeviceStore
	readings *store.ReadingStore
	engine   *status.Engine
	now      func() time.Time
}

// SetClock overrides the service clock. Tests use this to pin "now".
func (q *QueryService) SetClock(now func() time.Time) {
	q.now = now
}

// ListDevicesWithStatus returns every device in store order with its
// derived status overlaid.
func (q *QueryService) ListDevicesWithStatus() []domain.Device {
	now := q.now()
	devices := q.devices.List()
	for i := range devices {
		devices[i].Status = q.engine.Derive(q.readings.ListByDevice(devices[i].ID), now)
	}
	return devices
}

// ListReadingsForDevice returns the device's newest readings truncated
// to limit (non-positive limit falls back to the store default).
func (q *QueryService) ListReadingsForDevice(deviceID int64, limit int) ([]domain.Reading, error) {
	if _, ok := q.devices.Get(deviceID); !ok {
		return nil, &domain.DeviceNotFoundError{DeviceID: deviceID}
	}
	return q.readings.RecentByDevice(deviceID, limit), nil
}

// RecordReading validates and stores a new reading. rawTimestamp is
// optional; when empty the reading is stamped with the current time,
// otherwise it must parse as RFC3339. Nothing is stored when
// validation fails.
func (q *QueryService) RecordReading(deviceID int64, powerUsageKw float64, rawTimestamp string) (domain.Reading, error) {
	if powerUsageKw < 0 {
		return domain.Reading{}, domain.NewInvalidPower(powerUsageKw)
	}
	if _, ok := q.devices.Get(deviceID); !ok {
		return domain.Reading{}, &domain.DeviceNotFoundError{DeviceID: deviceID}
	}

	ts := q.now()
	if rawTimestamp != "" {
		parsed, err := time.Parse(time.RFC3339, rawTimestamp)
		if err != nil {
			return domain.Reading{}, domain.NewInvalidTimestamp(rawTimestamp)
		}
		ts = parsed
	}

	return q.readings.Insert(domain.Reading{
		DeviceID:     deviceID,
		Timestamp:    ts,
		PowerUsageKw: powerUsageKw,
	}), nil
}
