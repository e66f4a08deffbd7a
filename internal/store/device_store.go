package store

import (
	"sync"

	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/domain"
)

// DeviceStore holds the device records in memory. Devices are added
// once at startup; there are no update or delete operations.
type DeviceStore struct {
	mu      sync.RWMutex
	devices []domain.Device
	byID    map[int64]int
}

func NewDeviceStore() *DeviceStore {
	return &DeviceStore{byID: make(map[int64]int)}
}

// Add registers a device. Re-adding an existing id overwrites the
// record in place and keeps the original position.
func (s *DeviceStore) Add(d domain.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.byID[d.ID]; ok {
		s.devices[i] = d
		return
	}
	s.byID[d.ID] = len(s.devices)
	s.devices = append(s.devices, d)
}

// List returns all devices in seed order.
func (s *DeviceStore) List() []domain.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Device, len(s.devices))
	copy(out, s.devices)
	return out
}

// Get looks up a device by id.
func (s *DeviceStore) Get(id int64) (domain.Device, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return domain.Device{}, false
	}
	return s.devices[i], true
}
