package store

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/domain"
)

// DefaultLimit is applied when a caller asks for recent readings
// without a usable limit.
const DefaultLimit = 20

type storedReading struct {
	reading domain.Reading
	seq     uint64
}

// ReadingStore is an append-only in-memory log of readings keyed by
// device. Readings are immutable once inserted.
type ReadingStore struct {
	mu       sync.RWMutex
	byDevice map[int64][]storedReading
	count    int
	seq      uint64
}

func NewReadingStore() *ReadingStore {
	return &ReadingStore{byDevice: make(map[int64][]storedReading)}
}

// Insert stores a reading, assigning a fresh id when absent, and
// returns the stored record.
func (s *ReadingStore) Insert(r domain.Reading) domain.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.seq++
	s.byDevice[r.DeviceID] = append(s.byDevice[r.DeviceID], storedReading{reading: r, seq: s.seq})
	s.count++
	return r
}

// ListByDevice returns every reading for the device, newest timestamp
// first. Readings with the same timestamp are ordered most recently
// inserted first so the ordering stays deterministic.
func (s *ReadingStore) ListByDevice(deviceID int64) []domain.Reading {
	s.mu.RLock()
	stored := make([]storedReading, len(s.byDevice[deviceID]))
	copy(stored, s.byDevice[deviceID])
	s.mu.RUnlock()

	sort.Slice(stored, func(i, j int) bool {
		ti, tj := stored[i].reading.Timestamp, stored[j].reading.Timestamp
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return stored[i].seq > stored[j].seq
	})

	out := make([]domain.Reading, len(stored))
	for i, sr := range stored {
		out[i] = sr.reading
	}
	return out
}

// RecentByDevice returns the newest readings truncated to limit. A
// non-positive limit falls back to DefaultLimit.
func (s *ReadingStore) RecentByDevice(deviceID int64, limit int) []domain.Reading {
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := s.ListByDevice(deviceID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Count reports the total number of stored readings.
func (s *ReadingStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
