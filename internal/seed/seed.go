package seed

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/store"
)

// DeviceDef describes one device in a seed file.
type DeviceDef struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
	Site string `yaml:"site"`
}

type seedFile struct {
	Devices []DeviceDef `yaml:"devices"`
}

// Default returns the built-in seed set.
func Default() []DeviceDef {
	return []DeviceDef{
		{ID: 1, Name: "Device Alpha", Site: "Building A"},
		{ID: 2, Name: "Device Beta", Site: "Building B"},
		{ID: 3, Name: "Device Gamma", Site: "Building C"},
		{ID: 4, Name: "Device Delta", Site: "Warehouse"},
		{ID: 5, Name: "Device Epsilon", Site: "Office"},
	}
}

// LoadFile reads device definitions from a YAML file.
func LoadFile(path string) ([]DeviceDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(f.Devices) == 0 {
		return nil, fmt.Errorf("seed file %s defines no devices", path)
	}
	return f.Devices, nil
}

// Apply populates the stores: every device from defs, plus
// readingsPerDevice random readings spread over the past six hours
// (10-60 kW), mirroring what the dashboard shows on a fresh start.
func Apply(devices *store.DeviceStore, readings *store.ReadingStore, defs []DeviceDef, readingsPerDevice int, now time.Time) {
	for _, def := range defs {
		devices.Add(domain.Device{ID: def.ID, Name: def.Name, Site: def.Site})
		for i := 0; i < readingsPerDevice; i++ {
			hoursAgo := rand.Float64() * 6
			readings.Insert(domain.Reading{
				DeviceID:     def.ID,
				Timestamp:    now.Add(-time.Duration(hoursAgo * float64(time.Hour))),
				PowerUsageKw: rand.Float64()*50 + 10,
			})
		}
	}
}
