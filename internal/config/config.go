package config

import (
	"time"

	"github.com/spf13/viper"
)

func Load() error {
	// API Configuration
	viper.SetDefault("API_ADDR", ":8080")
	viper.SetDefault("CORS_ORIGIN", "http://localhost:5173")

	// Status derivation thresholds (minutes since latest reading)
	viper.SetDefault("STATUS_WARNING_AFTER_MINUTES", 30)
	viper.SetDefault("STATUS_OFFLINE_AFTER_MINUTES", 120)

	// Seeding
	viper.SetDefault("SEED_FILE", "")
	viper.SetDefault("SEED_READINGS_PER_DEVICE", 5)

	viper.AutomaticEnv()
	return nil
}

func APIAddr() string     { return viper.GetString("API_ADDR") }
func CORSOrigin() string  { return viper.GetString("CORS_ORIGIN") }
func SeedFile() string    { return viper.GetString("SEED_FILE") }
func SeedReadings() int   { return viper.GetInt("SEED_READINGS_PER_DEVICE") }

func WarningAfter() time.Duration {
	return time.Duration(viper.GetInt("STATUS_WARNING_AFTER_MINUTES")) * time.Minute
}

func OfflineAfter() time.Duration {
	return time.Duration(viper.GetInt("STATUS_OFFLINE_AFTER_MINUTES")) * time.Minute
}
