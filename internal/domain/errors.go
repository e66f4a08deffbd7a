package domain

import "fmt"

// DeviceNotFoundError signals that the referenced device id is not
// known to the device store. It carries the id so transports can echo
// it back.
type DeviceNotFoundError struct {
	DeviceID int64
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("device %d not found", e.DeviceID)
}

// ValidationError signals a rejected field on a write operation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewInvalidPower(value float64) *ValidationError {
	return &ValidationError{
		Field:   "powerUsageKw",
		Message: fmt.Sprintf("must be >= 0, got %v", value),
	}
}

func NewInvalidTimestamp(raw string) *ValidationError {
	return &ValidationError{
		Field:   "timestamp",
		Message: fmt.Sprintf("not a valid RFC3339 timestamp: %q", raw),
	}
}
