package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/service"
)

type errorDetail struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

func writeError(c *fiber.Ctx, code int, message string, details any) error {
	return c.Status(code).JSON(errorBody{Error: errorDetail{Message: message, Details: details}})
}

func deviceNotFound(c *fiber.Ctx, deviceID any) error {
	return writeError(c, fiber.StatusNotFound, "Device not found", fiber.Map{"deviceId": deviceID})
}

type createReadingRequest struct {
	PowerUsageKw *float64 `json:"powerUsageKw"`
	Timestamp    string   `json:"timestamp"`
}

func Register(app *fiber.App, svcs *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/devices", func(c *fiber.Ctx) error {
		return c.JSON(svcs.Query.ListDevicesWithStatus())
	})

	app.Get("/devices/:id/readings", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			// Unparseable id behaves like a lookup miss.
			return deviceNotFound(c, c.Params("id"))
		}

		// Missing or unparseable limit falls back to the default.
		limit := c.QueryInt("limit", 0)

		items, err := svcs.Query.ListReadingsForDevice(id, limit)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(items)
	})

	app.Post("/devices/:id/readings", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return deviceNotFound(c, c.Params("id"))
		}

		var req createReadingRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body", nil)
		}
		if req.PowerUsageKw == nil {
			return writeError(c, fiber.StatusBadRequest, "powerUsageKw is required", nil)
		}

		created, err := svcs.Query.RecordReading(id, *req.PowerUsageKw, req.Timestamp)
		if err != nil {
			return mapDomainError(c, err)
		}
		metrics.ReadingRecorded()
		return c.Status(fiber.StatusCreated).JSON(created)
	})
}

func mapDomainError(c *fiber.Ctx, err error) error {
	var notFound *domain.DeviceNotFoundError
	if errors.As(err, &notFound) {
		return deviceNotFound(c, notFound.DeviceID)
	}
	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		return writeError(c, fiber.StatusBadRequest, invalid.Error(), fiber.Map{"field": invalid.Field})
	}
	return writeError(c, fiber.StatusInternalServerError, "Internal server error", nil)
}
