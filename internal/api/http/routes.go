package httpapi

import (
	"bytes"
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/climatrack/climatrack/internal/config"
	"github.com/climatrack/climatrack/internal/export"
	"github.com/climatrack/climatrack/internal/ingest"
	"github.com/climatrack/climatrack/internal/observation"
)

var validate = validator.New()

// GeoProxy is the simple reverse-geocode lookup behind the passthrough
// endpoint.
type GeoProxy interface {
	ReverseRaw(ctx context.Context, lat, lon string) ([]byte, error)
}

// cityParam holds the on-demand ingestion path parameter.
type cityParam struct {
	City string `validate:"required"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Error
// bodies use the fixed {"error": "..."} shape; upstream failures never
// leak their own error bodies to callers.
func RegisterRoutes(app *fiber.App, cfg *config.AppConfig, service *ingest.Service, geo GeoProxy, store observation.Store) {
	app.Get("/weather/:city", func(c *fiber.Ctx) error {
		if cfg.APIKey == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server missing OPENWEATHER_API_KEY",
			})
		}

		p := cityParam{City: c.Params("city")}
		if err := validate.Struct(p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := service.IngestCity(c.UserContext(), p.City)
		if err != nil {
			log.Printf("http: on-demand ingest failed for %s: %v", p.City, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Weather fetch failed",
			})
		}

		return c.JSON(result)
	})

	app.Get("/reverse-geocode", func(c *fiber.Ctx) error {
		body, err := geo.ReverseRaw(c.UserContext(), c.Query("lat"), c.Query("lon"))
		if err != nil {
			log.Printf("http: reverse geocode passthrough failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to fetch location",
			})
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	})

	app.Get("/download-csv", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		err := export.WriteCSV(&buf, store.FindAll())
		if errors.Is(err, export.ErrNoData) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No data found",
			})
		}
		if err != nil {
			log.Printf("http: csv generation failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error generating CSV",
			})
		}

		c.Attachment("weather_data.csv")
		c.Set(fiber.HeaderContentType, "text/csv")
		return c.Send(buf.Bytes())
	})
}
