package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-reporter/internal/report"
	"github.com/i474232898/weather-reporter/internal/weather"
)

var validate = validator.New()

// scheduledMessage is the fixed acknowledgment returned on successful
// scheduling. The caller learns nothing further about the background run.
const scheduledMessage = "Weather report generation started. You will receive an email soon."

// Reporter schedules background report generation.
type Reporter interface {
	Schedule(req report.Request) <-chan error
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc Reporter, defaultTimezone string) {
	app.Post("/weather_report", func(c *fiber.Ctx) error {
		var body reportRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}

		// Fire and forget: the response is written before any external
		// call executes. The completion channel is intentionally dropped.
		svc.Schedule(body.toRequest(defaultTimezone))

		return c.JSON(fiber.Map{"message": scheduledMessage})
	})
}

// reportRequestBody mirrors the inbound JSON contract.
type reportRequestBody struct {
	Locations      []locationBody   `json:"locations" validate:"required,min=1,dive"`
	Preferences    *preferencesBody `json:"preferences"`
	ReceiverEmails []string         `json:"receiverEmails" validate:"required,min=1,dive,email"`
	Timezone       string           `json:"timezone"`
}

type locationBody struct {
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// preferencesBody uses pointers so omitted flags fall back to their defaults:
// temperature on, everything else off.
type preferencesBody struct {
	Temperature *bool `json:"temperature"`
	Humidity    *bool `json:"humidity"`
	WindSpeed   *bool `json:"windSpeed"`
	Cloudiness  *bool `json:"cloudiness"`
}

func (b reportRequestBody) toRequest(defaultTimezone string) report.Request {
	prefs := weather.DefaultPreferences()
	if p := b.Preferences; p != nil {
		if p.Temperature != nil {
			prefs.Temperature = *p.Temperature
		}
		if p.Humidity != nil {
			prefs.Humidity = *p.Humidity
		}
		if p.WindSpeed != nil {
			prefs.WindSpeed = *p.WindSpeed
		}
		if p.Cloudiness != nil {
			prefs.Cloudiness = *p.Cloudiness
		}
	}

	timezone := b.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}

	locs := make([]weather.Location, 0, len(b.Locations))
	for _, l := range b.Locations {
		locs = append(locs, weather.Location{City: l.City, Country: l.Country})
	}

	return report.Request{
		Locations:   locs,
		Preferences: prefs,
		Recipients:  b.ReceiverEmails,
		Timezone:    timezone,
	}
}
