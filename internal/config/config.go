package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-reporter/internal/weather"
)

// AppConfig is the immutable process configuration, read once at startup and
// passed explicitly into the components that need it.
type AppConfig struct {
	// Weather provider.
	OWMAPIKey string

	// Email provider.
	SendGridAPIKey string
	SenderEmail    string

	// Azure OpenAI narration.
	AzureOpenAIEndpoint   string
	AzureOpenAIAPIKey     string
	AzureOpenAIDeployment string
	AzureOpenAIAPIVersion string

	// Optional Google geocoding fallback for the pollution lookup.
	GeocoderAPIKey string

	// Persona registry file.
	PersonaFile string

	// HTMLEmail selects the report body format.
	HTMLEmail bool

	// DefaultTimezone applies when a request omits its timezone.
	DefaultTimezone string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	Port string

	// Optional daily scheduled report.
	DailyReportAt         string
	DailyReportRecipients []string
	DailyReportLocations  []weather.Location
}

// Load reads configuration from environment with sensible defaults. Missing
// provider credentials are not an error here; the affected call fails when it
// is first attempted.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OWMAPIKey = os.Getenv("OWM_API_KEY")
	cfg.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	cfg.SenderEmail = os.Getenv("SENDER_EMAIL")

	cfg.AzureOpenAIEndpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")
	cfg.AzureOpenAIAPIKey = os.Getenv("AZURE_OPENAI_API_KEY")
	cfg.AzureOpenAIDeployment = os.Getenv("AZURE_OPENAI_DEPLOYMENT")
	cfg.AzureOpenAIAPIVersion = getenvDefault("AZURE_OPENAI_API_VERSION", "2024-02-01")

	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	cfg.PersonaFile = getenvDefault("PERSONA_FILE", "personas.json")
	cfg.DefaultTimezone = getenvDefault("DEFAULT_TIMEZONE", "Asia/Kolkata")
	cfg.HTMLEmail = getenvDefault("EMAIL_FORMAT", "html") != "text"
	cfg.Port = getenvDefault("PORT", "8080")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.DailyReportAt = getenvDefault("DAILY_REPORT_AT", "07:00")
	cfg.DailyReportRecipients = splitList(os.Getenv("DAILY_REPORT_RECIPIENTS"))

	locs, err := loadDailyReportLocations()
	if err != nil {
		return nil, err
	}
	cfg.DailyReportLocations = locs

	return cfg, nil
}

// loadDailyReportLocations pairs DAILY_REPORT_CITIES with
// DAILY_REPORT_COUNTRIES, both comma-separated.
func loadDailyReportLocations() ([]weather.Location, error) {
	cities := splitList(os.Getenv("DAILY_REPORT_CITIES"))
	countries := splitList(os.Getenv("DAILY_REPORT_COUNTRIES"))
	if len(cities) != len(countries) {
		return nil, fmt.Errorf("number of daily report cities and countries must be the same")
	}

	var locs []weather.Location
	for i := range cities {
		locs = append(locs, weather.Location{
			City:    cities[i],
			Country: countries[i],
		})
	}
	return locs, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
