package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/clima/internal/weather"
)

type AppConfig struct {
	OpenWeatherAPIKey  string `validate:"required"`
	OpenWeatherBaseURL string `validate:"required,url"`

	// Units must stay metric; readings are reported in Celsius.
	Units string `validate:"oneof=metric"`

	// HTTPTimeout bounds outbound calls; 0 leaves the transport default.
	HTTPTimeout time.Duration `validate:"gte=0"`

	// WatchInterval controls how often watched locations are fetched.
	WatchInterval time.Duration `validate:"gte=1s"`
	// WatchLocations to fetch periodically.
	WatchLocations []weather.Query

	// Display board retention.
	BoardMaxHistory int           // max readings per city (0 = unlimited)
	BoardMaxAge     time.Duration // max age of readings (0 = unlimited)

	// Home location for /weather/here: fixed coordinates, or a geocoded city.
	Home           *weather.Coordinates
	HomeCity       string
	HomeCountry    string
	GeocoderAPIKey string `validate:"required_with=HomeCity"`

	KafkaBrokers []string
	KafkaTopic   string `validate:"required_with=KafkaBrokers"`

	Port string `validate:"required,numeric"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather")
	cfg.Units = getenvDefault("OPENWEATHER_UNITS", "metric")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "0s"); err != nil {
		return nil, err
	}

	// Watch interval: default 15 minutes.
	if cfg.WatchInterval, err = getenvDuration("WATCH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	cfg.WatchLocations = parseLocations(os.Getenv("WATCH_LOCATIONS"))

	cfg.BoardMaxHistory = getenvInt("BOARD_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals
	if cfg.BoardMaxAge, err = getenvDuration("BOARD_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	if cfg.Home, err = loadHomeCoordinates(); err != nil {
		return nil, err
	}
	cfg.HomeCity = os.Getenv("HOME_CITY")
	cfg.HomeCountry = os.Getenv("HOME_COUNTRY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaTopic = getenvDefault("KAFKA_TOPIC", "weather_data")

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// parseLocations splits a ';'-separated list; each entry is a city or "lat,lon".
func parseLocations(raw string) []weather.Query {
	var queries []weather.Query
	for _, entry := range strings.Split(raw, ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		queries = append(queries, weather.ParseQuery(entry))
	}
	return queries
}

func loadHomeCoordinates() (*weather.Coordinates, error) {
	latStr, lonStr := os.Getenv("HOME_LAT"), os.Getenv("HOME_LON")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HOME_LAT: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HOME_LON: %w", err)
	}
	return &weather.Coordinates{Lat: lat, Lon: lon}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
