// README: Config loader (viper) with env defaults for HTTP, DB, Redis, Kafka, maps and pricing.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	ProviderOSM    = "osm"
	ProviderGoogle = "google"
)

type MapsConfig struct {
	Provider     string
	GoogleKey    string
	NominatimURL string
	OSRMURL      string
	UserAgent    string
	Timeout      time.Duration
}

// PricingConfig holds the company cost parameters. ProfitMargin is a share of
// the sale price and must stay below 1.
type PricingConfig struct {
	FuelPrice    float64
	DriverSalary float64
	PerDiem      float64
	WorkingDays  int
	ProfitMargin float64
}

type Config struct {
	Env  string
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN     string
		Migrate bool
	}
	Redis struct {
		Addr     string
		CacheTTL time.Duration
	}
	Kafka struct {
		Brokers []string
		Topic   string
	}
	Maps    MapsConfig
	Pricing PricingConfig
}

var defaults = map[string]any{
	"FREIGHT_ENV":             "production",
	"FREIGHT_HTTP_ADDR":       ":8080",
	"FREIGHT_DB_DSN":          "",
	"FREIGHT_DB_MIGRATE":      true,
	"FREIGHT_REDIS_ADDR":      "",
	"FREIGHT_CACHE_TTL":       "24h",
	"FREIGHT_KAFKA_BROKERS":   "",
	"FREIGHT_KAFKA_TOPIC":     "trips.booked",
	"FREIGHT_MAPS_PROVIDER":   ProviderOSM,
	"FREIGHT_GOOGLE_MAPS_KEY": "",
	"FREIGHT_NOMINATIM_URL":   "https://nominatim.openstreetmap.org/search",
	"FREIGHT_OSRM_URL":        "http://router.project-osrm.org/route/v1/driving",
	"FREIGHT_USER_AGENT":      "freightdesk/1.0",
	"FREIGHT_HTTP_TIMEOUT":    "10s",
	"FREIGHT_FUEL_PRICE":      6.89,
	"FREIGHT_DRIVER_SALARY":   2500.00,
	"FREIGHT_PER_DIEM":        150.00,
	"FREIGHT_WORKING_DAYS":    22,
	"FREIGHT_PROFIT_MARGIN":   0.30,
}

// Load reads an optional .env file from the working directory, then the
// environment. Environment variables win.
func Load() (Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	for k, def := range defaults {
		v.SetDefault(k, def)
	}
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg Config
	cfg.Env = v.GetString("FREIGHT_ENV")
	cfg.HTTP.Addr = v.GetString("FREIGHT_HTTP_ADDR")
	cfg.DB.DSN = v.GetString("FREIGHT_DB_DSN")
	cfg.DB.Migrate = v.GetBool("FREIGHT_DB_MIGRATE")
	cfg.Redis.Addr = v.GetString("FREIGHT_REDIS_ADDR")
	cfg.Redis.CacheTTL = v.GetDuration("FREIGHT_CACHE_TTL")
	cfg.Kafka.Brokers = splitList(v.GetString("FREIGHT_KAFKA_BROKERS"))
	cfg.Kafka.Topic = v.GetString("FREIGHT_KAFKA_TOPIC")
	cfg.Maps = MapsConfig{
		Provider:     strings.ToLower(v.GetString("FREIGHT_MAPS_PROVIDER")),
		GoogleKey:    v.GetString("FREIGHT_GOOGLE_MAPS_KEY"),
		NominatimURL: v.GetString("FREIGHT_NOMINATIM_URL"),
		OSRMURL:      v.GetString("FREIGHT_OSRM_URL"),
		UserAgent:    v.GetString("FREIGHT_USER_AGENT"),
		Timeout:      v.GetDuration("FREIGHT_HTTP_TIMEOUT"),
	}
	cfg.Pricing = PricingConfig{
		FuelPrice:    v.GetFloat64("FREIGHT_FUEL_PRICE"),
		DriverSalary: v.GetFloat64("FREIGHT_DRIVER_SALARY"),
		PerDiem:      v.GetFloat64("FREIGHT_PER_DIEM"),
		WorkingDays:  v.GetInt("FREIGHT_WORKING_DAYS"),
		ProfitMargin: v.GetFloat64("FREIGHT_PROFIT_MARGIN"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	p := c.Pricing
	switch {
	case p.ProfitMargin < 0 || p.ProfitMargin >= 1:
		return fmt.Errorf("%w: FREIGHT_PROFIT_MARGIN must be in [0, 1), got %v", ErrInvalidConfig, p.ProfitMargin)
	case p.WorkingDays <= 0:
		return fmt.Errorf("%w: FREIGHT_WORKING_DAYS must be positive", ErrInvalidConfig)
	case p.FuelPrice <= 0:
		return fmt.Errorf("%w: FREIGHT_FUEL_PRICE must be positive", ErrInvalidConfig)
	case p.DriverSalary < 0 || p.PerDiem < 0:
		return fmt.Errorf("%w: driver costs must not be negative", ErrInvalidConfig)
	}

	switch c.Maps.Provider {
	case ProviderOSM:
	case ProviderGoogle:
		if c.Maps.GoogleKey == "" {
			return fmt.Errorf("%w: FREIGHT_GOOGLE_MAPS_KEY is required for the google provider", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown maps provider %q", ErrInvalidConfig, c.Maps.Provider)
	}
	if c.Kafka.Topic == "" && len(c.Kafka.Brokers) > 0 {
		return fmt.Errorf("%w: FREIGHT_KAFKA_TOPIC is required when brokers are set", ErrInvalidConfig)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
