// README: Smoke and load runner against a live freightdesk API; prints PASS/FAIL per case.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case statusPass:
			pass++
		case statusFail:
			fail++
		case statusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 || (cfg.Strict && skipped > 0) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL     string
	DSN         string
	RedisAddr   string
	VehicleID   string
	DriverID    string
	Origin      string
	Destination string
	Strict      bool
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("FREIGHT_BENCH_BASE_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("FREIGHT_DB_DSN"), "Postgres DSN (optional)")
	flag.StringVar(&cfg.RedisAddr, "redis", os.Getenv("FREIGHT_REDIS_ADDR"), "Redis address (optional)")
	flag.StringVar(&cfg.VehicleID, "vehicle", "vuc-01", "vehicle used for quotes")
	flag.StringVar(&cfg.DriverID, "driver", "mot-01", "driver used for bookings")
	flag.StringVar(&cfg.Origin, "origin", "São Paulo, SP", "quote origin")
	flag.StringVar(&cfg.Destination, "destination", "Curitiba, PR", "quote destination")
	flag.BoolVar(&cfg.Strict, "strict", false, "fail when cases are skipped")
	flag.DurationVar(&cfg.Timeout, "timeout", 2*time.Minute, "total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", 20, "concurrency for race and perf cases")
	flag.DurationVar(&cfg.Duration, "duration", 10*time.Second, "duration of the perf case")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
