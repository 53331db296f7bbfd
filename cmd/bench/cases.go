// README: Bench cases: environment, catalog, quote, booking conflicts, cache and throughput.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
			defer db.Close()
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
		defer r.redis.Close()
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

func (r *Runner) quotePayload() map[string]any {
	return map[string]any{
		"origin":      r.cfg.Origin,
		"destination": r.cfg.Destination,
		"vehicle_id":  r.cfg.VehicleID,
	}
}

func (r *Runner) bookingPayload(vehicleID string, start time.Time) map[string]any {
	return map[string]any{
		"origin":      r.cfg.Origin,
		"destination": r.cfg.Destination,
		"distance_km": 900,
		"final_price": 2229.68,
		"profit":      668.90,
		"driver_cost": 527.27,
		"vehicle_id":  vehicleID,
		"driver_id":   r.cfg.DriverID,
		"start_at":    start.Format(time.RFC3339),
	}
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres tables",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "dsn not set"}
				}
				for _, table := range []string{"vehicles", "drivers", "trips"} {
					var exists bool
					err := r.db.QueryRow(ctx,
						`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, table,
					).Scan(&exists)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: statusFail, Note: "missing table " + table}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not set"}
				}
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		httpCase("HTTP: health", http.MethodGet, base+"/health", nil, http.StatusOK),
		httpCase("HTTP: list trucks", http.MethodGet, base+"/api/v1/trucks", nil, http.StatusOK),
		httpCase("HTTP: list drivers", http.MethodGet, base+"/api/v1/drivers", nil, http.StatusOK),
		httpCase("HTTP: list trips", http.MethodGet, base+"/api/v1/trips", nil, http.StatusOK),
		httpCase("HTTP: quote unknown vehicle", http.MethodPost, base+"/api/v1/quote",
			map[string]any{"origin": r.cfg.Origin, "destination": r.cfg.Destination, "vehicle_id": "no-such-truck"},
			http.StatusNotFound),
		httpCase("HTTP: quote", http.MethodPost, base+"/api/v1/quote", r.quotePayload(), http.StatusOK),
		{
			Name: "Cache: route cached after quote",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not set"}
				}
				keys, _, err := r.redis.Scan(ctx, 0, "route:*", 100).Result()
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if len(keys) == 0 {
					return Result{Status: statusFail, Note: "no route:* keys"}
				}
				return Result{Status: statusPass, Note: fmt.Sprintf("keys=%d", len(keys))}
			},
		},
		{
			Name: "Booking: overlap rejected",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now().UTC().Add(time.Duration(time.Now().Unix()%1000+400) * 24 * time.Hour).Truncate(time.Hour)
				code, err := r.post(ctx, base+"/api/v1/trips/book", r.bookingPayload(r.cfg.VehicleID, start))
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if code != http.StatusCreated {
					return Result{Status: statusFail, Note: fmt.Sprintf("first booking status=%d", code)}
				}
				code, err = r.post(ctx, base+"/api/v1/trips/book", r.bookingPayload(r.cfg.VehicleID, start.Add(24*time.Hour)))
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if code != http.StatusConflict {
					return Result{Status: statusFail, Note: fmt.Sprintf("overlapping booking status=%d", code)}
				}
				code, err = r.post(ctx, base+"/api/v1/trips/book", r.bookingPayload(r.cfg.VehicleID, start.Add(48*time.Hour)))
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if code != http.StatusCreated {
					return Result{Status: statusFail, Note: fmt.Sprintf("back-to-back booking status=%d", code)}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Booking: concurrent requests admit one",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentBooking(ctx, r, base+"/api/v1/trips/book")
			},
		},
		{
			Name: "Perf: quote throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/v1/quote", r.quotePayload())
			},
		},
	}
}

func httpCase(name, method, url string, body any, want int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = bytes.NewReader(b)
			}
			req, err := http.NewRequestWithContext(ctx, method, url, reader)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			if resp.StatusCode == want {
				return Result{Status: statusPass, Latency: latency}
			}
			return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", resp.StatusCode, want)}
		},
	}
}

func (r *Runner) post(ctx context.Context, url string, payload any) (int, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode, nil
}

// concurrentBooking fires identical bookings at once; exactly one may win.
func concurrentBooking(ctx context.Context, r *Runner, url string) Result {
	// far-future start keeps reruns clear of earlier bench bookings
	start := time.Now().UTC().Add(time.Duration(time.Now().Unix()%1000+2000) * 24 * time.Hour).Truncate(time.Hour)
	payload := r.bookingPayload(r.cfg.VehicleID, start)

	var created, conflicts atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := r.post(ctx, url, payload)
			if err != nil {
				return
			}
			switch code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	note := fmt.Sprintf("created=%d conflicts=%d", created.Load(), conflicts.Load())
	if created.Load() == 1 {
		return Result{Status: statusPass, Note: note}
	}
	return Result{Status: statusFail, Note: note}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				code, err := r.post(ctx, url, payload)
				if err != nil || code != http.StatusOK {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}
