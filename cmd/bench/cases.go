// README: Bench cases; HTTP contract checks, backing-store checks, a live chat scenario and load.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
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
		httpc: &http.Client{Timeout: 45 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
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

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres cultural_sites table",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "dsn not set"}
				}
				var n int
				if err := r.db.QueryRow(ctx, "SELECT count(*) FROM cultural_sites").Scan(&n); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass, Note: fmt.Sprintf("rows=%d", n)}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not set"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},

		httpCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK),
		httpCase("API: banner", http.MethodGet, base+"/api/", nil, http.StatusOK),
		httpCase("API: story places", http.MethodGet, base+"/api/story-places", nil, http.StatusOK),
		httpCase("API: story places by category", http.MethodGet, base+"/api/story-places?category=temple", nil, http.StatusOK),
		httpCase("API: metrics", http.MethodGet, base+"/metrics", nil, http.StatusOK),

		httpCase("Chat: empty message -> 400", http.MethodPost, base+"/api/chat", map[string]any{"message": ""}, http.StatusBadRequest),
		httpCase("Chat: non-string message -> 400", http.MethodPost, base+"/api/chat", map[string]any{"message": 12}, http.StatusBadRequest),
		httpCase("Chat: invalid userId -> 400", http.MethodPost, base+"/api/chat", map[string]any{"message": "halo", "userId": "bad id!"}, http.StatusBadRequest),

		{
			Name: "Chat: offer then confirm returns routeData",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Live {
					return Result{Status: statusSkip, Note: "live=false"}
				}
				return offerThenConfirm(ctx, r, base+"/api/chat")
			},
		},
		{
			Name: "Concurrency: same user turns are serialized",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Live {
					return Result{Status: statusSkip, Note: "live=false"}
				}
				return concurrentTurns(ctx, r, base+"/api/chat")
			},
		},

		{
			Name: "Perf: story places throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/api/story-places", nil)
			},
		},
	}
}

func httpCase(name, method, url string, body any, want int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, _, err := r.do(ctx, method, url, body)
			latency := time.Since(start)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if status != want {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", status, want)}
			}
			return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	return resp.StatusCode, data, err
}

type chatResp struct {
	Reply     string          `json:"reply"`
	RouteData json.RawMessage `json:"routeData"`
}

func (r *Runner) chat(ctx context.Context, url, userID, message string) (chatResp, error) {
	status, data, err := r.do(ctx, http.MethodPost, url, map[string]any{"message": message, "userId": userID})
	if err != nil {
		return chatResp{}, err
	}
	if status != http.StatusOK {
		return chatResp{}, fmt.Errorf("status=%d body=%s", status, data)
	}
	var out chatResp
	err = json.Unmarshal(data, &out)
	return out, err
}

func offerThenConfirm(ctx context.Context, r *Runner, url string) Result {
	user := "bench-" + uuid.NewString()[:8]
	start := time.Now()

	offer, err := r.chat(ctx, url, user, "Bagaimana rute dari Stasiun Bandung ke Gedung Sate?")
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if offer.Reply == "" || len(offer.RouteData) > 0 {
		return Result{Status: statusFail, Note: "expected a clarifying reply"}
	}

	confirmed, err := r.chat(ctx, url, user, "ya boleh")
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if len(confirmed.RouteData) == 0 {
		return Result{Status: statusFail, Latency: time.Since(start), Note: "no routeData: " + confirmed.Reply}
	}
	return Result{Status: statusPass, Latency: time.Since(start)}
}

// concurrentTurns fires one offer and many confirmations for one user at once;
// at most one confirmation may consume the offer.
func concurrentTurns(ctx context.Context, r *Runner, url string) Result {
	user := "bench-" + uuid.NewString()[:8]
	if _, err := r.chat(ctx, url, user, "Bagaimana rute dari Stasiun Bandung ke Gedung Sate?"); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		routes int
		errs   int
	)
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := r.chat(ctx, url, user, "ya")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs++
				return
			}
			if len(resp.RouteData) > 0 {
				routes++
			}
		}()
	}
	wg.Wait()

	note := fmt.Sprintf("routes=%d errors=%d", routes, errs)
	if routes > 1 {
		return Result{Status: statusFail, Note: note}
	}
	return Result{Status: statusPass, Note: note}
}

func perfLoad(ctx context.Context, r *Runner, method, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var (
		count, errCount int64
		mu              sync.Mutex
		wg              sync.WaitGroup
	)

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				_, _, err := r.do(ctx, method, url, payload)
				mu.Lock()
				if err != nil {
					errCount++
				} else {
					count++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}
