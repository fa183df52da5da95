package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"
)

const (
	defaultBaseURL     = "http://localhost:8080"
	defaultRequests    = 100
	defaultConcurrency = 5
)

type Config struct {
	BaseURL     string
	AdminAPIKey string
	Requests    int           // Number of name-change requests to submit
	Concurrency int           // Number of concurrent workers
	Timeout     time.Duration // Timeout for each HTTP request
	Resolve     bool          // Approve/deny the submitted requests afterwards (needs admin key)
	Debug       bool
	OutputFile  string // Output markdown file path (optional)
}

// EndpointStats aggregates the outcomes and latencies of one endpoint
type EndpointStats struct {
	Name      string
	mu        sync.Mutex
	Succeeded int
	Failed    int
	latencies []time.Duration
}

func (s *EndpointStats) record(latency time.Duration, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.Succeeded++
	} else {
		s.Failed++
	}
	s.latencies = append(s.latencies, latency)
}

func (s *EndpointStats) total() int {
	return s.Succeeded + s.Failed
}

// percentile returns the p-th latency percentile (p in [0, 100]).
// The caller must not record concurrently.
func (s *EndpointStats) percentile(p float64) time.Duration {
	if len(s.latencies) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(s.latencies))
	copy(sorted, s.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

func (s *EndpointStats) mean() time.Duration {
	if len(s.latencies) == 0 {
		return 0
	}
	var sum time.Duration
	for _, l := range s.latencies {
		sum += l
	}
	return sum / time.Duration(len(s.latencies))
}

// BenchmarkResults holds everything the run produced
type BenchmarkResults struct {
	StartTime time.Time
	Duration  time.Duration
	Submit    *EndpointStats
	Details   *EndpointStats
	Approve   *EndpointStats
	Deny      *EndpointStats
}

func (r *BenchmarkResults) endpoints() []*EndpointStats {
	return []*EndpointStats{r.Submit, r.Details, r.Approve, r.Deny}
}

func main() {
	cfg := parseFlags()

	if cfg.Requests <= 0 {
		fmt.Println("Error: requests must be positive")
		flag.Usage()
		os.Exit(1)
	}
	if cfg.Resolve && cfg.AdminAPIKey == "" {
		fmt.Println("Error: -resolve requires -api-key (or admin_api_key in the config file)")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	client := &http.Client{Timeout: cfg.Timeout}

	// Make sure the server is actually there before hammering it
	if err := checkHealth(ctx, client, cfg.BaseURL); err != nil {
		fmt.Printf("Error: server health check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Connected to %s\n", cfg.BaseURL)
	fmt.Printf("Submitting %d name-change requests (concurrency: %d)\n\n", cfg.Requests, cfg.Concurrency)

	results := &BenchmarkResults{
		StartTime: time.Now(),
		Submit:    &EndpointStats{Name: "POST /api/v1/name-changes"},
		Details:   &EndpointStats{Name: "GET /api/v1/name-changes/:id"},
		Approve:   &EndpointStats{Name: "POST /api/v1/name-changes/:id/approve"},
		Deny:      &EndpointStats{Name: "POST /api/v1/name-changes/:id/deny"},
	}

	ids := runSubmitPhase(ctx, client, cfg, results.Submit)
	runDetailsPhase(ctx, client, cfg, ids, results.Details)
	if cfg.Resolve {
		runResolvePhase(ctx, client, cfg, ids, results.Approve, results.Deny)
	}

	results.Duration = time.Since(results.StartTime)

	fmt.Println("\n" + strings.Repeat("=", 80))
	if ctx.Err() != nil {
		fmt.Println("INTERRUPTED - PARTIAL RESULTS")
	} else {
		fmt.Println("BENCHMARK RESULTS")
	}
	fmt.Println(strings.Repeat("=", 80))
	printResults(results)

	if cfg.OutputFile != "" {
		if err := writeMarkdownReport(cfg.OutputFile, results); err != nil {
			fmt.Printf("\n⚠️  Warning: Failed to write markdown file: %v\n", err)
		} else {
			fmt.Printf("\n✓ Report written to: %s\n", cfg.OutputFile)
		}
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.BaseURL, "base-url", defaultBaseURL, "API server base URL")
	flag.StringVar(&cfg.AdminAPIKey, "api-key", "", "Admin API key for approve/deny endpoints")
	flag.IntVar(&cfg.Requests, "requests", defaultRequests, "Number of name-change requests to submit")
	flag.IntVar(&cfg.Concurrency, "concurrency", defaultConcurrency, "Number of concurrent workers (default: 5)")
	flag.BoolVar(&cfg.Resolve, "resolve", false, "Approve/deny the submitted requests afterwards")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")

	var timeoutSeconds int
	flag.IntVar(&timeoutSeconds, "timeout", 30, "Timeout for each HTTP request in seconds (default: 30)")

	configFile := flag.String("config", "", "Path to config file (optional)")

	flag.Parse()

	cfg.Timeout = time.Duration(timeoutSeconds) * time.Second

	// Validate concurrency
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.Concurrency > 50 {
		cfg.Concurrency = 50 // Cap to avoid drowning the rate limiter
	}

	// Load from config file if specified
	if *configFile != "" {
		fileCfg, err := LoadConfig(*configFile)
		if err != nil {
			fmt.Printf("Warning: failed to load config file: %v\n", err)
		} else {
			if cfg.BaseURL == defaultBaseURL && fileCfg.BaseURL != "" {
				cfg.BaseURL = fileCfg.BaseURL
			}
			if cfg.AdminAPIKey == "" && fileCfg.AdminAPIKey != "" {
				cfg.AdminAPIKey = fileCfg.AdminAPIKey
			}
		}
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg
}

func checkHealth(ctx context.Context, client *http.Client, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// runSubmitPhase submits cfg.Requests name-change requests and returns the
// IDs the server assigned
func runSubmitPhase(ctx context.Context, client *http.Client, cfg *Config, stats *EndpointStats) []uint64 {
	// A per-run nonce keeps generated names from colliding with earlier runs
	nonce := fmt.Sprintf("%04x", rand.Intn(0x10000))

	jobs := make(chan int)
	var mu sync.Mutex
	var ids []uint64
	var wg sync.WaitGroup

	for w := 0; w < cfg.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				body, _ := json.Marshal(map[string]string{
					"old_name": fmt.Sprintf("bo%s %04d", nonce, i),
					"new_name": fmt.Sprintf("bn%s %04d", nonce, i),
				})

				start := time.Now()
				resp, err := doJSON(ctx, client, http.MethodPost, cfg.BaseURL+"/api/v1/name-changes", body, "")
				latency := time.Since(start)

				if err != nil {
					stats.record(latency, false)
					if cfg.Debug {
						fmt.Printf("submit %d: %v\n", i, err)
					}
					continue
				}

				var created struct {
					ID uint64 `json:"id"`
				}
				ok := json.Unmarshal(resp, &created) == nil && created.ID != 0
				stats.record(latency, ok)
				if ok {
					mu.Lock()
					ids = append(ids, created.ID)
					mu.Unlock()
				}
			}
		}()
	}

	for i := 0; i < cfg.Requests; i++ {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ids
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	fmt.Printf("✓ Submit phase complete (%d/%d created)\n", len(ids), cfg.Requests)
	return ids
}

// runDetailsPhase fetches the details view of every created request
func runDetailsPhase(ctx context.Context, client *http.Client, cfg *Config, ids []uint64, stats *EndpointStats) {
	forEachID(ctx, cfg.Concurrency, ids, func(id uint64) {
		start := time.Now()
		_, err := doJSON(ctx, client, http.MethodGet, fmt.Sprintf("%s/api/v1/name-changes/%d", cfg.BaseURL, id), nil, "")
		stats.record(time.Since(start), err == nil)
		if err != nil && cfg.Debug {
			fmt.Printf("details %d: %v\n", id, err)
		}
	})

	fmt.Printf("✓ Details phase complete (%d fetched)\n", stats.Succeeded)
}

// runResolvePhase approves even-indexed requests and denies odd-indexed ones
func runResolvePhase(ctx context.Context, client *http.Client, cfg *Config, ids []uint64, approve, deny *EndpointStats) {
	forEachIndexedID(ctx, cfg.Concurrency, ids, func(i int, id uint64) {
		action, stats := "approve", approve
		if i%2 == 1 {
			action, stats = "deny", deny
		}

		start := time.Now()
		_, err := doJSON(ctx, client, http.MethodPost,
			fmt.Sprintf("%s/api/v1/name-changes/%d/%s", cfg.BaseURL, id, action), nil, cfg.AdminAPIKey)
		stats.record(time.Since(start), err == nil)
		if err != nil && cfg.Debug {
			fmt.Printf("%s %d: %v\n", action, id, err)
		}
	})

	fmt.Printf("✓ Resolve phase complete (%d approved, %d denied)\n", approve.Succeeded, deny.Succeeded)
}

func forEachID(ctx context.Context, concurrency int, ids []uint64, fn func(id uint64)) {
	forEachIndexedID(ctx, concurrency, ids, func(_ int, id uint64) { fn(id) })
}

func forEachIndexedID(ctx context.Context, concurrency int, ids []uint64, fn func(i int, id uint64)) {
	type job struct {
		i  int
		id uint64
	}
	jobs := make(chan job)
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				fn(j.i, j.id)
			}
		}()
	}

	for i, id := range ids {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- job{i, id}:
		}
	}
	close(jobs)
	wg.Wait()
}

// doJSON performs a request and returns the response body, treating any
// non-2xx status as an error
func doJSON(ctx context.Context, client *http.Client, method, url string, body []byte, apiKey string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "ApiKey "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return respBody, nil
}

func printResults(r *BenchmarkResults) {
	fmt.Printf("\nTotal duration: %s\n\n", formatDuration(r.Duration))

	for _, ep := range r.endpoints() {
		if ep.total() == 0 {
			continue
		}
		fmt.Printf("%s %s\n", statusEmoji(ep.Succeeded, ep.Failed, 0), ep.Name)
		fmt.Printf("   requests:  %d (%s succeeded)\n", ep.total(), percentageString(ep.Succeeded, ep.total()))
		fmt.Printf("   rate:      %s\n", formatRate(ep.total(), r.Duration))
		fmt.Printf("   latency:   avg %s, p50 %s, p95 %s, p99 %s\n\n",
			formatDuration(ep.mean()),
			formatDuration(ep.percentile(50)),
			formatDuration(ep.percentile(95)),
			formatDuration(ep.percentile(99)),
		)
	}
}

func writeMarkdownReport(path string, r *BenchmarkResults) error {
	var b strings.Builder

	b.WriteString("# Name Change API Benchmark\n\n")
	b.WriteString(fmt.Sprintf("- Started: %s\n", r.StartTime.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("- Duration: %s\n\n", formatDuration(r.Duration)))

	b.WriteString("| Endpoint | Requests | Success | Rate | Avg | P50 | P95 | P99 |\n")
	b.WriteString("|----------|----------|---------|------|-----|-----|-----|-----|\n")
	for _, ep := range r.endpoints() {
		if ep.total() == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("| `%s` | %d | %s | %s | %s | %s | %s | %s |\n",
			ep.Name,
			ep.total(),
			percentageString(ep.Succeeded, ep.total()),
			formatRate(ep.total(), r.Duration),
			formatDuration(ep.mean()),
			formatDuration(ep.percentile(50)),
			formatDuration(ep.percentile(95)),
			formatDuration(ep.percentile(99)),
		))
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}

// formatDuration renders a duration in the most readable unit
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
