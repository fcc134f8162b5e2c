package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"

	"keyword-go/pkg/coerce"
	"keyword-go/pkg/logger"
)

const userAgent = "keyword-go/1.0"

// Config configures Client.
type Config struct {
	// Endpoint is one URL or a comma-separated list used round-robin.
	Endpoint   string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		Timeout:    15 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

// Stats are cumulative request counters.
type Stats struct {
	TotalRequests  uint64 `json:"total_requests"`
	FailedRequests uint64 `json:"failed_requests"`
	LastError      string `json:"last_error,omitempty"`
}

// Client is a CandidateProvider backed by fasthttp.
type Client struct {
	pool    *EndpointPool
	apiKey  string
	timeout time.Duration
	http    *fasthttp.Client
	retry   *Retry
	parser  *ResponseParser
	log     *logger.Logger

	totalRequests  uint64
	failedRequests uint64
	lastError      atomic.Value
}

func NewClient(cfg Config) *Client {
	return NewClientWithHTTP(cfg, &fasthttp.Client{
		Name:                userAgent,
		MaxConnsPerHost:     64,
		ReadTimeout:         cfg.Timeout,
		WriteTimeout:        cfg.Timeout,
		MaxIdleConnDuration: 90 * time.Second,
	})
}

// NewClientWithHTTP uses a caller-supplied fasthttp client.
func NewClientWithHTTP(cfg Config, httpClient *fasthttp.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		pool:    NewEndpointPool(cfg.Endpoint),
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		http:    httpClient,
		retry:   NewRetry(cfg.MaxRetries, cfg.RetryDelay),
		parser:  NewResponseParser(),
		log:     logger.GetLogger().WithField("component", "provider_client"),
	}
}

// Suggest fetches candidate records for seed.
func (c *Client) Suggest(ctx context.Context, seed string) ([]coerce.Record, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return nil, ErrEmptySeed
	}
	if c.pool.Size() == 0 {
		return nil, ErrNoEndpoint
	}

	atomic.AddUint64(&c.totalRequests, 1)
	start := time.Now()

	var records []coerce.Record
	err := c.retry.Execute(ctx, func() error {
		var err error
		records, err = c.doSuggest(ctx, seed)
		return err
	})
	if err != nil {
		atomic.AddUint64(&c.failedRequests, 1)
		c.lastError.Store(err.Error())
		c.log.WithError(err).WithField("seed", seed).Error("Provider query failed")
		return nil, err
	}

	c.log.WithFields(map[string]interface{}{
		"seed":        seed,
		"candidates":  len(records),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Provider query completed")
	return records, nil
}

func (c *Client) doSuggest(ctx context.Context, seed string) ([]coerce.Record, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(buildURL(c.pool.Next(), seed))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		body := resp.Body()
		return nil, &StatusError{Code: resp.StatusCode(), Body: string(body[:min(len(body), 200)])}
	}

	return c.parser.Parse(resp.Body())
}

// Stats returns a snapshot of the request counters.
func (c *Client) Stats() Stats {
	s := Stats{
		TotalRequests:  atomic.LoadUint64(&c.totalRequests),
		FailedRequests: atomic.LoadUint64(&c.failedRequests),
	}
	if v, ok := c.lastError.Load().(string); ok {
		s.LastError = v
	}
	return s
}

// buildURL appends the seed as the keyword query parameter. Endpoints that
// already end in "keyword=" are treated as templates.
func buildURL(endpoint, seed string) string {
	escaped := url.QueryEscape(seed)
	switch {
	case strings.HasSuffix(endpoint, "keyword="):
		return endpoint + escaped
	case strings.Contains(endpoint, "?"):
		return endpoint + "&keyword=" + escaped
	default:
		return endpoint + "?keyword=" + escaped
	}
}
