package provider

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

const sampleResponse = `{
	"status": "success",
	"data": [
		{
			"keyword": "dog grooming near me",
			"metrics": {"avg_monthly_searches": 2400, "competition": "HIGH", "cpc": 3.1, "keyword_difficulty": 41},
			"evidence_urls": ["https://serp.example/1"]
		},
		{
			"keyword": "how often should a dog be groomed",
			"metrics": {"avg_monthly_searches": "880", "competition": "LOW"}
		}
	]
}`

func newTestClient(t *testing.T, handler fasthttp.RequestHandler, cfg Config) *Client {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { ln.Close() })

	httpClient := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) {
			return ln.Dial()
		},
	}
	return NewClientWithHTTP(cfg, httpClient)
}

func TestClient_Suggest(t *testing.T) {
	var gotKeyword, gotAuth string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotKeyword = string(ctx.QueryArgs().Peek("keyword"))
		gotAuth = string(ctx.Request.Header.Peek("Authorization"))
		ctx.SetContentType("application/json")
		ctx.SetBodyString(sampleResponse)
	}, Config{Endpoint: "http://provider.test/suggest", APIKey: "secret", Timeout: time.Second})

	records, err := client.Suggest(context.Background(), "  dog groomer ")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotKeyword != "dog groomer" {
		t.Errorf("Expected keyword query 'dog groomer', got %q", gotKeyword)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0]["competition"] != 0.8 || records[1]["competition"] != 0.3 {
		t.Errorf("Unexpected competition mapping: %v, %v", records[0]["competition"], records[1]["competition"])
	}

	stats := client.Stats()
	if stats.TotalRequests != 1 || stats.FailedRequests != 0 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var attempts int32
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			ctx.SetStatusCode(fasthttp.StatusBadGateway)
			return
		}
		ctx.SetBodyString(sampleResponse)
	}, Config{Endpoint: "http://provider.test/suggest", Timeout: time.Second, MaxRetries: 3, RetryDelay: time.Millisecond})

	records, err := client.Suggest(context.Background(), "dog groomer")
	if err != nil {
		t.Fatalf("Expected success after retries, got: %v", err)
	}
	if len(records) != 2 || atomic.LoadInt32(&attempts) != 3 {
		t.Errorf("Expected 3 attempts and 2 records, got %d attempts and %d records", attempts, len(records))
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var attempts int32
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		atomic.AddInt32(&attempts, 1)
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetBodyString(`{"error":"bad key"}`)
	}, Config{Endpoint: "http://provider.test/suggest", Timeout: time.Second, MaxRetries: 3, RetryDelay: time.Millisecond})

	_, err := client.Suggest(context.Background(), "dog groomer")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != fasthttp.StatusUnauthorized {
		t.Fatalf("Expected 401 StatusError, got %v", err)
	}
	if atomic.LoadInt32(&attempts) != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
	if client.Stats().FailedRequests != 1 || client.Stats().LastError == "" {
		t.Errorf("Expected failure to be recorded, got %+v", client.Stats())
	}
}

func TestClient_Validation(t *testing.T) {
	client := NewClient(Config{})

	if _, err := client.Suggest(context.Background(), "   "); !errors.Is(err, ErrEmptySeed) {
		t.Errorf("Expected ErrEmptySeed, got %v", err)
	}
	if _, err := client.Suggest(context.Background(), "dog groomer"); !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("Expected ErrNoEndpoint, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"https://api.example/suggest", "https://api.example/suggest?keyword=dog+groomer"},
		{"https://api.example/suggest?lang=en", "https://api.example/suggest?lang=en&keyword=dog+groomer"},
		{"https://api.example/suggest?keyword=", "https://api.example/suggest?keyword=dog+groomer"},
	}
	for _, tt := range tests {
		if got := buildURL(tt.endpoint, "dog groomer"); got != tt.want {
			t.Errorf("buildURL(%q) = %q, want %q", tt.endpoint, got, tt.want)
		}
	}
}
