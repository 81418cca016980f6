package lco

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClientGetSendsTokenWhenConfigured(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Token: "secret"})
	var out map[string]any
	if err := c.Get(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Token secret" {
		t.Fatalf("expected token header, got %q", gotAuth)
	}
	if out["ok"] != true {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestClientGetOmitsTokenWhenAbsent(t *testing.T) {
	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	var out []any
	if err := c.Get(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hadAuth {
		t.Fatalf("authorization header must not be sent without a token")
	}
}

func TestClientGetFailureKinds(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		want     error
		wantKind FetchKind
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			want:     ErrStatus,
			wantKind: KindStatus,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			want:     ErrStatus,
			wantKind: KindStatus,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>not json</html>`))
			},
			want:     ErrMalformed,
			wantKind: KindMalformed,
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			want:     ErrMalformed,
			wantKind: KindMalformed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c := NewClient(Config{BaseURL: srv.URL})
			var out any
			err := c.Get(context.Background(), srv.URL, &out)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FetchError, got %T", err)
			}
			if fe.Kind != tc.wantKind {
				t.Fatalf("expected kind %s, got %s", tc.wantKind, fe.Kind)
			}
		})
	}
}

func TestClientGetTimeoutIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	var out any
	err := c.Get(context.Background(), srv.URL, &out)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected network failure, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded cause, got %v", err)
	}
}

func TestClientGetUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url, Timeout: time.Second})
	var out any
	if err := c.Get(context.Background(), url, &out); !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected network failure, got %v", err)
	}
}

func TestClientBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, WithBreaker(NewBreaker("test", 2)))
	var out any
	for i := 0; i < 2; i++ {
		if err := c.Get(context.Background(), srv.URL, &out); !errors.Is(err, ErrStatus) {
			t.Fatalf("call %d: expected status failure, got %v", i, err)
		}
	}

	err := c.Get(context.Background(), srv.URL, &out)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if n := hits.Load(); n != 2 {
		t.Fatalf("expected 2 requests to reach the server, got %d", n)
	}
}

func TestClientBreakerIgnoresClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, WithBreaker(NewBreaker("test", 1)))
	var out any
	for i := 0; i < 3; i++ {
		if err := c.Get(context.Background(), srv.URL, &out); !errors.Is(err, ErrStatus) {
			t.Fatalf("call %d: expected status failure, got %v", i, err)
		}
	}
}

func TestClientBreakerIgnoresCancelledRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, WithBreaker(NewBreaker("test", 1)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out any
	for i := 0; i < 3; i++ {
		if err := c.Get(ctx, srv.URL, &out); !errors.Is(err, ErrNetwork) {
			t.Fatalf("call %d: expected network failure, got %v", i, err)
		}
	}
	if err := c.Get(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("breaker opened on cancelled requests: %v", err)
	}
}

func TestNewBreakerDisabled(t *testing.T) {
	if cb := NewBreaker("off", 0); cb != nil {
		t.Fatalf("expected nil breaker when failures is zero")
	}
}

func TestConfigURLs(t *testing.T) {
	cfg := Config{BaseURL: "https://api.example/api/", ArchiveURL: "https://archive.example"}

	if got := cfg.InstrumentsURL(""); got != "https://api.example/api/instruments/" {
		t.Fatalf("unexpected instruments url %q", got)
	}
	if got := cfg.InstrumentsURL("ogg"); got != "https://api.example/api/instruments/?site=ogg" {
		t.Fatalf("unexpected filtered url %q", got)
	}
	if got := cfg.InstrumentsURL("a b"); got != "https://api.example/api/instruments/?site=a+b" {
		t.Fatalf("expected escaped site code, got %q", got)
	}

	want := []string{
		"https://api.example/api/sites/",
		"https://api.example/api/site/",
		"https://api.example/api/profile/",
		"https://archive.example/frames/",
	}
	got := cfg.ProbeURLs()
	if len(got) != len(want) {
		t.Fatalf("expected %d probe urls, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("probe url %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SitesURL() != "https://observe.lco.global/api/sites/" {
		t.Fatalf("unexpected sites url %q", cfg.SitesURL())
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %s", cfg.Timeout)
	}
	if (Config{}).timeout() != DefaultTimeout {
		t.Fatalf("zero timeout should fall back to the default")
	}
}
