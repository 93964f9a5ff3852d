package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmadazimazri/isdu-etf-nav/internal/ratelimit"
)

func newTestClient(baseURL string) *YahooClient {
	return NewYahooClient(baseURL, "test-agent", 5*time.Second, ratelimit.Unlimited())
}

func TestYahooClient_CurrentPrice(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    float64
		wantErr error
	}{
		{
			name: "prefers currentPrice",
			body: `{"quoteResponse":{"result":[{"symbol":"AAPL","currentPrice":150.00,"regularMarketPrice":149.50}]}}`,
			want: 150.00,
		},
		{
			name: "falls back to regularMarketPrice",
			body: `{"quoteResponse":{"result":[{"symbol":"AAPL","regularMarketPrice":149.50}]}}`,
			want: 149.50,
		},
		{
			name:    "empty result",
			body:    `{"quoteResponse":{"result":[]}}`,
			wantErr: ErrNotFound,
		},
		{
			name:    "both fields absent",
			body:    `{"quoteResponse":{"result":[{"symbol":"AAPL"}]}}`,
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v7/finance/quote" {
					t.Errorf("path = %q, want /v7/finance/quote", r.URL.Path)
				}
				if r.URL.Query().Get("symbols") != "AAPL" {
					t.Errorf("symbols = %q, want AAPL", r.URL.Query().Get("symbols"))
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			got, err := client.CurrentPrice(context.Background(), "AAPL")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CurrentPrice() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CurrentPrice() returned unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CurrentPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYahooClient_LastClose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/") {
			t.Errorf("path = %q, want chart endpoint", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":[{"indicators":{"quote":[{"close":[148.10,null,149.20]}]}}]}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	got, err := client.LastClose(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("LastClose() returned unexpected error: %v", err)
	}
	// The most recent non-nil close is used.
	if got != 149.20 {
		t.Errorf("LastClose() = %v, want 149.20", got)
	}
}

func TestYahooClient_LastClose_NoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":[{"indicators":{"quote":[{"close":[null,null]}]}}]}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.LastClose(context.Background(), "AAPL"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LastClose() error = %v, want ErrNotFound", err)
	}
}

func TestYahooClient_FxRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/EURUSD=X" {
			t.Errorf("path = %q, want /v8/finance/chart/EURUSD=X", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":[{"indicators":{"quote":[{"close":[1.0850]}]}}]}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	got, err := client.FxRate(context.Background(), "EURUSD")
	if err != nil {
		t.Fatalf("FxRate() returned unexpected error: %v", err)
	}
	if got != 1.0850 {
		t.Errorf("FxRate() = %v, want 1.0850", got)
	}
}

func TestYahooClient_ServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, "test-agent", 5*time.Second, ratelimit.Unlimited())
	client.client.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(5 * time.Millisecond)

	_, err := client.CurrentPrice(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("CurrentPrice() returned nil error on 502")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("transport failure must not be reported as ErrNotFound")
	}
	if calls < 2 {
		t.Errorf("server saw %d calls, want retries", calls)
	}
}
