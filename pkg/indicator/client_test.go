package indicator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"tiendascan/pkg/config"
	"tiendascan/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(true, ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testConfig(baseURL string) *config.IndicatorConfig {
	return &config.IndicatorConfig{
		BaseURL:   baseURL,
		Timeout:   2,
		RateLimit: 100,
		RateBurst: 10,
	}
}

func TestFetchRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"codigo":"dolar","serie":[{"fecha":"2024-05-02T04:00:00.000Z","valor":945.15}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	rate, err := client.FetchRate(context.Background())
	if err != nil {
		t.Fatalf("FetchRate failed: %v", err)
	}
	if rate != 945.15 {
		t.Errorf("Expected 945.15, got %v", rate)
	}
}

func TestFetchRateBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if _, err := client.FetchRate(context.Background()); !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("Expected ErrRateUnavailable, got %v", err)
	}
}

func TestFetchRateMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if _, err := client.FetchRate(context.Background()); !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("Expected ErrRateUnavailable, got %v", err)
	}
}

func TestFetchRateEmptySerie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"serie":[]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if _, err := client.FetchRate(context.Background()); !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("Expected ErrRateUnavailable, got %v", err)
	}
}

func TestFetchRateNonPositiveValue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"serie":[{"valor":0}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if _, err := client.FetchRate(context.Background()); !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("Expected ErrRateUnavailable, got %v", err)
	}
}

func TestFetchRateUnreachable(t *testing.T) {
	client := NewClient(testConfig("http://127.0.0.1:1"))
	if _, err := client.FetchRate(context.Background()); !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("Expected ErrRateUnavailable, got %v", err)
	}
}
