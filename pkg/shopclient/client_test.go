package shopclient

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

const searchBody = `{"resultados":[
	{"producto_id":1,"producto_nombre":"Martillo","precio":9990,"imagen":"martillo.png",
	 "stock_disponible":4,"sucursal_id":1,"sucursal_nombre":"Casa Matriz"},
	{"producto_id":1,"producto_nombre":"Martillo","precio":8990,"imagen":"martillo.png",
	 "stock_disponible":0,"sucursal_id":2,"sucursal_nombre":"Norte"}
]}`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(&config.SearchConfig{BaseURL: server.URL, Timeout: 2})
	return client, server
}

func TestSearch(t *testing.T) {
	var gotPath, gotQuery string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("nombre")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchBody))
	})
	defer server.Close()

	records, err := client.Search(context.Background(), "martillo")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if gotPath != "/buscar_producto" {
		t.Errorf("Expected /buscar_producto, got %s", gotPath)
	}
	if gotQuery != "martillo" {
		t.Errorf("Expected nombre=martillo, got %s", gotQuery)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.ProductID != 1 || first.PriceCLP != 9990 || first.BranchName != "Casa Matriz" {
		t.Errorf("Unexpected first record: %+v", first)
	}
	if records[1].StockAvailable != 0 {
		t.Errorf("Expected zero stock on second record, got %d", records[1].StockAvailable)
	}
}

func TestSearchEncodesName(t *testing.T) {
	var gotQuery string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("nombre")
		w.Write([]byte(`{"resultados":[]}`))
	})
	defer server.Close()

	if _, err := client.Search(context.Background(), "sierra circular"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery != "sierra circular" {
		t.Errorf("Name should round-trip through encoding, got %s", gotQuery)
	}
}

func TestSearchBadStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	defer server.Close()

	if _, err := client.Search(context.Background(), "martillo"); !errors.Is(err, ErrSearchFailed) {
		t.Errorf("Expected ErrSearchFailed, got %v", err)
	}
}

func TestSearchMalformedBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	defer server.Close()

	if _, err := client.Search(context.Background(), "martillo"); !errors.Is(err, ErrSearchFailed) {
		t.Errorf("Expected ErrSearchFailed, got %v", err)
	}
}

func TestSearchUnreachable(t *testing.T) {
	client := NewClient(&config.SearchConfig{BaseURL: "http://127.0.0.1:1", Timeout: 1})
	if _, err := client.Search(context.Background(), "martillo"); !errors.Is(err, ErrSearchFailed) {
		t.Errorf("Expected ErrSearchFailed, got %v", err)
	}
}
