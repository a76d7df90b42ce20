package shopclient

import (
	"context"
	"errors"
	"testing"

	"tiendascan/pkg/catalog"
)

type fakeSearch struct {
	records []catalog.SearchRecord
	err     error
	calls   int
}

func (f *fakeSearch) Search(ctx context.Context, name string) ([]catalog.SearchRecord, error) {
	f.calls++
	return f.records, f.err
}

type fakeRates struct {
	rate  float64
	err   error
	calls int
}

func (f *fakeRates) FetchRate(ctx context.Context) (float64, error) {
	f.calls++
	return f.rate, f.err
}

func sampleRecords() []catalog.SearchRecord {
	return []catalog.SearchRecord{
		{ProductID: 1, ProductName: "Martillo", PriceCLP: 9990, StockAvailable: 4, BranchID: 1, BranchName: "Casa Matriz"},
		{ProductID: 1, ProductName: "Martillo", PriceCLP: 8990, StockAvailable: 0, BranchID: 2, BranchName: "Norte"},
	}
}

func TestPerformSearch(t *testing.T) {
	search := &fakeSearch{records: sampleRecords()}
	rates := &fakeRates{rate: 899.0}
	s := NewSearcher(search, rates)

	result, err := s.PerformSearch(context.Background(), "martillo")
	if err != nil {
		t.Fatalf("PerformSearch failed: %v", err)
	}

	if !result.RateAvailable || result.Rate == nil || *result.Rate != 899.0 {
		t.Errorf("Expected rate 899.0, got %+v", result)
	}
	if result.RateNotice != "" {
		t.Errorf("Expected no notice, got %s", result.RateNotice)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(result.Groups))
	}
	if len(result.Alerts) != 1 {
		t.Errorf("Expected 1 stock alert, got %d", len(result.Alerts))
	}
	if result.Groups[0].MinPriceCLP != 8990 {
		t.Errorf("Expected min price 8990, got %d", result.Groups[0].MinPriceCLP)
	}
}

func TestPerformSearchRateFailureDegrades(t *testing.T) {
	search := &fakeSearch{records: sampleRecords()}
	rates := &fakeRates{err: errors.New("boom")}
	s := NewSearcher(search, rates)

	result, err := s.PerformSearch(context.Background(), "martillo")
	if err != nil {
		t.Fatalf("Rate failure must not abort the search: %v", err)
	}

	if result.RateAvailable || result.Rate != nil {
		t.Errorf("Expected CLP-only result, got %+v", result)
	}
	if result.RateNotice == "" {
		t.Error("Expected a one-time degradation notice")
	}
	if len(result.Groups) != 1 {
		t.Errorf("Groups should still be aggregated, got %d", len(result.Groups))
	}
}

func TestPerformSearchFailureAborts(t *testing.T) {
	search := &fakeSearch{err: ErrSearchFailed}
	rates := &fakeRates{rate: 899.0}
	s := NewSearcher(search, rates)

	result, err := s.PerformSearch(context.Background(), "martillo")
	if !errors.Is(err, ErrSearchFailed) {
		t.Errorf("Expected ErrSearchFailed, got %v", err)
	}
	if result != nil {
		t.Errorf("Expected no partial result, got %+v", result)
	}
}

func TestStaleResults(t *testing.T) {
	search := &fakeSearch{records: sampleRecords()}
	rates := &fakeRates{rate: 899.0}
	s := NewSearcher(search, rates)

	first, err := s.PerformSearch(context.Background(), "martillo")
	if err != nil {
		t.Fatalf("PerformSearch failed: %v", err)
	}
	if s.Stale(first) {
		t.Error("Latest result should not be stale")
	}

	second, err := s.PerformSearch(context.Background(), "taladro")
	if err != nil {
		t.Fatalf("PerformSearch failed: %v", err)
	}

	if !s.Stale(first) {
		t.Error("Older result should be stale after a newer search")
	}
	if s.Stale(second) {
		t.Error("Newest result should not be stale")
	}
	if second.Seq <= first.Seq {
		t.Errorf("Sequence should be monotonic: %d then %d", first.Seq, second.Seq)
	}
}
