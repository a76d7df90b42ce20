package shopclient

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"tiendascan/pkg/catalog"
	"tiendascan/pkg/logger"
)

// Notice shown once per search when the dollar rate could not be fetched
const rateNotice = "No se pudo obtener el valor del dólar. Los precios se mostrarán solo en CLP."

// ProductSearcher is the search side of the widget flow
type ProductSearcher interface {
	Search(ctx context.Context, name string) ([]catalog.SearchRecord, error)
}

// RateProvider is the CLP/USD lookup side of the widget flow
type RateProvider interface {
	FetchRate(ctx context.Context) (float64, error)
}

// Result is one complete search outcome ready for display
type Result struct {
	// Seq orders results of racing searches; stale results carry a lower
	// value than the searcher's current sequence
	Seq           uint64
	Term          string
	Groups        []catalog.ProductGroup
	Alerts        []catalog.StockAlert
	Rate          *float64
	RateAvailable bool
	// RateNotice is set once when the rate lookup degraded
	RateNotice string
}

// Searcher orchestrates product search, the rate lookup and aggregation
type Searcher struct {
	search ProductSearcher
	rates  RateProvider
	seq    atomic.Uint64
}

// NewSearcher wires a searcher from its two clients
func NewSearcher(search ProductSearcher, rates RateProvider) *Searcher {
	return &Searcher{search: search, rates: rates}
}

// PerformSearch runs one widget search. The rate is fetched fresh per
// search and its failure degrades the result to CLP-only; a search failure
// aborts with no partial result.
func (s *Searcher) PerformSearch(ctx context.Context, term string) (*Result, error) {
	seq := s.seq.Add(1)

	records, err := s.search.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	result := &Result{Seq: seq, Term: term}

	value, err := s.rates.FetchRate(ctx)
	if err != nil {
		logger.Warn("Continuing without dollar rate", zap.String("term", term), zap.Error(err))
		result.RateNotice = rateNotice
	} else {
		result.Rate = &value
		result.RateAvailable = true
	}

	result.Groups, result.Alerts = catalog.Aggregate(records)
	return result, nil
}

// Stale reports whether a newer search has been issued since this result
func (s *Searcher) Stale(r *Result) bool {
	return r == nil || r.Seq != s.seq.Load()
}
