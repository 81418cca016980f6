package lco

import (
	"context"
	"log/slog"

	"github.com/i474232898/skywatch/internal/metrics"
)

// RawFetcher is the part of Client the prober depends on.
type RawFetcher interface {
	GetRaw(ctx context.Context, url string) (any, error)
}

// Reachability is the outcome of a probe.
type Reachability struct {
	Reachable bool     `json:"reachable"`
	URL       string   `json:"url,omitempty"`
	Attempted []string `json:"attempted"`

	// Items is the size of the "results" collection when the successful
	// payload had one; HasItems tells whether it did.
	Items    int  `json:"items"`
	HasItems bool `json:"hasItems"`
}

// Prober establishes connectivity by trying candidate endpoints in order.
type Prober struct {
	fetcher RawFetcher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewProber(fetcher RawFetcher, logger *slog.Logger, m *metrics.Metrics) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{fetcher: fetcher, logger: logger, metrics: m}
}

// Probe tries each URL until one returns a non-empty payload. URLs after the
// first success are not requested.
func (p *Prober) Probe(ctx context.Context, urls []string) Reachability {
	res := Reachability{Attempted: make([]string, 0, len(urls))}

	for _, u := range urls {
		p.logger.Info("probing endpoint", "url", u)
		res.Attempted = append(res.Attempted, u)

		data, err := p.fetcher.GetRaw(ctx, u)
		if err != nil || !nonEmpty(data) {
			continue
		}

		res.Reachable = true
		res.URL = u
		if obj, ok := data.(map[string]any); ok {
			if results, ok := obj["results"].([]any); ok {
				res.Items = len(results)
				res.HasItems = true
			}
		}
		p.logger.Info("endpoint reachable", "url", u, "items", res.Items)
		p.metrics.ObserveProbe(true)
		return res
	}

	p.logger.Warn("no endpoint reachable; authentication may be required", "attempted", len(res.Attempted))
	p.metrics.ObserveProbe(false)
	return res
}

// nonEmpty reports whether a decoded JSON value carries any data.
func nonEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}
