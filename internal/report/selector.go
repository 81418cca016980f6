package report

import (
	"context"
	"log/slog"

	"github.com/i474232898/skywatch/internal/lco"
)

type Prober interface {
	Probe(ctx context.Context, urls []string) lco.Reachability
}

// Selector picks the live source when the API answers a probe and the demo
// source otherwise. It probes on every call; nothing is remembered between
// requests.
type Selector struct {
	prober Prober
	urls   []string
	live   ReportSource
	demo   ReportSource
	logger *slog.Logger
}

func NewSelector(prober Prober, urls []string, live, demo ReportSource, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		prober: prober,
		urls:   urls,
		live:   live,
		demo:   demo,
		logger: logger,
	}
}

func (s *Selector) Select(ctx context.Context) (ReportSource, lco.Reachability) {
	reach := s.prober.Probe(ctx, s.urls)
	if reach.Reachable {
		return s.live, reach
	}
	s.logger.Info("falling back to demo data", "attempted", len(reach.Attempted))
	return s.demo, reach
}

// Build selects a source and builds a report for siteCode.
func (s *Selector) Build(ctx context.Context, siteCode string) (*Report, error) {
	src, _ := s.Select(ctx)
	return src.Build(ctx, siteCode)
}

// Summary selects a source and summarizes siteCode.
func (s *Selector) Summary(ctx context.Context, siteCode string) (*Summary, error) {
	src, _ := s.Select(ctx)
	return src.Summary(ctx, siteCode)
}

// Demo returns the fallback source.
func (s *Selector) Demo() ReportSource {
	return s.demo
}
