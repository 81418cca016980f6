package lco

import (
	"context"
	"log/slog"
)

// InstrumentRepository lists instrument status, optionally per site.
type InstrumentRepository struct {
	fetcher Fetcher
	cfg     Config
	logger  *slog.Logger
}

func NewInstrumentRepository(fetcher Fetcher, cfg Config, logger *slog.Logger) *InstrumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &InstrumentRepository{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
	}
}

// ListInstruments returns instruments for siteCode, or all instruments when
// siteCode is empty. Filtering is left to the API; results are not re-checked.
func (r *InstrumentRepository) ListInstruments(ctx context.Context, siteCode string) []Instrument {
	var p page[instrumentRecord]
	if err := r.fetcher.Get(ctx, r.cfg.InstrumentsURL(siteCode), &p); err != nil {
		r.logger.Debug("instrument list unavailable", "site", siteCode, "err", err)
		return []Instrument{}
	}

	instruments := make([]Instrument, 0, len(p.Results))
	for _, rec := range p.Results {
		if rec == nil {
			continue
		}
		instruments = append(instruments, rec.toInstrument())
	}
	return instruments
}
