package lco

import (
	"context"
	"fmt"
	"log/slog"
)

// Fetcher is the part of Client the repositories depend on.
type Fetcher interface {
	Get(ctx context.Context, url string, out any) error
}

// SiteRepository lists observatory sites from the sites endpoint.
type SiteRepository struct {
	fetcher Fetcher
	url     string
	logger  *slog.Logger
}

func NewSiteRepository(fetcher Fetcher, cfg Config, logger *slog.Logger) *SiteRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SiteRepository{
		fetcher: fetcher,
		url:     cfg.SitesURL(),
		logger:  logger,
	}
}

// ListSites returns every site the API reports. Fetch and decode failures
// yield an empty slice; they are logged by the client, not returned.
func (r *SiteRepository) ListSites(ctx context.Context) []Site {
	var p page[siteRecord]
	if err := r.fetcher.Get(ctx, r.url, &p); err != nil {
		r.logger.Debug("site list unavailable", "err", err)
		return []Site{}
	}

	sites := make([]Site, 0, len(p.Results))
	for _, rec := range p.Results {
		if rec == nil {
			continue
		}
		sites = append(sites, rec.toSite())
	}
	return sites
}

// FindSite returns the site whose code matches exactly, or ErrSiteNotFound.
func (r *SiteRepository) FindSite(ctx context.Context, code string) (Site, error) {
	site, ok := LookupSite(r.ListSites(ctx), code)
	if !ok {
		return Site{}, fmt.Errorf("%w: %s", ErrSiteNotFound, code)
	}
	return site, nil
}

// LookupSite scans sites for an exact, case-sensitive code match.
func LookupSite(sites []Site, code string) (Site, bool) {
	for _, s := range sites {
		if s.Code == code {
			return s, true
		}
	}
	return Site{}, false
}
