package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/i474232898/skywatch/internal/lco"
	"github.com/i474232898/skywatch/internal/visibility"
)

// ErrSiteNotFound is returned when the requested code is not in the live site list.
var ErrSiteNotFound = lco.ErrSiteNotFound

const (
	liveTitle        = "SKYWATCH FORECAST REPORT"
	headingStatus    = "TELESCOPE STATUS"
	headingForecast  = "VISIBILITY FORECAST"
	headingBreakdown = "DETAILED BREAKDOWN"

	breakdownLimit = 5
	markerOK       = "[OK]"
	markerWarn     = "[!!]"
)

// SiteFinder resolves a site code against the live site list.
type SiteFinder interface {
	FindSite(ctx context.Context, code string) (lco.Site, error)
}

// InstrumentLister returns the instruments registered at a site.
type InstrumentLister interface {
	ListInstruments(ctx context.Context, siteCode string) []lco.Instrument
}

// LiveSource builds reports from the remote site and instrument lists.
type LiveSource struct {
	sites       SiteFinder
	instruments InstrumentLister
	opts        options
}

// NewLiveSource returns a LiveSource reading from sites and instruments.
func NewLiveSource(sites SiteFinder, instruments InstrumentLister, opts ...Option) *LiveSource {
	return &LiveSource{
		sites:       sites,
		instruments: instruments,
		opts:        buildOptions(opts),
	}
}

func (s *LiveSource) Mode() Mode { return ModeLive }

// Summary resolves the site, fetches its instruments and scores it. An
// unknown site returns ErrSiteNotFound before any instrument request.
func (s *LiveSource) Summary(ctx context.Context, siteCode string) (*Summary, error) {
	site, err := s.sites.FindSite(ctx, siteCode)
	if err != nil {
		s.opts.metrics.ObserveReport(string(ModeLive), "not_found")
		return nil, err
	}

	instruments := s.instruments.ListInstruments(ctx, siteCode)
	score := visibility.Score(value(site.Latitude), value(site.Longitude), value(site.Elevation), s.opts.newRand())

	s.opts.metrics.ObserveScore(score)
	s.opts.metrics.ObserveReport(string(ModeLive), "ok")
	s.opts.logger.Debug("live summary built", "site", siteCode, "instruments", len(instruments), "score", score)

	return &Summary{
		ID:          s.opts.newID(),
		Mode:        ModeLive,
		Code:        siteCode,
		Site:        site,
		Instruments: instruments,
		Status:      CountStatus(instruments),
		Visibility:  Visibility{Score: score, Label: visibility.Label(score)},
		GeneratedAt: s.opts.now(),
	}, nil
}

func (s *LiveSource) Build(ctx context.Context, siteCode string) (*Report, error) {
	sum, err := s.Summary(ctx, siteCode)
	if err != nil {
		return nil, err
	}
	return LiveReport(sum), nil
}

// LiveReport formats a live summary into its four sections.
func LiveReport(sum *Summary) *Report {
	site := sum.Site

	header := Section{Lines: []string{
		fmt.Sprintf("Observatory: %s (%s)", orNA(site.Name), strings.ToUpper(sum.Code)),
		fmt.Sprintf("Location: %s, %s", formatCoord(site.Latitude), formatCoord(site.Longitude)),
		fmt.Sprintf("Elevation: %s", formatElevation(site.Elevation)),
		fmt.Sprintf("Timezone: %s", orNA(site.Timezone)),
		fmt.Sprintf("Generated: %s", sum.GeneratedAt.Format(timestampLayout)),
	}}

	status := Section{Heading: headingStatus, Lines: []string{
		fmt.Sprintf("Total Instruments: %d", sum.Status.Total),
		fmt.Sprintf("Available: %d", sum.Status.Available),
		fmt.Sprintf("Maintenance: %d", sum.Status.Maintenance),
	}}

	forecast := Section{Heading: headingForecast, Lines: []string{
		fmt.Sprintf("Current Score: %.1f/100", sum.Visibility.Score),
		fmt.Sprintf("Status: %s", sum.Visibility.Label),
	}}

	breakdown := Section{Heading: headingBreakdown, Lines: []string{}}
	for i, in := range sum.Instruments {
		if i == breakdownLimit {
			break
		}
		marker := markerWarn
		if in.Available() {
			marker = markerOK
		}
		breakdown.Lines = append(breakdown.Lines, fmt.Sprintf("%s %s - %s", marker, orNA(in.Name), orNA(in.State)))
	}
	if len(breakdown.Lines) == 0 {
		breakdown.Lines = append(breakdown.Lines, "No instrument data available.")
	}

	return &Report{
		ID:          sum.ID,
		Mode:        ModeLive,
		SiteCode:    sum.Code,
		Title:       liveTitle,
		GeneratedAt: sum.GeneratedAt,
		Sections:    []Section{header, status, forecast, breakdown},
	}
}
