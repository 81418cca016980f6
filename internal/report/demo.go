package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/skywatch/internal/lco"
	"github.com/i474232898/skywatch/internal/visibility"
)

// UnknownObservatory names any code missing from the demo table.
const UnknownObservatory = "Unknown Observatory"

const (
	demoTitle       = "SKYWATCH DEMO FORECAST"
	headingCurrent  = "CURRENT CONDITIONS"
	headingTargets  = "TONIGHT'S BEST TARGETS"
	headingHourly   = "HOURLY FORECAST"
	headingNotes    = "NOTES"
	forecastSlots   = 4
	demoScoreLow    = 60.0
	demoScoreHigh   = 95.0
	demoExcellentGt = 80.0
)

type demoSite struct {
	code      string
	name      string
	lat, lon  float64
	elevation float64
	timezone  string
}

var demoSites = []demoSite{
	{"ogg", "Haleakala Observatory, Hawaii", 20.7084, -156.2570, 3052, "Pacific/Honolulu"},
	{"coj", "Siding Spring Observatory, Australia", -31.2734, 149.0700, 1116, "Australia/Sydney"},
	{"lsc", "Cerro Tololo, Chile", -30.1677, -70.8047, 2207, "America/Santiago"},
	{"elp", "McDonald Observatory, Texas", 30.6797, -104.0247, 2027, "America/Chicago"},
	{"tfn", "Teide Observatory, Canary Islands", 28.3009, -16.5105, 2390, "Atlantic/Canary"},
	{"cpt", "South African Astronomical Observatory", -32.3806, 20.8106, 1798, "Africa/Johannesburg"},
}

var demoTargets = []string{
	"Jupiter - Magnitude -2.5, 45° altitude",
	"Saturn - Magnitude 0.5, 60° altitude",
	"Orion Nebula - Magnitude 4.0, 70° altitude",
	"Andromeda Galaxy - Magnitude 3.4, 50° altitude",
}

func (d demoSite) site() lco.Site {
	lat, lon, elev := d.lat, d.lon, d.elevation
	return lco.Site{
		Code:      d.code,
		Name:      d.name,
		Latitude:  &lat,
		Longitude: &lon,
		Elevation: &elev,
		Timezone:  d.timezone,
	}
}

// DemoSites returns the fixed demo network.
func DemoSites() []lco.Site {
	sites := make([]lco.Site, 0, len(demoSites))
	for _, d := range demoSites {
		sites = append(sites, d.site())
	}
	return sites
}

// DemoSite looks code up in the demo table. Unknown codes get a site named
// UnknownObservatory with no coordinates.
func DemoSite(code string) lco.Site {
	for _, d := range demoSites {
		if d.code == code {
			return d.site()
		}
	}
	return lco.Site{Code: code, Name: UnknownObservatory}
}

// DemoSource synthesizes reports when the remote API cannot be reached.
// It never fails on an unknown code.
type DemoSource struct {
	opts options
}

func NewDemoSource(opts ...Option) *DemoSource {
	return &DemoSource{opts: buildOptions(opts)}
}

func (s *DemoSource) Mode() Mode { return ModeDemo }

// Summary draws, in order: score, cloud cover, temperature, wind, seeing,
// moon illumination and three hourly slots.
func (s *DemoSource) Summary(ctx context.Context, siteCode string) (*Summary, error) {
	rng := s.opts.newRand()
	now := s.opts.now()

	score := visibility.Uniform(rng, demoScoreLow, demoScoreHigh)
	cond := &Conditions{
		CloudCoverPct:       visibility.IntRange(rng, 0, 30),
		TemperatureF:        visibility.IntRange(rng, 45, 75),
		WindSpeedMPH:        visibility.IntRange(rng, 5, 15),
		SeeingArcsec:        visibility.Uniform(rng, 1.0, 2.5),
		MoonIlluminationPct: visibility.IntRange(rng, 10, 90),
	}

	forecast := make([]ForecastSlot, 0, forecastSlots)
	forecast = append(forecast, ForecastSlot{Time: now, Score: score})
	for i, bounds := range [][2]int{{70, 100}, {70, 100}, {60, 95}} {
		forecast = append(forecast, ForecastSlot{
			Time:  now.Add(time.Duration(i+1) * time.Hour),
			Score: float64(visibility.IntRange(rng, bounds[0], bounds[1])),
		})
	}

	label := "Good"
	if score > demoExcellentGt {
		label = "Excellent"
	}

	s.opts.metrics.ObserveScore(score)
	s.opts.metrics.ObserveReport(string(ModeDemo), "ok")

	return &Summary{
		ID:          s.opts.newID(),
		Mode:        ModeDemo,
		Code:        siteCode,
		Site:        DemoSite(siteCode),
		Instruments: []lco.Instrument{},
		Visibility:  Visibility{Score: score, Label: label},
		Conditions:  cond,
		Forecast:    forecast,
		GeneratedAt: now,
	}, nil
}

func (s *DemoSource) Build(ctx context.Context, siteCode string) (*Report, error) {
	sum, err := s.Summary(ctx, siteCode)
	if err != nil {
		return nil, err
	}
	return DemoReport(sum), nil
}

// DemoReport formats a demo summary.
func DemoReport(sum *Summary) *Report {
	cond := sum.Conditions
	if cond == nil {
		cond = &Conditions{}
	}

	header := Section{Lines: []string{
		fmt.Sprintf("Observatory: %s (%s)", orNA(sum.Site.Name), strings.ToUpper(sum.Code)),
		fmt.Sprintf("Generated: %s", sum.GeneratedAt.Format(timestampLayout)),
	}}

	current := Section{Heading: headingCurrent, Lines: []string{
		fmt.Sprintf("Current Conditions: %.0f/100 - %s", sum.Visibility.Score, sum.Visibility.Label),
		fmt.Sprintf("Cloud Cover: %d%%", cond.CloudCoverPct),
		fmt.Sprintf("Temperature: %d°F", cond.TemperatureF),
		fmt.Sprintf("Wind Speed: %d mph", cond.WindSpeedMPH),
		fmt.Sprintf("Atmospheric Seeing: %.1f arcsec", cond.SeeingArcsec),
		fmt.Sprintf("Moon Illumination: %d%%", cond.MoonIlluminationPct),
	}}

	targets := Section{Heading: headingTargets, Lines: make([]string, 0, len(demoTargets))}
	for _, t := range demoTargets {
		targets.Lines = append(targets.Lines, "- "+t)
	}

	hourly := Section{Heading: headingHourly, Lines: make([]string, 0, len(sum.Forecast))}
	for _, slot := range sum.Forecast {
		hourly.Lines = append(hourly.Lines, fmt.Sprintf("%s - %.0f/100", slot.Time.Format(slotLayout), slot.Score))
	}

	notes := Section{Heading: headingNotes, Lines: []string{
		"Simulated data: the telescope network API was not reachable.",
		"Set LCO_API_TOKEN to get real telescope data.",
	}}

	return &Report{
		ID:          sum.ID,
		Mode:        ModeDemo,
		SiteCode:    sum.Code,
		Title:       demoTitle,
		GeneratedAt: sum.GeneratedAt,
		Sections:    []Section{header, current, targets, hourly, notes},
	}
}

// NetworkEntry is one row of the network overview.
type NetworkEntry struct {
	Site  lco.Site `json:"site"`
	Score float64  `json:"score"`
	Label string   `json:"label"`
}

// NetworkOverview scores every demo site with one draw each from rng.
func NetworkOverview(rng visibility.Rand) []NetworkEntry {
	entries := make([]NetworkEntry, 0, len(demoSites))
	for _, d := range demoSites {
		score := visibility.Score(d.lat, d.lon, d.elevation, rng)
		entries = append(entries, NetworkEntry{
			Site:  d.site(),
			Score: score,
			Label: visibility.NetworkLabel(score),
		})
	}
	return entries
}

// NetworkOverviewText renders entries as a numbered list.
func NetworkOverviewText(entries []NetworkEntry) string {
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s (%s) - %s (%.0f/100)\n", i+1, e.Site.Name, strings.ToUpper(e.Site.Code), e.Label, e.Score)
	}
	return b.String()
}
