package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/skywatch/internal/lco"
	"github.com/i474232898/skywatch/internal/visibility"
)

const (
	networkForecastTitle = "SKYWATCH NETWORK FORECAST"
	headingOptimal       = "OPTIMAL TARGETS TONIGHT"
	headingSixHour       = "6-HOUR VISIBILITY FORECAST"
	sixHourSlots         = 6
	sixHourLow           = 75
	sixHourHigh          = 95
)

var optimalTargets = []string{
	"Jupiter - Mag -2.5, Alt 65°, Az 180°",
	"Saturn - Mag 0.5, Alt 45°, Az 220°",
	"Orion Nebula (M42) - Mag 4.0, Alt 70°",
	"Andromeda Galaxy (M31) - Mag 3.4, Alt 55°",
	"Sirius - Mag -1.5, Alt 40°, Az 160°",
	"Vega - Mag 0.0, Alt 80°, Az 45°",
}

// NetworkForecast is the detailed simulated forecast shown alongside the
// network overview. Draws, in order: site score, cloud cover, temperature,
// wind, seeing, moon phase and six hourly slots.
func NetworkForecast(site lco.Site, now time.Time, rng visibility.Rand) *Report {
	score := visibility.Score(value(site.Latitude), value(site.Longitude), value(site.Elevation), rng)

	header := Section{Lines: []string{
		fmt.Sprintf("Observatory: %s (%s)", orNA(site.Name), strings.ToUpper(site.Code)),
		fmt.Sprintf("Generated: %s", now.Format(timestampLayout)),
		fmt.Sprintf("Coordinates: %s, %s", formatCoord(site.Latitude), formatCoord(site.Longitude)),
		fmt.Sprintf("Elevation: %s", formatElevation(site.Elevation)),
		fmt.Sprintf("Visibility Score: %.0f/100 - %s", score, strings.ToUpper(visibility.NetworkLabel(score))),
	}}

	current := Section{Heading: headingCurrent, Lines: []string{
		fmt.Sprintf("Cloud Cover: %d%%", visibility.IntRange(rng, 0, 25)),
		fmt.Sprintf("Temperature: %d°F", visibility.IntRange(rng, 55, 70)),
		fmt.Sprintf("Wind Speed: %d mph", visibility.IntRange(rng, 5, 12)),
		fmt.Sprintf("Seeing: %.1f arcseconds", visibility.Uniform(rng, 1.0, 2.0)),
		fmt.Sprintf("Moon Phase: %d%%", visibility.IntRange(rng, 15, 85)),
	}}

	targets := Section{Heading: headingOptimal, Lines: make([]string, 0, len(optimalTargets))}
	for _, t := range optimalTargets {
		targets.Lines = append(targets.Lines, "- "+t)
	}

	hourly := Section{Heading: headingSixHour, Lines: make([]string, 0, sixHourSlots)}
	for i := 0; i < sixHourSlots; i++ {
		slot := float64(visibility.IntRange(rng, sixHourLow, sixHourHigh))
		hourly.Lines = append(hourly.Lines, fmt.Sprintf("%s - %s %.0f/100",
			now.Add(time.Duration(i)*time.Hour).Format(slotLayout), visibility.NetworkLabel(slot), slot))
	}

	return &Report{
		Mode:        ModeDemo,
		SiteCode:    site.Code,
		Title:       networkForecastTitle,
		GeneratedAt: now,
		Sections:    []Section{header, current, targets, hourly},
	}
}
