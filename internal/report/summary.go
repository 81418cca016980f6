package report

import (
	"strconv"
	"time"

	"github.com/i474232898/skywatch/internal/lco"
)

// Summary is the structured data a report is rendered from. It is also the
// JSON body served by the web API.
type Summary struct {
	ID          string           `json:"id"`
	Mode        Mode             `json:"mode"`
	Code        string           `json:"code"`
	Site        lco.Site         `json:"site"`
	Instruments []lco.Instrument `json:"instruments"`
	Status      Status           `json:"status"`
	Visibility  Visibility       `json:"visibility"`
	Conditions  *Conditions      `json:"conditions,omitempty"`
	Forecast    []ForecastSlot   `json:"forecast,omitempty"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// Status counts instruments by state. Maintenance is every instrument that is
// not AVAILABLE, whatever its actual state string.
type Status struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Maintenance int `json:"maintenance"`
}

func CountStatus(instruments []lco.Instrument) Status {
	st := Status{Total: len(instruments)}
	for _, in := range instruments {
		if in.Available() {
			st.Available++
		}
	}
	st.Maintenance = st.Total - st.Available
	return st
}

type Visibility struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// Conditions are simulated observing conditions shown in demo reports.
type Conditions struct {
	CloudCoverPct       int     `json:"cloudCoverPct"`
	TemperatureF        int     `json:"temperatureF"`
	WindSpeedMPH        int     `json:"windSpeedMph"`
	SeeingArcsec        float64 `json:"seeingArcsec"`
	MoonIlluminationPct int     `json:"moonIlluminationPct"`
}

type ForecastSlot struct {
	Time  time.Time `json:"time"`
	Score float64   `json:"score"`
}

const notAvailable = "n/a"

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func formatCoord(p *float64) string {
	if p == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*p, 'f', 4, 64) + "°"
}

func formatElevation(p *float64) string {
	if p == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*p, 'f', -1, 64) + "m"
}
