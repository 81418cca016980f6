package lco

// StateAvailable is the only instrument state treated as operational. Every
// other state string is reported as maintenance.
const StateAvailable = "AVAILABLE"

// Site is an observatory location, identified by Code. Coordinates are nil
// when the remote record omits them.
type Site struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Elevation *float64 `json:"elevation"`
	Timezone  string   `json:"timezone"`
}

// Instrument is a telescope or sensor unit attached to a site by code.
type Instrument struct {
	Name      string `json:"name"`
	Site      string `json:"site"`
	Telescope string `json:"telescope"`
	State     string `json:"state"`
	Type      string `json:"type"`
}

// Available reports whether the instrument is in the AVAILABLE state.
func (i Instrument) Available() bool {
	return i.State == StateAvailable
}

// page is the paginated envelope the API wraps collections in.
type page[T any] struct {
	Results []*T `json:"results"`
}

// Wire records: every field may be absent.

type siteRecord struct {
	Code      *string  `json:"code"`
	Name      *string  `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Elevation *float64 `json:"elevation"`
	Timezone  *string  `json:"timezone"`
}

func (r siteRecord) toSite() Site {
	return Site{
		Code:      deref(r.Code),
		Name:      deref(r.Name),
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Elevation: r.Elevation,
		Timezone:  deref(r.Timezone),
	}
}

type instrumentRecord struct {
	Name           *string `json:"name"`
	Site           *string `json:"site"`
	Telescope      *string `json:"telescope"`
	State          *string `json:"state"`
	InstrumentType *string `json:"instrument_type"`
}

func (r instrumentRecord) toInstrument() Instrument {
	return Instrument{
		Name:      deref(r.Name),
		Site:      deref(r.Site),
		Telescope: deref(r.Telescope),
		State:     deref(r.State),
		Type:      deref(r.InstrumentType),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
