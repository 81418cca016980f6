package report

import (
	"context"
	"strings"
	"time"
)

// Mode tells which source produced a report.
type Mode string

const (
	ModeLive Mode = "live"
	ModeDemo Mode = "demo"
)

const (
	titleRule   = 50
	sectionRule = 20

	timestampLayout = "2006-01-02 15:04:05"
	slotLayout      = "15:04"
)

// ReportSource builds reports for a site code. LiveSource reads the remote
// API; DemoSource synthesizes everything.
type ReportSource interface {
	Mode() Mode
	Summary(ctx context.Context, siteCode string) (*Summary, error)
	Build(ctx context.Context, siteCode string) (*Report, error)
}

// Section is one titled block of report lines. The header section has no
// heading.
type Section struct {
	Heading string   `json:"heading,omitempty"`
	Lines   []string `json:"lines"`
}

// Report is an ordered list of formatted sections, built fresh per call.
type Report struct {
	ID          string    `json:"id"`
	Mode        Mode      `json:"mode"`
	SiteCode    string    `json:"siteCode"`
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generatedAt"`
	Sections    []Section `json:"sections"`
}

// Text renders the report as plain text.
func (r *Report) Text() string {
	var b strings.Builder

	b.WriteString(r.Title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", titleRule))
	b.WriteByte('\n')

	for _, sec := range r.Sections {
		b.WriteByte('\n')
		if sec.Heading != "" {
			b.WriteString(sec.Heading)
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("-", sectionRule))
			b.WriteByte('\n')
		}
		for _, line := range sec.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Section returns the section with the given heading, if present.
func (r *Report) Section(heading string) (Section, bool) {
	for _, sec := range r.Sections {
		if sec.Heading == heading {
			return sec, true
		}
	}
	return Section{}, false
}
