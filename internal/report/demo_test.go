package report

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/i474232898/skywatch/internal/visibility"
)

func TestDemoReportUnknownSite(t *testing.T) {
	src := NewDemoSource(testOptions(0)...)

	rep, err := src.Build(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("demo reports never fail, got %v", err)
	}
	if rep.Mode != ModeDemo {
		t.Fatalf("expected demo mode, got %s", rep.Mode)
	}
	text := rep.Text()
	if !strings.Contains(text, "Observatory: Unknown Observatory (ZZZ)") {
		t.Fatalf("expected unknown observatory label:\n%s", text)
	}
	if len(rep.Sections) != 5 {
		t.Fatalf("expected full report with 5 sections, got %d", len(rep.Sections))
	}
}

func TestDemoReportLowestDraws(t *testing.T) {
	src := NewDemoSource(testOptions(0)...)

	rep, err := src.Build(context.Background(), "ogg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := rep.Text()
	for _, want := range []string{
		"Observatory: Haleakala Observatory, Hawaii (OGG)",
		"Current Conditions: 60/100 - Good",
		"Cloud Cover: 0%",
		"Temperature: 45°F",
		"Wind Speed: 5 mph",
		"Atmospheric Seeing: 1.0 arcsec",
		"Moon Illumination: 10%",
		"- Jupiter - Magnitude -2.5, 45° altitude",
		"21:00 - 60/100",
		"22:00 - 70/100",
		"23:00 - 70/100",
		"00:00 - 60/100",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
}

func TestDemoReportHighestDraws(t *testing.T) {
	src := NewDemoSource(testOptions(0.9999999)...)

	sum, err := src.Summary(context.Background(), "coj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Visibility.Label != "Excellent" {
		t.Fatalf("expected Excellent, got %+v", sum.Visibility)
	}
	c := sum.Conditions
	if c.CloudCoverPct != 30 || c.TemperatureF != 75 || c.WindSpeedMPH != 15 || c.MoonIlluminationPct != 90 {
		t.Fatalf("unexpected upper bounds %+v", c)
	}
	if len(sum.Forecast) != 4 || sum.Forecast[1].Score != 100 || sum.Forecast[3].Score != 95 {
		t.Fatalf("unexpected forecast %+v", sum.Forecast)
	}
	if sum.Site.Name != "Siding Spring Observatory, Australia" {
		t.Fatalf("unexpected site %+v", sum.Site)
	}
}

func TestDemoSummaryBounds(t *testing.T) {
	var seed uint64
	src := NewDemoSource(WithRandSource(func() visibility.Rand {
		seed++
		return rand.New(rand.NewPCG(seed, seed*7))
	}))

	for i := 0; i < 200; i++ {
		sum, err := src.Summary(context.Background(), "lsc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sum.Visibility.Score < 60 || sum.Visibility.Score > 95 {
			t.Fatalf("demo score %v out of range", sum.Visibility.Score)
		}
		c := sum.Conditions
		if c.SeeingArcsec < 1.0 || c.SeeingArcsec > 2.5 {
			t.Fatalf("seeing %v out of range", c.SeeingArcsec)
		}
		for _, slot := range sum.Forecast[1:] {
			if slot.Score < 60 || slot.Score > 100 {
				t.Fatalf("slot score %v out of range", slot.Score)
			}
		}
	}
}

func TestDemoSites(t *testing.T) {
	sites := DemoSites()
	if len(sites) != 6 {
		t.Fatalf("expected 6 demo sites, got %d", len(sites))
	}
	codes := make([]string, 0, len(sites))
	for _, s := range sites {
		codes = append(codes, s.Code)
	}
	if strings.Join(codes, ",") != "ogg,coj,lsc,elp,tfn,cpt" {
		t.Fatalf("unexpected codes %v", codes)
	}
	if DemoSite("nope").Latitude != nil {
		t.Fatalf("unknown demo site must have no coordinates")
	}
}

func TestNetworkOverview(t *testing.T) {
	entries := NetworkOverview(fixedRand(0.5))
	if len(entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(entries))
	}
	for _, e := range entries {
		want := visibility.Clamp(visibility.Deterministic(*e.Site.Latitude, *e.Site.Longitude, *e.Site.Elevation))
		if e.Score != want {
			t.Fatalf("%s: expected %v, got %v", e.Site.Code, want, e.Score)
		}
		if e.Label != visibility.NetworkLabel(e.Score) {
			t.Fatalf("%s: label mismatch", e.Site.Code)
		}
	}

	text := NetworkOverviewText(entries)
	if !strings.HasPrefix(text, "1. Haleakala Observatory, Hawaii (OGG) - Excellent (98/100)") {
		t.Fatalf("unexpected overview:\n%s", text)
	}
}

func TestReportHTMLEscapes(t *testing.T) {
	rep := &Report{
		ID:    "id-1",
		Mode:  ModeLive,
		Title: "SKYWATCH",
		Sections: []Section{
			{Heading: "DETAILED BREAKDOWN", Lines: []string{"[OK] <script> - AVAILABLE"}},
		},
	}
	var buf bytes.Buffer
	if err := rep.HTML(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>") {
		t.Fatalf("html output must escape line content:\n%s", out)
	}
	if !strings.Contains(out, "<h2>DETAILED BREAKDOWN</h2>") || !strings.Contains(out, `class="report report-live"`) {
		t.Fatalf("unexpected html:\n%s", out)
	}
}
