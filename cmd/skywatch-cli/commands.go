package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/skywatch/internal/lco"
	"github.com/i474232898/skywatch/internal/report"
	"github.com/i474232898/skywatch/internal/scheduler"
	"github.com/i474232898/skywatch/internal/visibility"
)

const defaultSite = "ogg"

var (
	sitesLimit   int
	reportDemo   bool
	reportFormat string
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check which API endpoints answer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reach := deps.Prober.Probe(cmd.Context(), deps.Client.Config().ProbeURLs())
		writeProbe(cmd.OutOrStdout(), reach)
		return nil
	},
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List observatory sites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sites := deps.Sites.ListSites(cmd.Context())
		if len(sites) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Sites endpoint returned nothing (authentication may be required); demo sites:")
			sites = report.DemoSites()
		}
		writeSites(cmd.OutOrStdout(), sites, sitesLimit)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [site]",
	Short: "Print a visibility report for a site (default ogg)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := defaultSite
		if len(args) == 1 {
			code = args[0]
		}

		var src report.ReportSource = deps.Demo
		if !reportDemo {
			src, _ = deps.Selector.Select(cmd.Context())
		}

		rep, err := src.Build(cmd.Context(), code)
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), rep, reportFormat)
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print the simulated network overview, a detailed forecast and a demo report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "DEMO MODE - Observatory Network")
		rng := visibility.NewRand()
		fmt.Fprint(out, report.NetworkOverviewText(report.NetworkOverview(rng)))
		fmt.Fprintln(out)

		forecast := report.NetworkForecast(report.DemoSite(defaultSite), time.Now(), rng)
		if err := writeReport(out, forecast, "text"); err != nil {
			return err
		}
		fmt.Fprintln(out)

		rep, err := deps.Demo.Build(cmd.Context(), defaultSite)
		if err != nil {
			return err
		}
		return writeReport(out, rep, "text")
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild reports for REPORT_SITES every REPORT_INTERVAL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s := scheduler.New(deps.Config.ReportSites, deps.Config.ReportInterval, deps.Selector, func(r *report.Report) {
			fmt.Fprintln(out, r.Text())
		}, deps.Logger)

		if err := s.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer s.Stop()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	},
}

func init() {
	sitesCmd.Flags().IntVar(&sitesLimit, "limit", 6, "maximum number of sites to print (0 = all)")
	reportCmd.Flags().BoolVar(&reportDemo, "demo", false, "skip the API and use simulated data")
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "output format: text or html")
}

func writeProbe(w io.Writer, reach lco.Reachability) {
	for _, u := range reach.Attempted {
		fmt.Fprintf(w, "Testing: %s\n", u)
	}
	if !reach.Reachable {
		fmt.Fprintln(w, "Could not connect to the API; it may require authentication or have changed endpoints.")
		return
	}
	fmt.Fprintf(w, "Connected via %s\n", reach.URL)
	if reach.HasItems {
		fmt.Fprintf(w, "Found %d items\n", reach.Items)
	} else {
		fmt.Fprintln(w, "Connected and received data")
	}
}

func writeSites(w io.Writer, sites []lco.Site, limit int) {
	for i, s := range sites {
		if limit > 0 && i == limit {
			break
		}
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, s.Name, s.Code)
	}
}

func writeReport(w io.Writer, rep *report.Report, format string) error {
	switch format {
	case "html":
		return rep.HTML(w)
	case "text", "":
		_, err := io.WriteString(w, rep.Text())
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
