// Package app builds the component graph shared by the server and the CLI.
package app

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/i474232898/skywatch/internal/config"
	"github.com/i474232898/skywatch/internal/lco"
	"github.com/i474232898/skywatch/internal/metrics"
	"github.com/i474232898/skywatch/internal/report"
)

type App struct {
	Config   *config.AppConfig
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Client      *lco.Client
	Prober      *lco.Prober
	Sites       *lco.SiteRepository
	Instruments *lco.InstrumentRepository

	Live     *report.LiveSource
	Demo     *report.DemoSource
	Selector *report.Selector
}

func New(cfg *config.AppConfig, logger *slog.Logger) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	lcoCfg := cfg.LCO()

	// One pooled transport for all outbound calls; requests stay independent.
	client := lco.NewClient(lcoCfg,
		lco.WithHTTPClient(&http.Client{Transport: http.DefaultTransport}),
		lco.WithBreaker(lco.NewBreaker("lco", cfg.BreakerFailures)),
		lco.WithLogger(logger),
		lco.WithMetrics(m),
	)

	sites := lco.NewSiteRepository(client, lcoCfg, logger)
	instruments := lco.NewInstrumentRepository(client, lcoCfg, logger)
	prober := lco.NewProber(client, logger, m)

	opts := []report.Option{report.WithLogger(logger), report.WithMetrics(m)}
	live := report.NewLiveSource(sites, instruments, opts...)
	demo := report.NewDemoSource(opts...)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Registry:    reg,
		Metrics:     m,
		Client:      client,
		Prober:      prober,
		Sites:       sites,
		Instruments: instruments,
		Live:        live,
		Demo:        demo,
		Selector:    report.NewSelector(prober, lcoCfg.ProbeURLs(), live, demo, logger),
	}
}
