package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/skywatch/internal/lco"
	"github.com/i474232898/skywatch/internal/report"
)

const (
	defaultMinutes = 15
	jobTimeout     = 2 * time.Minute
)

// SourceSelector chooses the report source for one run.
type SourceSelector interface {
	Select(ctx context.Context) (report.ReportSource, lco.Reachability)
}

// Sink receives every report built by a run. Calls are serialized.
type Sink func(*report.Report)

// Scheduler periodically rebuilds reports for configured sites.
type Scheduler struct {
	scheduler *gocron.Scheduler
	selector  SourceSelector
	sites     []string
	interval  time.Duration
	sink      Sink
	logger    *slog.Logger

	sinkMu sync.Mutex
}

// New creates a new Scheduler.
func New(sites []string, interval time.Duration, selector SourceSelector, sink Sink, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		selector:  selector,
		sites:     sites,
		interval:  interval,
		sink:      sink,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The
// first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.sites) == 0 {
		s.logger.Info("scheduler: no sites configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(jobMinutes(s.interval)).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// jobMinutes converts interval to whole minutes. Positive intervals under a
// minute run every minute; zero or negative intervals use the default.
func jobMinutes(interval time.Duration) int {
	if interval <= 0 {
		return defaultMinutes
	}
	return max(1, int(interval.Minutes()))
}

// RunOnce probes once, then builds a report for every site concurrently.
// It returns the number of reports delivered to the sink.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	s.logger.Info("scheduler: running report job", "sites", len(s.sites))

	src, reach := s.selector.Select(ctx)
	s.logger.Info("scheduler: source selected", "mode", src.Mode(), "reachable", reach.Reachable)

	var (
		wg        sync.WaitGroup
		delivered int
	)
	for _, code := range s.sites {
		wg.Add(1)
		go func() {
			defer wg.Done()

			rep, err := src.Build(ctx, code)
			if err != nil {
				s.logger.Warn("scheduler: report failed", "site", code, "err", err)
				return
			}

			s.sinkMu.Lock()
			defer s.sinkMu.Unlock()
			delivered++
			if s.sink != nil {
				s.sink(rep)
			}
		}()
	}
	wg.Wait()

	s.logger.Info("scheduler: completed report job", "delivered", delivered)
	return delivered
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
