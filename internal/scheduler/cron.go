package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-articles/config"
	"go-articles/internal/service"
)

type Scheduler struct {
	cron          *cron.Cron
	status        *service.StatusService
	config        config.CronConfig
	logger        *zap.Logger
	reportEntryID cron.EntryID
}

func NewScheduler(status *service.StatusService, cfg config.CronConfig, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		status: status,
		config: cfg,
		logger: logger,
	}
}

// Start registers the status report job and starts the cron runner.
func (s *Scheduler) Start() error {
	id, err := s.cron.AddFunc(s.config.ReportInterval, func() {
		s.report(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule status report %q: %w", s.config.ReportInterval, err)
	}
	s.reportEntryID = id

	s.cron.Start()
	s.logger.Info("Scheduler started", zap.String("report", s.config.ReportInterval))
	return nil
}

// report logs article counts. It only reads.
func (s *Scheduler) report(ctx context.Context) {
	status, err := s.status.GetSystemStatus(ctx)
	if err != nil {
		s.logger.Error("Status report failed", zap.Error(err))
		return
	}

	s.logger.Info("Status report",
		zap.Int64("total", status.TotalArticles),
		zap.Int64("published", status.PublishedArticles),
		zap.Int64("unconfirmed", status.UnconfirmedArticles),
		zap.Int64("trashed", status.TrashedArticles),
		zap.Int64("authors", status.Authors))
}

// NextReportTime returns the next scheduled report, or the zero time before Start.
func (s *Scheduler) NextReportTime() time.Time {
	return s.cron.Entry(s.reportEntryID).Next
}

// Stop halts the runner and waits for a running report to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
