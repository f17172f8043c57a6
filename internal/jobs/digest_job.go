package jobs

import (
	"context"
	"time"

	"github.com/lynck-services/lead-api/internal/domain"
	"go.uber.org/zap"
)

// DigestJobName is the name of the daily stats digest job
const DigestJobName = "daily_digest"

// DefaultDigestTimeout bounds a single digest delivery attempt
const DefaultDigestTimeout = 30 * time.Second

// StatsProvider computes the dashboard counters for the digest.
// This interface allows the job to call the service without importing the service package directly.
type StatsProvider interface {
	Stats(ctx context.Context) (*domain.DashboardStatsDTO, error)
}

// DigestSender delivers the computed stats to the configured endpoint.
type DigestSender interface {
	Enabled() bool
	SendDigest(ctx context.Context, stats domain.DashboardStatsDTO) error
}

// DigestJob computes the dashboard stats and pushes them to the webhook
// endpoint once a day. Delivery is best-effort; a failed push is logged
// and retried at the next scheduled run.
type DigestJob struct {
	stats   StatsProvider
	sender  DigestSender
	logger  *zap.Logger
	timeout time.Duration
}

// NewDigestJob creates a new daily digest job.
func NewDigestJob(stats StatsProvider, sender DigestSender, logger *zap.Logger, timeout time.Duration) *DigestJob {
	if timeout <= 0 {
		timeout = DefaultDigestTimeout
	}
	return &DigestJob{
		stats:   stats,
		sender:  sender,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the digest job. This is called by the scheduler according
// to the cron expression.
func (j *DigestJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	stats, err := j.stats.Stats(ctx)
	if err != nil {
		j.logger.Error("daily digest stats computation failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if err := j.sender.SendDigest(ctx, *stats); err != nil {
		j.logger.Error("daily digest delivery failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("daily digest delivered",
		zap.Int64("leads_today", stats.LeadsToday),
		zap.Int64("leads_this_week", stats.LeadsThisWeek),
		zap.Duration("duration", time.Since(start)))
}

// RegisterDigestJob registers the daily digest job with the scheduler.
// The cronExpr should be a valid cron expression with seconds field
// (e.g., "0 0 6 * * *" for 06:00 every day). Registration is skipped
// when no webhook endpoint is configured.
func RegisterDigestJob(scheduler *Scheduler, stats StatsProvider, sender DigestSender, logger *zap.Logger, cronExpr string) error {
	if !sender.Enabled() {
		logger.Info("daily digest disabled, no webhook endpoint configured")
		return nil
	}

	job := NewDigestJob(stats, sender, logger, DefaultDigestTimeout)
	return scheduler.AddJob(DigestJobName, cronExpr, job.Run)
}
