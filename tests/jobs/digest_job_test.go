package jobs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStatsProvider struct {
	stats *domain.DashboardStatsDTO
	err   error
	calls int
}

func (f *fakeStatsProvider) Stats(ctx context.Context) (*domain.DashboardStatsDTO, error) {
	f.calls++
	return f.stats, f.err
}

type fakeDigestSender struct {
	enabled bool
	err     error
	sent    []domain.DashboardStatsDTO
}

func (f *fakeDigestSender) Enabled() bool {
	return f.enabled
}

func (f *fakeDigestSender) SendDigest(ctx context.Context, stats domain.DashboardStatsDTO) error {
	f.sent = append(f.sent, stats)
	return f.err
}

func TestDigestJob_Run(t *testing.T) {
	provider := &fakeStatsProvider{stats: &domain.DashboardStatsDTO{
		LeadsToday:    3,
		LeadsThisWeek: 12,
	}}
	sender := &fakeDigestSender{enabled: true}

	job := jobs.NewDigestJob(provider, sender, zap.NewNop(), 0)
	job.Run()

	assert.Equal(t, 1, provider.calls)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(3), sender.sent[0].LeadsToday)
}

func TestDigestJob_Run_StatsFailure(t *testing.T) {
	provider := &fakeStatsProvider{err: errors.New("database down")}
	sender := &fakeDigestSender{enabled: true}

	job := jobs.NewDigestJob(provider, sender, zap.NewNop(), 0)
	job.Run()

	// Nothing is sent when stats cannot be computed
	assert.Empty(t, sender.sent)
}

func TestDigestJob_Run_SendFailureDoesNotPanic(t *testing.T) {
	provider := &fakeStatsProvider{stats: &domain.DashboardStatsDTO{}}
	sender := &fakeDigestSender{enabled: true, err: errors.New("endpoint unreachable")}

	job := jobs.NewDigestJob(provider, sender, zap.NewNop(), 0)
	job.Run()

	assert.Len(t, sender.sent, 1)
}

func TestRegisterDigestJob(t *testing.T) {
	scheduler := jobs.NewScheduler(zap.NewNop())
	provider := &fakeStatsProvider{stats: &domain.DashboardStatsDTO{}}
	sender := &fakeDigestSender{enabled: true}

	err := jobs.RegisterDigestJob(scheduler, provider, sender, zap.NewNop(), "0 0 6 * * *")
	require.NoError(t, err)
	assert.Contains(t, scheduler.GetJobNames(), jobs.DigestJobName)
}

func TestRegisterDigestJob_SkippedWhenDisabled(t *testing.T) {
	scheduler := jobs.NewScheduler(zap.NewNop())
	provider := &fakeStatsProvider{stats: &domain.DashboardStatsDTO{}}
	sender := &fakeDigestSender{enabled: false}

	err := jobs.RegisterDigestJob(scheduler, provider, sender, zap.NewNop(), "0 0 6 * * *")
	require.NoError(t, err)
	assert.Empty(t, scheduler.GetJobNames())
}

func TestRegisterDigestJob_InvalidCron(t *testing.T) {
	scheduler := jobs.NewScheduler(zap.NewNop())
	provider := &fakeStatsProvider{stats: &domain.DashboardStatsDTO{}}
	sender := &fakeDigestSender{enabled: true}

	err := jobs.RegisterDigestJob(scheduler, provider, sender, zap.NewNop(), "not a cron expression")
	assert.Error(t, err)
}
