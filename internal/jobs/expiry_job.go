package jobs

import (
	"context"
	"quizfy_backend/internal/service"
	"quizfy_backend/pkg/logger"
	"quizfy_backend/pkg/tracing"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultExpirySchedule = "@every 1m"
	sweepTimeout          = 50 * time.Second
)

// cronLogger routes cron's own messages to zap.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Log.Sugar().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}

type ExpiryJob struct {
	Attempts *service.AttemptService
}

func NewExpiryJob(attempts *service.AttemptService) *ExpiryJob {
	return &ExpiryJob{Attempts: attempts}
}

// Run closes timed-out attempts once.
func (j *ExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	ctx, span := tracing.StartSpan(ctx, "jobs.expiry_sweep")
	defer span.End()

	start := time.Now()
	closed, err := j.Attempts.SweepExpired(ctx)
	if err != nil {
		logger.ReportError("Expiry sweep failed", err)
		return
	}
	if closed > 0 {
		logger.Log.Info("Expired attempts closed",
			zap.Int("count", closed),
			zap.Duration("took", time.Since(start)))
	}
}

// Start schedules the sweep and returns the running scheduler. An empty
// schedule falls back to once a minute.
func Start(job *ExpiryJob, schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultExpirySchedule
	}
	l := cronLogger{}
	c := cron.New(
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
	if _, err := c.AddJob(schedule, job); err != nil {
		return nil, err
	}
	c.Start()
	logger.Log.Info("Expiry sweeper started", zap.String("schedule", schedule))
	return c, nil
}
