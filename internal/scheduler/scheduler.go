// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sales-hunter-workers/internal/common/config"
	"sales-hunter-workers/internal/common/logger"
	evaluatealertrules "sales-hunter-workers/internal/workers/intelligence/evaluate-alert-rules"

	"github.com/robfig/cron/v3"
)

// Sweeper evaluates one tenant's stored rules. *evaluatealertrules.Handler satisfies it.
type Sweeper interface {
	Execute(ctx context.Context, input *evaluatealertrules.Input) (*evaluatealertrules.Output, error)
}

// TenantResult is the outcome of one tenant's sweep.
type TenantResult struct {
	TenantID   string
	AlertCount int
	Err        error
}

// Scheduler runs the alert sweep for every configured tenant on a cron schedule.
// A sweep that is still running when the next tick fires is skipped.
type Scheduler struct {
	cron    *cron.Cron
	expr    string
	sweeper Sweeper
	tenants []string
	timeout time.Duration
	logger  logger.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func New(cfg config.SchedulerConfig, sweeper Sweeper, log logger.Logger) *Scheduler {
	log = log.WithFields(map[string]interface{}{"component": "scheduler"})
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(cron.NewParser(cron.SecondOptional|cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
			cron.WithLogger(cl),
		),
		expr:    cfg.Cron,
		sweeper: sweeper,
		tenants: cfg.Tenants,
		timeout: config.GetDuration(cfg.Timeout),
		logger:  log,
	}
}

// Start registers the sweep and starts the cron loop. Sweeps run under ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	if _, err := s.cron.AddFunc(s.expr, s.tick); err != nil {
		return fmt.Errorf("register alert sweep %q: %w", s.expr, err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started", map[string]interface{}{
		"cron":    s.expr,
		"tenants": len(s.tenants),
	})
	return nil
}

// Stop cancels in-flight sweeps and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped", nil)
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	s.RunOnce(ctx)
}

// RunOnce sweeps every tenant in order. One tenant failing does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) []TenantResult {
	start := time.Now()
	results := make([]TenantResult, 0, len(s.tenants))

	for _, tenantID := range s.tenants {
		if ctx.Err() != nil {
			break
		}
		results = append(results, s.sweep(ctx, tenantID))
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info("alert sweep finished", map[string]interface{}{
		"tenants":     len(results),
		"failed":      failed,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return results
}

func (s *Scheduler) sweep(ctx context.Context, tenantID string) TenantResult {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	output, err := s.sweeper.Execute(ctx, &evaluatealertrules.Input{TenantID: tenantID, Dispatch: true})
	if err != nil {
		s.logger.Error("tenant sweep failed", map[string]interface{}{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
		return TenantResult{TenantID: tenantID, Err: err}
	}
	return TenantResult{TenantID: tenantID, AlertCount: output.AlertCount}
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug(msg, pairs(keysAndValues))
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := pairs(keysAndValues)
	fields["error"] = err.Error()
	c.log.Error(msg, fields)
}

func pairs(kv []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}
