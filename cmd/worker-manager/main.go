// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"sales-hunter-workers/internal/common/aws"
	"sales-hunter-workers/internal/common/camunda"
	"sales-hunter-workers/internal/common/config"
	"sales-hunter-workers/internal/common/database"
	"sales-hunter-workers/internal/common/health"
	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/common/observability"
	"sales-hunter-workers/internal/dispatch"
	"sales-hunter-workers/internal/repository"
	"sales-hunter-workers/internal/scheduler"
	"sales-hunter-workers/pkg/registry"

	adp "sales-hunter-workers/internal/workers/intelligence/analyze-deal-portfolio"
	awl "sales-hunter-workers/internal/workers/intelligence/analyze-win-loss"
	ach "sales-hunter-workers/internal/workers/intelligence/assess-customer-health"
	dbs "sales-hunter-workers/internal/workers/intelligence/detect-buying-signals"
	ear "sales-hunter-workers/internal/workers/intelligence/evaluate-alert-rules"
	mrl "sales-hunter-workers/internal/workers/intelligence/map-relationships"
	rsp "sales-hunter-workers/internal/workers/intelligence/research-prospect"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RegistryPath != "" {
		if _, err := registry.LoadRegistry(cfg.RegistryPath); err != nil {
			zapLog.Fatal("activity registry invalid", zap.String("path", cfg.RegistryPath), zap.Error(err))
		}
	}
	activities := registry.MustBuiltin()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.Plaintext,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis ---
	redis := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Repositories ---
	cache := repository.NewCache(redis.Client, cfg.Cache.KeyPrefix, cfg.CacheTTL(), log)
	prospects := repository.NewProspectingRepository(pg.DB, cache, log)
	contacts := repository.NewContactIntelligenceRepository(pg.DB)
	companies := repository.NewCompanyIntelligenceRepository(pg.DB, cache)
	alertRules := repository.NewAlertRuleRepository(pg.DB)

	// --- Alert sinks ---
	checks := map[string]health.CheckFunc{
		"postgres": pg.Ping,
		"redis":    redis.Ping,
		"zeebe":    zeebe.HealthCheck,
	}
	sinks, closeSinks := buildSinks(ctx, cfg, checks, zapLog)
	defer closeSinks()
	dispatcher := dispatch.NewDispatcher(log, sinks...)
	zapLog.Info("Alert sinks configured", zap.Strings("sinks", dispatcher.Sinks()))

	// --- Workers ---
	client := zeebe.GetClient()
	var jobWorkers []worker.JobWorker
	start := func(taskType string, handler worker.JobHandler) {
		if _, ok := activities.Find(taskType); !ok {
			zapLog.Warn("task type missing from activity registry", zap.String("taskType", taskType))
		}
		if w := camunda.StartWorker(client, taskType, config.GetWorkerConfig(cfg, taskType), handler, log); w != nil {
			jobWorkers = append(jobWorkers, w)
		}
	}
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	{
		c := dbs.LoadConfig()
		c.Timeout = timeout(dbs.TaskType)
		start(dbs.TaskType, dbs.NewHandler(c, prospects, log, obs).Handle)
	}
	{
		c := ach.LoadConfig()
		c.Timeout = timeout(ach.TaskType)
		start(ach.TaskType, ach.NewHandler(c, log, obs).Handle)
	}
	{
		c := awl.LoadConfig()
		c.Timeout = timeout(awl.TaskType)
		start(awl.TaskType, awl.NewHandler(c, log, obs).Handle)
	}
	{
		c := adp.LoadConfig()
		c.Timeout = timeout(adp.TaskType)
		start(adp.TaskType, adp.NewHandler(c, log, obs).Handle)
	}
	{
		c := mrl.LoadConfig()
		c.Timeout = timeout(mrl.TaskType)
		start(mrl.TaskType, mrl.NewHandler(c, contacts, log, obs).Handle)
	}
	{
		c := rsp.LoadConfig()
		c.Timeout = timeout(rsp.TaskType)
		start(rsp.TaskType, rsp.NewHandler(c, prospects, companies, contacts, log, obs).Handle)
	}

	evalCfg := ear.LoadConfig()
	evalCfg.Timeout = timeout(ear.TaskType)
	evaluator := ear.NewHandler(evalCfg, prospects, alertRules, dispatcher, log, obs)
	start(ear.TaskType, evaluator.Handle)

	zapLog.Info("Workers registered", zap.Int("running", len(jobWorkers)))

	// --- Scheduled alert sweep ---
	var sweep *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sweep = scheduler.New(cfg.Scheduler, evaluator, log)
		if err := sweep.Start(ctx); err != nil {
			zapLog.Fatal("scheduler failed to start", zap.Error(err))
		}
	}

	// --- Health & Metrics Server ---
	ops := health.NewServer(cfg.Server.Addr, log)
	for name, check := range checks {
		ops.AddCheck(name, check)
	}
	ops.Start()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if sweep != nil {
		sweep.Stop()
	}
	for _, w := range jobWorkers {
		w.Close()
		w.AwaitClose()
	}
	if err := ops.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// buildSinks connects every enabled alert destination and registers its readiness check.
func buildSinks(ctx context.Context, cfg *config.Config, checks map[string]health.CheckFunc, zapLog *zap.Logger) ([]dispatch.Sink, func()) {
	var sinks []dispatch.Sink
	var closers []func() error

	if len(cfg.Database.Elasticsearch.GetAddresses()) > 0 {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch client failed", zap.Error(err))
		}
		checks["elasticsearch"] = es.Ping
		sinks = append(sinks, dispatch.NewElasticsearchSink(es.Client, cfg.Alerts.ElasticsearchIndex))
	}

	if cfg.Alerts.Kafka.Enabled {
		kafkaSink := dispatch.NewKafkaSink(dispatch.NewKafkaWriter(cfg.Alerts.Kafka.Brokers, cfg.Alerts.Kafka.Topic))
		closers = append(closers, kafkaSink.Close)
		sinks = append(sinks, kafkaSink)
	}

	if cfg.Alerts.Email.Enabled || cfg.Alerts.SMS.Enabled {
		clients, err := aws.NewClients(ctx, cfg.Alerts.AWSRegion)
		if err != nil {
			zapLog.Fatal("aws clients failed", zap.Error(err))
		}
		if cfg.Alerts.Email.Enabled {
			sinks = append(sinks, dispatch.NewEmailSink(clients.SES, cfg.Alerts.Email.FromEmail, cfg.Alerts.Email.Recipients))
		}
		if cfg.Alerts.SMS.Enabled {
			sinks = append(sinks, dispatch.NewSMSSink(clients.SNS, cfg.Alerts.SMS.TopicARN))
		}
	}

	return sinks, func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				zapLog.Error("Error closing alert sink", zap.Error(err))
			}
		}
	}
}
