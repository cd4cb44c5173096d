// internal/workers/intelligence/assess-customer-health/handler.go
package assesscustomerhealth

import (
	"context"
	"fmt"

	"sales-hunter-workers/internal/common/camunda"
	"sales-hunter-workers/internal/common/errors"
	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/common/metrics"
	"sales-hunter-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "assess-customer-health"
)

type Handler struct {
	config *Config
	logger logger.Logger
	runner *camunda.JobRunner
}

func NewHandler(config *Config, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		logger: log,
		runner: camunda.NewJobRunner(TaskType, config.Timeout, log, obs),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.execute(ctx, &input)
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	output := AssessHealth(input)
	metrics.HealthStatusAssessed.WithLabelValues(string(output.HealthStatus)).Inc()

	h.logger.Info("customer health assessed", map[string]interface{}{
		"customerId":           input.CustomerID,
		"healthScore":          output.HealthScore,
		"healthStatus":         output.HealthStatus,
		"churnRisk":            output.ChurnRisk,
		"expansionProbability": output.ExpansionProbability,
	})
	return output, nil
}

// ValidateInput rejects facts outside their documented ranges.
func ValidateInput(input *Input) error {
	if rate := input.Engagement.EmailResponseRate; rate < 0 || rate > 1 {
		return errors.NewInvalidInputError(fmt.Sprintf("engagement.emailResponseRate must be within [0,1], got %v", rate))
	}
	if usage := input.Usage.KeyFeatureUsage; usage < 0 || usage > 100 {
		return errors.NewInvalidInputError(fmt.Sprintf("usage.keyFeatureUsage must be within [0,100], got %v", usage))
	}
	if t := input.Usage.UsageTrend; t != "" && !t.Valid() {
		return errors.NewInvalidInputError(fmt.Sprintf("usage.usageTrend %q is not one of increasing, stable, decreasing", t))
	}
	if input.Usage.ActiveUsers > input.Usage.TotalUsers && input.Usage.TotalUsers > 0 {
		return errors.NewInvalidInputError("usage.activeUsers cannot exceed usage.totalUsers")
	}
	return nil
}
