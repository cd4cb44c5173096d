// internal/workers/intelligence/analyze-win-loss/handler.go
package analyzewinloss

import (
	"context"
	"fmt"

	"sales-hunter-workers/internal/common/camunda"
	"sales-hunter-workers/internal/common/errors"
	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/common/observability"
	"sales-hunter-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "analyze-win-loss"
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
	if err := ValidateDeal(input.Deal); err != nil {
		return nil, err
	}

	insights := AnalyzeDeal(input.Deal)

	h.logger.Info("deal analyzed", map[string]interface{}{
		"dealId":          input.Deal.ID,
		"outcome":         input.Deal.Outcome,
		"keyFactors":      len(insights.KeyFactors),
		"recommendations": len(insights.Recommendations),
	})

	return &Output{
		DealID:       input.Deal.ID,
		Outcome:      input.Deal.Outcome,
		DealInsights: insights,
	}, nil
}

// ValidateDeal rejects deals that cannot be analyzed.
func ValidateDeal(deal models.DealData) error {
	if !deal.Outcome.Valid() {
		return errors.NewInvalidInputError(fmt.Sprintf("deal outcome %q is not one of won, lost, no-decision, disqualified", deal.Outcome))
	}
	if deal.SalesCycleLength < 0 {
		return errors.NewInvalidInputError("salesCycleLength cannot be negative")
	}
	if deal.DealValue < 0 {
		return errors.NewInvalidInputError("dealValue cannot be negative")
	}
	for _, s := range deal.Stages {
		if s.DurationDays < 0 {
			return errors.NewInvalidInputError(fmt.Sprintf("stage %q has a negative duration", s.Stage))
		}
	}
	return nil
}
