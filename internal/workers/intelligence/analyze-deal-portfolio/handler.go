// internal/workers/intelligence/analyze-deal-portfolio/handler.go
package analyzedealportfolio

import (
	"context"

	"sales-hunter-workers/internal/common/camunda"
	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/common/observability"
	analyzewinloss "sales-hunter-workers/internal/workers/intelligence/analyze-win-loss"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "analyze-deal-portfolio"
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
	for _, d := range input.Deals {
		if err := analyzewinloss.ValidateDeal(d); err != nil {
			return nil, err
		}
	}

	top := h.config.TopReasons
	if top <= 0 {
		top = DefaultTopReasons
	}
	summary := analyzePortfolio(input.Deals, top)

	h.logger.Info("deal portfolio analyzed", map[string]interface{}{
		"tenantId":   input.TenantID,
		"totalDeals": summary.TotalDeals,
		"winRate":    summary.WinRate,
	})
	return &Output{TenantID: input.TenantID, PortfolioSummary: summary}, nil
}
