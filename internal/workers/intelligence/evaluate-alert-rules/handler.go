// internal/workers/intelligence/evaluate-alert-rules/handler.go
package evaluatealertrules

import (
	"context"
	"errors"

	"sales-hunter-workers/internal/common/camunda"
	stderrors "sales-hunter-workers/internal/common/errors"
	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/common/metrics"
	"sales-hunter-workers/internal/common/observability"
	"sales-hunter-workers/internal/dispatch"
	"sales-hunter-workers/internal/models"
	"sales-hunter-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "evaluate-alert-rules"
)

// AlertRuleLoader supplies the tenant's active rules when the job carries none.
type AlertRuleLoader interface {
	SelectActiveRulesByTenantID(ctx context.Context, tenantID string) ([]models.AlertRule, error)
}

type Handler struct {
	config     *Config
	rules      AlertRuleLoader
	evaluator  *Evaluator
	dispatcher *dispatch.Dispatcher
	activity   *registry.Activity
	logger     logger.Logger
	runner     *camunda.JobRunner
}

// NewHandler wires the evaluator. rules and dispatcher may be nil; without a
// dispatcher the dispatch flag is ignored.
func NewHandler(
	config *Config,
	repo ProspectReader,
	rules AlertRuleLoader,
	dispatcher *dispatch.Dispatcher,
	log logger.Logger,
	obs *observability.Observability,
	opts ...Option,
) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	activity, _ := registry.MustBuiltin().Find(TaskType)
	return &Handler{
		config:     config,
		rules:      rules,
		evaluator:  NewEvaluator(repo, config.ProspectLimit, log, opts...),
		dispatcher: dispatcher,
		activity:   activity,
		logger:     log,
		runner:     camunda.NewJobRunner(TaskType, config.Timeout, log, obs),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.execute(ctx, &input)
	})
}

// Execute evaluates rules without a job; used by the scheduler and tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.TenantID == "" {
		return nil, stderrors.NewInvalidInputError("tenantId is required")
	}
	if h.activity != nil {
		if err := h.activity.ValidateInput(input); err != nil {
			return nil, stderrors.NewAlertRulesInvalidError(err.Error())
		}
	}

	rules := input.Rules
	if len(rules) == 0 && h.rules != nil {
		loaded, err := h.rules.SelectActiveRulesByTenantID(ctx, input.TenantID)
		if err != nil {
			return nil, stderrors.NewAlertRulesLoadFailedError(input.TenantID, err)
		}
		rules = loaded
		h.logger.Debug("alert rules loaded", map[string]interface{}{
			"tenantId": input.TenantID,
			"rules":    len(rules),
		})
	}

	alerts, err := h.evaluator.Evaluate(ctx, input.TenantID, rules)
	if err != nil {
		return nil, h.wrapError(err)
	}

	output := &Output{
		TenantID:   input.TenantID,
		RulesCount: len(rules),
		Alerts:     alerts,
		AlertCount: len(alerts),
	}
	for _, a := range alerts {
		metrics.AlertsGenerated.WithLabelValues(string(a.Category), string(a.Severity)).Inc()
	}

	if input.Dispatch && h.dispatcher != nil {
		output.Dispatch = h.dispatcher.Dispatch(ctx, input.TenantID, alerts)
	}

	h.logger.Info("alert rules evaluated", map[string]interface{}{
		"tenantId":   input.TenantID,
		"rules":      len(rules),
		"alertCount": len(alerts),
	})
	return output, nil
}

func (h *Handler) wrapError(err error) error {
	switch {
	case errors.Is(err, ErrSignalQueryFailed):
		return stderrors.NewSignalQueryFailedError("", err)
	default:
		return stderrors.NewProspectLookupFailedError("", err)
	}
}
