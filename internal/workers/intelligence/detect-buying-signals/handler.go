// internal/workers/intelligence/detect-buying-signals/handler.go
package detectbuyingsignals

import (
	"context"
	"errors"

	"sales-hunter-workers/internal/common/camunda"
	stderrors "sales-hunter-workers/internal/common/errors"
	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/common/metrics"
	"sales-hunter-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "detect-buying-signals"
)

type Handler struct {
	config   *Config
	detector *Detector
	logger   logger.Logger
	runner   *camunda.JobRunner
}

func NewHandler(config *Config, repo ProspectReader, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		detector: NewDetector(repo, config.ProspectLimit),
		logger:   log,
		runner:   camunda.NewJobRunner(TaskType, config.Timeout, log, obs),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.execute(ctx, &input)
	})
}

// Execute runs the detection without a job; used by tests and the CLI.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.TenantID == "" {
		return nil, stderrors.NewInvalidInputError("tenantId is required")
	}

	output := &Output{
		TenantID:      input.TenantID,
		ProspectID:    input.ProspectID,
		BuyingSignals: []BuyingSignal{},
	}

	if input.ProspectID != "" {
		signals, err := h.detector.Detect(ctx, input.TenantID, input.ProspectID)
		if err != nil {
			return nil, h.wrapError(input.ProspectID, err)
		}
		output.BuyingSignals = signals
		output.SignalCount = len(signals)
		h.record(signals)
	} else {
		results, err := h.detector.DetectForTenant(ctx, input.TenantID)
		if err != nil {
			return nil, h.wrapError("", err)
		}
		output.Prospects = results
		for _, r := range results {
			output.SignalCount += len(r.BuyingSignals)
			h.record(r.BuyingSignals)
		}
	}

	h.logger.Info("buying signals detected", map[string]interface{}{
		"tenantId":    input.TenantID,
		"prospectId":  input.ProspectID,
		"signalCount": output.SignalCount,
	})
	return output, nil
}

func (h *Handler) record(signals []BuyingSignal) {
	for _, s := range signals {
		metrics.SignalsDetected.WithLabelValues(string(s.SignalType)).Inc()
	}
}

func (h *Handler) wrapError(prospectID string, err error) error {
	switch {
	case errors.Is(err, ErrSignalQueryFailed):
		return stderrors.NewSignalQueryFailedError(prospectID, err)
	default:
		return stderrors.NewProspectLookupFailedError(prospectID, err)
	}
}
