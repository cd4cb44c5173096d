// internal/workers/intelligence/research-prospect/handler.go
package researchprospect

import (
	"context"
	"errors"

	"sales-hunter-workers/internal/common/camunda"
	stderrors "sales-hunter-workers/internal/common/errors"
	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/common/observability"
	maprelationships "sales-hunter-workers/internal/workers/intelligence/map-relationships"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "research-prospect"
)

type Handler struct {
	config     *Config
	researcher *Researcher
	logger     logger.Logger
	runner     *camunda.JobRunner
}

func NewHandler(
	config *Config,
	prospects ProspectReader,
	companies CompanyReader,
	contacts maprelationships.ContactReader,
	log logger.Logger,
	obs *observability.Observability,
) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		researcher: NewResearcher(prospects, companies, contacts, log),
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.TenantID == "" || input.ProspectID == "" {
		return nil, stderrors.NewInvalidInputError("tenantId and prospectId are required")
	}

	output, err := h.researcher.Research(ctx, input.TenantID, input.ProspectID)
	if err != nil {
		return nil, wrapError(input.ProspectID, err)
	}

	h.logger.Info("prospect researched", map[string]interface{}{
		"prospectId":   input.ProspectID,
		"found":        output.Found,
		"signals":      len(output.BuyingSignals),
		"contacts":     len(output.Relationships.Contacts),
		"coverageGaps": len(output.Relationships.CoverageGaps),
	})
	return output, nil
}

func wrapError(prospectID string, err error) error {
	switch {
	case errors.Is(err, ErrCompanyLookupFailed):
		return stderrors.NewCompanyLookupFailedError(prospectID, err)
	case errors.Is(err, ErrSignalQueryFailed):
		return stderrors.NewSignalQueryFailedError(prospectID, err)
	case errors.Is(err, ErrContactQueryFailed):
		return stderrors.NewContactQueryFailedError(prospectID, err)
	default:
		return stderrors.NewProspectLookupFailedError(prospectID, err)
	}
}
