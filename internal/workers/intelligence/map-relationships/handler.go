// internal/workers/intelligence/map-relationships/handler.go
package maprelationships

import (
	"context"

	"sales-hunter-workers/internal/common/camunda"
	"sales-hunter-workers/internal/common/errors"
	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/common/observability"
	"sales-hunter-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "map-relationships"
)

// ContactReader is the slice of the contact repository the mapper reads.
type ContactReader interface {
	SelectContactsByTenantID(ctx context.Context, tenantID, prospectID string) ([]models.Contact, error)
}

type Handler struct {
	config   *Config
	contacts ContactReader
	logger   logger.Logger
	runner   *camunda.JobRunner
}

func NewHandler(config *Config, contacts ContactReader, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		contacts: contacts,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	contacts := input.Contacts
	if len(contacts) == 0 {
		if input.TenantID == "" || input.ProspectID == "" {
			return nil, errors.NewInvalidInputError("tenantId and prospectId are required when no contacts are supplied")
		}
		fetched, err := h.contacts.SelectContactsByTenantID(ctx, input.TenantID, input.ProspectID)
		if err != nil {
			return nil, errors.NewContactQueryFailedError(input.ProspectID, err)
		}
		contacts = fetched
	}

	analysis := analyzeContacts(contacts, h.config.MaxEdges)

	h.logger.Info("relationships mapped", map[string]interface{}{
		"prospectId":    input.ProspectID,
		"contacts":      len(analysis.Contacts),
		"relationships": len(analysis.Relationships),
		"coverageGaps":  len(analysis.CoverageGaps),
	})
	return &Output{ProspectID: input.ProspectID, RelationshipAnalysis: analysis}, nil
}
