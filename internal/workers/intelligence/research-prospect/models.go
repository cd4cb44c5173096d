// internal/workers/intelligence/research-prospect/models.go
package researchprospect

import (
	"sales-hunter-workers/internal/models"
	detectbuyingsignals "sales-hunter-workers/internal/workers/intelligence/detect-buying-signals"
	maprelationships "sales-hunter-workers/internal/workers/intelligence/map-relationships"
)

type Input struct {
	TenantID   string `json:"tenantId"`
	ProspectID string `json:"prospectId"`
}

// Output summarizes one prospect. Found is false, and every list empty, when
// the prospect does not exist.
type Output struct {
	ProspectID    string                                `json:"prospectId"`
	Found         bool                                  `json:"found"`
	CompanyName   string                                `json:"companyName"`
	Company       *models.CompanyProfile                `json:"company,omitempty"`
	Industry      *models.Industry                      `json:"industry,omitempty"`
	BuyingSignals []detectbuyingsignals.BuyingSignal    `json:"buyingSignals"`
	Relationships maprelationships.RelationshipAnalysis `json:"relationships"`
	TopSignal     *detectbuyingsignals.BuyingSignal     `json:"topSignal,omitempty"`
}
