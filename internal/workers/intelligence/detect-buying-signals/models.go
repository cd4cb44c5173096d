// internal/workers/intelligence/detect-buying-signals/models.go
package detectbuyingsignals

import (
	"sales-hunter-workers/internal/models"
	"sales-hunter-workers/internal/scoring"
)

// Input selects one prospect, or the whole tenant when ProspectID is empty.
type Input struct {
	TenantID   string `json:"tenantId"`
	ProspectID string `json:"prospectId,omitempty"`
}

type Output struct {
	TenantID      string           `json:"tenantId"`
	ProspectID    string           `json:"prospectId,omitempty"`
	BuyingSignals []BuyingSignal   `json:"buyingSignals"`
	Prospects     []ProspectResult `json:"prospects,omitempty"`
	SignalCount   int              `json:"signalCount"`
}

// BuyingSignal is a derived, scored signal. It is recomputed on every call.
type BuyingSignal struct {
	SignalType        models.BuyingSignalType   `json:"signalType"`
	Title             string                    `json:"title"`
	Description       string                    `json:"description"`
	CompositeScore    int                       `json:"compositeScore"`
	ComponentSignals  []scoring.ComponentSignal `json:"componentSignals"`
	RecommendedAction string                    `json:"recommendedAction"`
	OptimalTiming     string                    `json:"optimalTiming"`
}

// ProspectResult is one entry of a tenant scan.
type ProspectResult struct {
	ProspectID    string         `json:"prospectId"`
	CompanyName   string         `json:"companyName"`
	BuyingSignals []BuyingSignal `json:"buyingSignals"`
}
