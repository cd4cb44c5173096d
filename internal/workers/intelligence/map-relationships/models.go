// internal/workers/intelligence/map-relationships/models.go
package maprelationships

import "sales-hunter-workers/internal/models"

// Input maps the contacts of a prospect. Inline Contacts skip the repository read.
type Input struct {
	TenantID   string           `json:"tenantId"`
	ProspectID string           `json:"prospectId"`
	Contacts   []models.Contact `json:"contacts,omitempty"`
}

type Output struct {
	ProspectID string `json:"prospectId"`
	RelationshipAnalysis
}

type RelationshipAnalysis struct {
	Contacts        []AnalyzedContact `json:"contacts"`
	Relationships   []Edge            `json:"relationships"`
	CoverageGaps    []string          `json:"coverageGaps"`
	Recommendations []string          `json:"recommendations"`
}

type AnalyzedContact struct {
	models.Contact
	SuggestedCommitteeRole models.CommitteeRole `json:"suggestedCommitteeRole"`
	Influence              int                  `json:"influence"`
}

// Edge is an inferred, non-authoritative relationship between two contacts.
type Edge struct {
	FromContactID string          `json:"fromContactId"`
	ToContactID   string          `json:"toContactId"`
	Type          models.EdgeType `json:"type"`
	Strength      int             `json:"strength"`
}
