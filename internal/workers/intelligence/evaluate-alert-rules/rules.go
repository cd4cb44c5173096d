// internal/workers/intelligence/evaluate-alert-rules/rules.go
package evaluatealertrules

import "sales-hunter-workers/internal/models"

const (
	DefaultMinScore   = 70
	ViolationWindow   = 7
	NewSignalWindow   = 3
	unknownBaseWeight = 20
)

var SeverityWeights = map[models.AlertSeverity]int{
	models.SeverityCritical: 100,
	models.SeverityHigh:     80,
	models.SeverityMedium:   60,
	models.SeverityLow:      40,
	models.SeverityInfo:     20,
}

var CategoryBoosts = map[models.AlertCategory]int{
	models.CategoryComplianceViolation: 15,
	models.CategoryRegulatoryChange:    10,
	models.CategoryBuyingSignal:        5,
	models.CategoryExpansionSignal:     5,
}

// CalculateAlertPriority orders alerts for display; it is never persisted.
func CalculateAlertPriority(severity models.AlertSeverity, category models.AlertCategory) int {
	base, ok := SeverityWeights[severity]
	if !ok {
		base = unknownBaseWeight
	}
	return base + CategoryBoosts[category]
}

var actionItems = map[models.AlertCategory][]string{
	models.CategoryComplianceViolation: {
		"Review the violation record and the affected permits",
		"Contact the facility's EHS lead with a remediation offer",
		"Log the outreach against the prospect",
	},
	models.CategoryBuyingSignal: {
		"Review the signal and the prospect's recent activity",
		"Reach out to the mapped decision maker within 48 hours",
		"Prepare a tailored proposal",
	},
	models.CategoryPermitExpiry: {
		"Confirm the permit expiry date with the facility",
		"Offer renewal support ahead of the deadline",
		"Schedule a follow-up before the permit lapses",
	},
}

var defaultActionItems = []string{
	"Review the alert details",
	"Decide on the next step for this prospect",
}

// ActionItemsFor returns a fresh copy of the checklist for category.
func ActionItemsFor(category models.AlertCategory) []string {
	items, ok := actionItems[category]
	if !ok {
		items = defaultActionItems
	}
	return append([]string(nil), items...)
}
