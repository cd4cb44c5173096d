// internal/workers/intelligence/evaluate-alert-rules/models.go
package evaluatealertrules

import (
	"sales-hunter-workers/internal/dispatch"
	"sales-hunter-workers/internal/models"
)

// Input evaluates Rules for a tenant. Without Rules the tenant's active rules are loaded.
type Input struct {
	TenantID string             `json:"tenantId"`
	Rules    []models.AlertRule `json:"rules,omitempty"`
	Dispatch bool               `json:"dispatch,omitempty"`
}

type Output struct {
	TenantID   string                  `json:"tenantId"`
	RulesCount int                     `json:"rulesCount"`
	Alerts     []models.GeneratedAlert `json:"alerts"`
	AlertCount int                     `json:"alertCount"`
	Dispatch   *dispatch.Result        `json:"dispatch,omitempty"`
}
