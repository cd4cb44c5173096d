// internal/models/alert.go
package models

import "time"

// RuleCondition is one condition of an alert rule. Parameters are condition specific
// (minScore for score-threshold, signalType for new-signal).
type RuleCondition struct {
	Condition  AlertCondition         `json:"condition"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// AlertRule is a tenant-defined rule evaluated against prospect data.
type AlertRule struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenantId,omitempty"`
	Name       string          `json:"name"`
	Category   AlertCategory   `json:"category"`
	Severity   AlertSeverity   `json:"severity"`
	Conditions []RuleCondition `json:"conditions"`
	Active     bool            `json:"active"`
}

// GeneratedAlert is an alert produced by rule evaluation; it is not persisted by the evaluator.
type GeneratedAlert struct {
	ID          string                 `json:"id"`
	RuleID      string                 `json:"ruleId"`
	TenantID    string                 `json:"tenantId"`
	ProspectID  string                 `json:"prospectId"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Category    AlertCategory          `json:"category"`
	Severity    AlertSeverity          `json:"severity"`
	Priority    int                    `json:"priority"`
	ActionItems []string               `json:"actionItems"`
	Metadata    map[string]interface{} `json:"metadata"`
	CreatedAt   time.Time              `json:"createdAt"`
}
