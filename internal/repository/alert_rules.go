// internal/repository/alert_rules.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"sales-hunter-workers/internal/models"
)

// AlertRuleRepository loads tenant alert rules for the scheduled sweep.
type AlertRuleRepository struct {
	db *sql.DB
}

func NewAlertRuleRepository(db *sql.DB) *AlertRuleRepository {
	return &AlertRuleRepository{db: db}
}

// SelectActiveRulesByTenantID returns active rules; conditions are stored as a JSONB array.
func (r *AlertRuleRepository) SelectActiveRulesByTenantID(ctx context.Context, tenantID string) ([]models.AlertRule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, name, category, severity, conditions
		FROM alert_rules
		WHERE tenant_id = $1 AND active = true
		ORDER BY id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("select alert rules for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	rules := []models.AlertRule{}
	for rows.Next() {
		var rule models.AlertRule
		var category, severity string
		var conditions []byte
		if err := rows.Scan(&rule.ID, &rule.TenantID, &rule.Name, &category, &severity, &conditions); err != nil {
			return nil, fmt.Errorf("scan alert rule: %w", err)
		}
		rule.Category = models.AlertCategory(category)
		rule.Severity = models.AlertSeverity(severity)
		rule.Active = true
		if len(conditions) > 0 {
			if err := json.Unmarshal(conditions, &rule.Conditions); err != nil {
				return nil, fmt.Errorf("decode conditions of rule %s: %w", rule.ID, err)
			}
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alert rules: %w", err)
	}
	return rules, nil
}
