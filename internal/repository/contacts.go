// internal/repository/contacts.go
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sales-hunter-workers/internal/models"
)

// ContactIntelligenceRepository reads the people mapped at a prospect account.
type ContactIntelligenceRepository struct {
	db *sql.DB
}

func NewContactIntelligenceRepository(db *sql.DB) *ContactIntelligenceRepository {
	return &ContactIntelligenceRepository{db: db}
}

// SelectContactsByTenantID returns the prospect's contacts in name order.
func (r *ContactIntelligenceRepository) SelectContactsByTenantID(ctx context.Context, tenantID, prospectID string) ([]models.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, prospect_id, name, COALESCE(title, ''), COALESCE(email, ''),
			COALESCE(role, ''), COALESCE(seniority, ''), last_contacted_at
		FROM contacts
		WHERE tenant_id = $1 AND prospect_id = $2
		ORDER BY name`, tenantID, prospectID)
	if err != nil {
		return nil, fmt.Errorf("select contacts for prospect %s: %w", prospectID, err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		var role string
		var lastContacted sql.NullTime
		if err := rows.Scan(&c.ID, &c.TenantID, &c.ProspectID, &c.Name, &c.Title, &c.Email, &role, &c.Seniority, &lastContacted); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.Role = models.CommitteeRole(role)
		if lastContacted.Valid {
			t := lastContacted.Time
			c.LastContactedAt = &t
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}
