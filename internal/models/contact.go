// internal/models/contact.go
package models

import "time"

// Contact is a person at a prospect account.
type Contact struct {
	ID              string        `json:"id"`
	TenantID        string        `json:"tenantId"`
	ProspectID      string        `json:"prospectId"`
	Name            string        `json:"name"`
	Title           string        `json:"title"`
	Email           string        `json:"email,omitempty"`
	Role            CommitteeRole `json:"role,omitempty"`
	Seniority       string        `json:"seniority,omitempty"`
	LastContactedAt *time.Time    `json:"lastContactedAt,omitempty"`
}

// Engaged reports whether anyone on the team has reached this contact.
func (c Contact) Engaged() bool {
	return c.LastContactedAt != nil
}
