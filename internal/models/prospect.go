// internal/models/prospect.go
package models

import "time"

// Prospect is a target company tracked by a tenant.
type Prospect struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenantId"`
	CompanyName      string    `json:"companyName"`
	CompanyProfileID string    `json:"companyProfileId,omitempty"`
	IndustryID       string    `json:"industryId,omitempty"`
	FitScore         *int      `json:"fitScore,omitempty"`
	IntentScore      *int      `json:"intentScore,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Signal is a raw observation recorded against a prospect.
type Signal struct {
	ID          string     `json:"id"`
	ProspectID  string     `json:"prospectId"`
	TenantID    string     `json:"tenantId"`
	SignalType  SignalType `json:"signalType"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Strength    int        `json:"strength"`
	DetectedAt  time.Time  `json:"detectedAt"`
}

// CompanyProfile is the firmographic record behind a prospect.
type CompanyProfile struct {
	ID            string                 `json:"id"`
	TenantID      string                 `json:"tenantId"`
	Name          string                 `json:"name"`
	Domain        string                 `json:"domain,omitempty"`
	EmployeeCount int                    `json:"employeeCount,omitempty"`
	Revenue       float64                `json:"revenue,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// Industry reference data. Metadata is passed through untouched.
type Industry struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Code     string                 `json:"code,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ProspectQuery narrows SelectProspectsByTenantID.
type ProspectQuery struct {
	Limit       int
	MinFitScore *int
}

// IntPtr is a helper for optional scores.
func IntPtr(v int) *int { return &v }
