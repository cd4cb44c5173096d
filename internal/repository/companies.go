// internal/repository/companies.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"sales-hunter-workers/internal/models"
)

// CompanyIntelligenceRepository reads company profiles and industry reference data.
type CompanyIntelligenceRepository struct {
	db    *sql.DB
	cache *Cache
}

func NewCompanyIntelligenceRepository(db *sql.DB, cache *Cache) *CompanyIntelligenceRepository {
	return &CompanyIntelligenceRepository{db: db, cache: cache}
}

// SelectCompanyProfileByID returns nil, nil when no profile exists.
func (r *CompanyIntelligenceRepository) SelectCompanyProfileByID(ctx context.Context, tenantID, companyID string) (*models.CompanyProfile, error) {
	cacheKey := r.cache.key("company", tenantID, companyID)

	var cached models.CompanyProfile
	if r.cache.get(ctx, "company", cacheKey, &cached) {
		return &cached, nil
	}

	var p models.CompanyProfile
	var metadata []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, name, COALESCE(domain, ''), COALESCE(employee_count, 0), COALESCE(revenue, 0), metadata
		FROM company_profiles
		WHERE tenant_id = $1 AND id = $2`, tenantID, companyID).
		Scan(&p.ID, &p.TenantID, &p.Name, &p.Domain, &p.EmployeeCount, &p.Revenue, &metadata)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select company profile %s: %w", companyID, err)
	}
	p.Metadata = decodeMetadata(metadata)

	r.cache.set(ctx, cacheKey, p)
	return &p, nil
}

// SelectIndustryByID returns nil, nil for an unknown industry.
func (r *CompanyIntelligenceRepository) SelectIndustryByID(ctx context.Context, industryID string) (*models.Industry, error) {
	cacheKey := r.cache.key("industry", industryID)

	var cached models.Industry
	if r.cache.get(ctx, "industry", cacheKey, &cached) {
		return &cached, nil
	}

	var ind models.Industry
	var metadata []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(code, ''), metadata FROM industries WHERE id = $1`, industryID).
		Scan(&ind.ID, &ind.Name, &ind.Code, &metadata)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select industry %s: %w", industryID, err)
	}
	ind.Metadata = decodeMetadata(metadata)

	r.cache.set(ctx, cacheKey, ind)
	return &ind, nil
}

// decodeMetadata treats NULL or malformed JSONB as empty metadata.
func decodeMetadata(raw []byte) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}
