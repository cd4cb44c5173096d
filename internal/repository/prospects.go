// internal/repository/prospects.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/models"
)

// MaxProspectBatch bounds a single tenant scan.
const MaxProspectBatch = 100

// ProspectingRepository reads prospects and their raw signals.
type ProspectingRepository struct {
	db     *sql.DB
	cache  *Cache
	logger logger.Logger
}

func NewProspectingRepository(db *sql.DB, cache *Cache, log logger.Logger) *ProspectingRepository {
	return &ProspectingRepository{db: db, cache: cache, logger: log}
}

const prospectColumns = `id, tenant_id, company_name, COALESCE(company_profile_id, ''), COALESCE(industry_id, ''),
		fit_score, intent_score, created_at`

// SelectProspectsByTenantID lists a tenant's prospects, newest first.
// Limit <= 0 or above MaxProspectBatch is clamped to MaxProspectBatch.
func (r *ProspectingRepository) SelectProspectsByTenantID(ctx context.Context, tenantID string, q models.ProspectQuery) ([]models.Prospect, error) {
	limit := q.Limit
	if limit <= 0 || limit > MaxProspectBatch {
		limit = MaxProspectBatch
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + prospectColumns + " FROM prospects WHERE tenant_id = $1")
	args := []interface{}{tenantID}
	if q.MinFitScore != nil {
		args = append(args, *q.MinFitScore)
		sb.WriteString(fmt.Sprintf(" AND fit_score >= $%d", len(args)))
	}
	args = append(args, limit)
	sb.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args)))

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select prospects for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	prospects := []models.Prospect{}
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prospect: %w", err)
		}
		prospects = append(prospects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prospects: %w", err)
	}
	return prospects, nil
}

// SelectProspectByID returns nil, nil when the prospect does not exist for the tenant.
func (r *ProspectingRepository) SelectProspectByID(ctx context.Context, tenantID, prospectID string) (*models.Prospect, error) {
	cacheKey := r.cache.key("prospect", tenantID, prospectID)

	var cached models.Prospect
	if r.cache.get(ctx, "prospect", cacheKey, &cached) {
		return &cached, nil
	}

	row := r.db.QueryRowContext(ctx,
		"SELECT "+prospectColumns+" FROM prospects WHERE tenant_id = $1 AND id = $2",
		tenantID, prospectID)

	p, err := scanProspect(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select prospect %s: %w", prospectID, err)
	}

	r.cache.set(ctx, cacheKey, p)
	return p, nil
}

// SelectSignalsByProspectID returns every raw signal for the prospect, newest first.
func (r *ProspectingRepository) SelectSignalsByProspectID(ctx context.Context, tenantID, prospectID string) ([]models.Signal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, prospect_id, tenant_id, signal_type, title, COALESCE(description, ''), strength, detected_at
		FROM signals
		WHERE tenant_id = $1 AND prospect_id = $2
		ORDER BY detected_at DESC`, tenantID, prospectID)
	if err != nil {
		return nil, fmt.Errorf("select signals for prospect %s: %w", prospectID, err)
	}
	defer rows.Close()

	signals := []models.Signal{}
	for rows.Next() {
		var s models.Signal
		var signalType string
		if err := rows.Scan(&s.ID, &s.ProspectID, &s.TenantID, &signalType, &s.Title, &s.Description, &s.Strength, &s.DetectedAt); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		s.SignalType = models.SignalType(signalType)
		signals = append(signals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signals: %w", err)
	}
	return signals, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProspect(s scanner) (*models.Prospect, error) {
	var p models.Prospect
	var fit, intent sql.NullInt64
	if err := s.Scan(&p.ID, &p.TenantID, &p.CompanyName, &p.CompanyProfileID, &p.IndustryID, &fit, &intent, &p.CreatedAt); err != nil {
		return nil, err
	}
	if fit.Valid {
		p.FitScore = models.IntPtr(int(fit.Int64))
	}
	if intent.Valid {
		p.IntentScore = models.IntPtr(int(intent.Int64))
	}
	return &p, nil
}
