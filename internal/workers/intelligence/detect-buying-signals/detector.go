// internal/workers/intelligence/detect-buying-signals/detector.go
package detectbuyingsignals

import (
	"context"
	"errors"
	"fmt"

	"sales-hunter-workers/internal/models"
)

var (
	ErrProspectLookupFailed = errors.New("PROSPECT_LOOKUP_FAILED")
	ErrSignalQueryFailed    = errors.New("SIGNAL_QUERY_FAILED")
)

// ProspectReader is the slice of the prospecting repository the detector reads.
type ProspectReader interface {
	SelectProspectByID(ctx context.Context, tenantID, prospectID string) (*models.Prospect, error)
	SelectSignalsByProspectID(ctx context.Context, tenantID, prospectID string) ([]models.Signal, error)
	SelectProspectsByTenantID(ctx context.Context, tenantID string, q models.ProspectQuery) ([]models.Prospect, error)
}

// Detector fetches prospect data and applies the detection rules.
// Repository errors are returned wrapped but otherwise untouched.
type Detector struct {
	repo  ProspectReader
	limit int
}

func NewDetector(repo ProspectReader, limit int) *Detector {
	if limit <= 0 {
		limit = 100
	}
	return &Detector{repo: repo, limit: limit}
}

// Detect returns the buying signals of one prospect. An unknown prospect yields an empty list.
func (d *Detector) Detect(ctx context.Context, tenantID, prospectID string) ([]BuyingSignal, error) {
	prospect, err := d.repo.SelectProspectByID(ctx, tenantID, prospectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProspectLookupFailed, err)
	}
	if prospect == nil {
		return []BuyingSignal{}, nil
	}

	signals, err := d.repo.SelectSignalsByProspectID(ctx, tenantID, prospectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignalQueryFailed, err)
	}
	return DetectFromRecords(prospect, signals), nil
}

// DetectForTenant scans the tenant's most recent prospects one at a time and
// keeps those that produced at least one buying signal.
func (d *Detector) DetectForTenant(ctx context.Context, tenantID string) ([]ProspectResult, error) {
	prospects, err := d.repo.SelectProspectsByTenantID(ctx, tenantID, models.ProspectQuery{Limit: d.limit})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProspectLookupFailed, err)
	}

	results := []ProspectResult{}
	for i := range prospects {
		p := &prospects[i]
		signals, err := d.repo.SelectSignalsByProspectID(ctx, tenantID, p.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSignalQueryFailed, err)
		}
		detected := DetectFromRecords(p, signals)
		if len(detected) == 0 {
			continue
		}
		results = append(results, ProspectResult{
			ProspectID:    p.ID,
			CompanyName:   p.CompanyName,
			BuyingSignals: detected,
		})
	}
	return results, nil
}
