// internal/workers/intelligence/research-prospect/research.go
package researchprospect

import (
	"context"
	"errors"
	"fmt"

	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/models"
	detectbuyingsignals "sales-hunter-workers/internal/workers/intelligence/detect-buying-signals"
	maprelationships "sales-hunter-workers/internal/workers/intelligence/map-relationships"
)

const UnknownCompany = "Unknown Company"

var (
	ErrProspectLookupFailed = errors.New("PROSPECT_LOOKUP_FAILED")
	ErrCompanyLookupFailed  = errors.New("COMPANY_LOOKUP_FAILED")
	ErrSignalQueryFailed    = errors.New("SIGNAL_QUERY_FAILED")
	ErrContactQueryFailed   = errors.New("CONTACT_QUERY_FAILED")
)

type ProspectReader interface {
	SelectProspectByID(ctx context.Context, tenantID, prospectID string) (*models.Prospect, error)
	SelectSignalsByProspectID(ctx context.Context, tenantID, prospectID string) ([]models.Signal, error)
}

type CompanyReader interface {
	SelectCompanyProfileByID(ctx context.Context, tenantID, companyID string) (*models.CompanyProfile, error)
	SelectIndustryByID(ctx context.Context, industryID string) (*models.Industry, error)
}

// Researcher gathers everything known about a prospect with sequential reads.
type Researcher struct {
	prospects ProspectReader
	companies CompanyReader
	contacts  maprelationships.ContactReader
	logger    logger.Logger
}

func NewResearcher(prospects ProspectReader, companies CompanyReader, contacts maprelationships.ContactReader, log logger.Logger) *Researcher {
	return &Researcher{prospects: prospects, companies: companies, contacts: contacts, logger: log}
}

func (r *Researcher) Research(ctx context.Context, tenantID, prospectID string) (*Output, error) {
	output := &Output{
		ProspectID:    prospectID,
		BuyingSignals: []detectbuyingsignals.BuyingSignal{},
		Relationships: maprelationships.AnalyzeContacts(nil),
	}

	prospect, err := r.prospects.SelectProspectByID(ctx, tenantID, prospectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProspectLookupFailed, err)
	}
	if prospect == nil {
		r.logger.Warn("prospect not found", map[string]interface{}{"prospectId": prospectID})
		return output, nil
	}
	output.Found = true
	output.CompanyName = prospect.CompanyName

	if prospect.CompanyProfileID != "" {
		profile, err := r.companies.SelectCompanyProfileByID(ctx, tenantID, prospect.CompanyProfileID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCompanyLookupFailed, err)
		}
		if profile != nil {
			output.Company = profile
			if profile.Name != "" {
				output.CompanyName = profile.Name
			}
		}
	}
	if output.CompanyName == "" {
		output.CompanyName = UnknownCompany
	}
	r.logger.Debug("company resolved", map[string]interface{}{
		"prospectId":  prospectID,
		"companyName": output.CompanyName,
	})

	// Industry is decoration only; a failed read does not fail the research.
	if prospect.IndustryID != "" {
		industry, err := r.companies.SelectIndustryByID(ctx, prospect.IndustryID)
		if err != nil {
			r.logger.Warn("industry lookup failed", map[string]interface{}{
				"industryId": prospect.IndustryID,
				"error":      err.Error(),
			})
		} else {
			output.Industry = industry
		}
	}

	signals, err := r.prospects.SelectSignalsByProspectID(ctx, tenantID, prospectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignalQueryFailed, err)
	}
	output.BuyingSignals = detectbuyingsignals.DetectFromRecords(prospect, signals)
	if len(output.BuyingSignals) > 0 {
		top := output.BuyingSignals[0]
		output.TopSignal = &top
	}
	r.logger.Debug("signals detected", map[string]interface{}{
		"prospectId": prospectID,
		"signals":    len(output.BuyingSignals),
	})

	contacts, err := r.contacts.SelectContactsByTenantID(ctx, tenantID, prospectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContactQueryFailed, err)
	}
	output.Relationships = maprelationships.AnalyzeContacts(contacts)

	return output, nil
}
