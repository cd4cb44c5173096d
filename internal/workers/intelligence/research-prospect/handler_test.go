// internal/workers/intelligence/research-prospect/handler_test.go
package researchprospect

import (
	"context"
	"errors"
	"testing"
	"time"

	stderrors "sales-hunter-workers/internal/common/errors"
	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/models"
	detectbuyingsignals "sales-hunter-workers/internal/workers/intelligence/detect-buying-signals"
	maprelationships "sales-hunter-workers/internal/workers/intelligence/map-relationships"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeStore struct {
	prospect    *models.Prospect
	signals     []models.Signal
	profile     *models.CompanyProfile
	industry    *models.Industry
	contacts    []models.Contact
	prospectErr error
	companyErr  error
	industryErr error
	signalErr   error
	contactErr  error
	calls       []string
}

func (f *fakeStore) SelectProspectByID(_ context.Context, _, _ string) (*models.Prospect, error) {
	f.calls = append(f.calls, "prospect")
	return f.prospect, f.prospectErr
}

func (f *fakeStore) SelectSignalsByProspectID(_ context.Context, _, _ string) ([]models.Signal, error) {
	f.calls = append(f.calls, "signals")
	return f.signals, f.signalErr
}

func (f *fakeStore) SelectCompanyProfileByID(_ context.Context, _, _ string) (*models.CompanyProfile, error) {
	f.calls = append(f.calls, "company")
	return f.profile, f.companyErr
}

func (f *fakeStore) SelectIndustryByID(_ context.Context, _ string) (*models.Industry, error) {
	f.calls = append(f.calls, "industry")
	return f.industry, f.industryErr
}

func (f *fakeStore) SelectContactsByTenantID(_ context.Context, _, _ string) ([]models.Contact, error) {
	f.calls = append(f.calls, "contacts")
	return f.contacts, f.contactErr
}

func fullStore() *fakeStore {
	detected := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &fakeStore{
		prospect: &models.Prospect{
			ID: "p-1", TenantID: "tenant-1", CompanyName: "acme roofing",
			CompanyProfileID: "c-1", IndustryID: "ind-7",
			FitScore: models.IntPtr(80), IntentScore: models.IntPtr(70),
		},
		signals: []models.Signal{
			{ID: "s-1", SignalType: models.SignalLeadershipChange, Title: "New COO", Strength: 60, DetectedAt: detected},
		},
		profile:  &models.CompanyProfile{ID: "c-1", TenantID: "tenant-1", Name: "Acme Roofing Inc."},
		industry: &models.Industry{ID: "ind-7", Name: "Construction", Code: "23"},
		contacts: []models.Contact{
			{ID: "ct-1", Name: "Dana Ruiz", Title: "Chief Executive Officer"},
			{ID: "ct-2", Name: "Sam Lee", Title: "Compliance Manager"},
		},
	}
}

func newTestHandler(t *testing.T, store *fakeStore) *Handler {
	return NewHandler(LoadConfig(), store, store, store, logger.NewTestLogger(t), nil)
}

// ==========================
// Research
// ==========================

func TestExecute_FullResearch(t *testing.T) {
	store := fullStore()
	output, err := newTestHandler(t, store).Execute(context.Background(), &Input{TenantID: "tenant-1", ProspectID: "p-1"})
	require.NoError(t, err)

	assert.True(t, output.Found)
	assert.Equal(t, "Acme Roofing Inc.", output.CompanyName)
	assert.Equal(t, "Construction", output.Industry.Name)
	assert.Equal(t, []string{"prospect", "company", "industry", "signals", "contacts"}, store.calls)

	want := detectbuyingsignals.DetectFromRecords(store.prospect, store.signals)
	assert.Equal(t, want, output.BuyingSignals)
	require.NotNil(t, output.TopSignal)
	assert.Equal(t, output.BuyingSignals[0], *output.TopSignal)

	var kinds []models.BuyingSignalType
	for _, s := range output.BuyingSignals {
		kinds = append(kinds, s.SignalType)
	}
	assert.Contains(t, kinds, models.BuyingSignalHighIntent)
	assert.Contains(t, kinds, models.BuyingSignalLeadershipTransition)

	assert.Equal(t, maprelationships.AnalyzeContacts(store.contacts), output.Relationships)
	assert.Equal(t, models.RoleEconomicBuyer, output.Relationships.Contacts[0].SuggestedCommitteeRole)
}

func TestExecute_ProspectNotFound(t *testing.T) {
	store := &fakeStore{}
	output, err := newTestHandler(t, store).Execute(context.Background(), &Input{TenantID: "tenant-1", ProspectID: "missing"})
	require.NoError(t, err)

	assert.False(t, output.Found)
	assert.Equal(t, "missing", output.ProspectID)
	assert.Empty(t, output.BuyingSignals)
	assert.NotNil(t, output.BuyingSignals)
	assert.Nil(t, output.TopSignal)
	assert.Empty(t, output.Relationships.Contacts)
	assert.Equal(t, []string{"prospect"}, store.calls)
}

func TestExecute_CompanyFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*fakeStore)
		wantName  string
		wantCalls []string
	}{
		{
			name:      "profile missing keeps prospect name",
			mutate:    func(f *fakeStore) { f.profile = nil },
			wantName:  "acme roofing",
			wantCalls: []string{"prospect", "company", "industry", "signals", "contacts"},
		},
		{
			name:      "unnamed profile keeps prospect name",
			mutate:    func(f *fakeStore) { f.profile.Name = "" },
			wantName:  "acme roofing",
			wantCalls: []string{"prospect", "company", "industry", "signals", "contacts"},
		},
		{
			name: "no name anywhere",
			mutate: func(f *fakeStore) {
				f.profile = nil
				f.prospect.CompanyName = ""
			},
			wantName:  UnknownCompany,
			wantCalls: []string{"prospect", "company", "industry", "signals", "contacts"},
		},
		{
			name: "no profile or industry reference",
			mutate: func(f *fakeStore) {
				f.prospect.CompanyProfileID = ""
				f.prospect.IndustryID = ""
			},
			wantName:  "acme roofing",
			wantCalls: []string{"prospect", "signals", "contacts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := fullStore()
			tt.mutate(store)
			output, err := newTestHandler(t, store).Execute(context.Background(), &Input{TenantID: "tenant-1", ProspectID: "p-1"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, output.CompanyName)
			assert.Equal(t, tt.wantCalls, store.calls)
		})
	}
}

func TestExecute_IndustryFailureIsTolerated(t *testing.T) {
	store := fullStore()
	store.industryErr = errors.New("connection reset")

	output, err := newTestHandler(t, store).Execute(context.Background(), &Input{TenantID: "tenant-1", ProspectID: "p-1"})
	require.NoError(t, err)
	assert.Nil(t, output.Industry)
	assert.NotEmpty(t, output.BuyingSignals)
}

func TestExecute_Idempotent(t *testing.T) {
	h := newTestHandler(t, fullStore())
	input := &Input{TenantID: "tenant-1", ProspectID: "p-1"}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("research differs between runs (-first +second):\n%s", diff)
	}
}

// ==========================
// Errors
// ==========================

func TestExecute_Errors(t *testing.T) {
	boom := errors.New("pq: canceling statement due to statement timeout")
	tests := []struct {
		name   string
		mutate func(*fakeStore)
		input  *Input
		code   stderrors.ErrorCode
	}{
		{name: "missing ids", mutate: func(*fakeStore) {}, input: &Input{TenantID: "tenant-1"}, code: stderrors.ErrCodeInvalidInput},
		{name: "prospect", mutate: func(f *fakeStore) { f.prospectErr = boom }, code: stderrors.ErrCodeProspectLookupFailed},
		{name: "company", mutate: func(f *fakeStore) { f.companyErr = boom }, code: stderrors.ErrCodeCompanyLookupFailed},
		{name: "signals", mutate: func(f *fakeStore) { f.signalErr = boom }, code: stderrors.ErrCodeSignalQueryFailed},
		{name: "contacts", mutate: func(f *fakeStore) { f.contactErr = boom }, code: stderrors.ErrCodeContactQueryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := fullStore()
			tt.mutate(store)
			input := tt.input
			if input == nil {
				input = &Input{TenantID: "tenant-1", ProspectID: "p-1"}
			}

			_, err := newTestHandler(t, store).Execute(context.Background(), input)
			require.Error(t, err)
			var stdErr *stderrors.StandardError
			require.True(t, errors.As(err, &stdErr))
			assert.Equal(t, tt.code, stdErr.Code)
			if tt.code != stderrors.ErrCodeInvalidInput {
				assert.True(t, stdErr.Retryable)
				assert.ErrorIs(t, err, boom)
			}
		})
	}
}
