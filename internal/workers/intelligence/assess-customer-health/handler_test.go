// internal/workers/intelligence/assess-customer-health/handler_test.go
package assesscustomerhealth

import (
	"context"
	stderrors "errors"
	"testing"

	"sales-hunter-workers/internal/common/errors"
	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createExpandingInput() *Input {
	return &Input{
		CustomerID: "cust-1",
		Engagement: EngagementFacts{LastContactDays: 5, MeetingsLast90Days: 4, EmailResponseRate: 0.8},
		Contract:   ContractFacts{MonthsRemaining: 18, ContractValue: 100000, ExpansionDiscussed: true},
		Usage:      UsageFacts{ActiveUsers: 80, TotalUsers: 100, UsageTrend: models.UsageIncreasing, KeyFeatureUsage: 80},
	}
}

func createChurningInput() *Input {
	return &Input{
		CustomerID: "cust-2",
		Engagement: EngagementFacts{LastContactDays: 90, EmailResponseRate: 0.2, SupportTickets: 8},
		Contract:   ContractFacts{MonthsRemaining: 2, ContractValue: 40000, CompetitorMentioned: true},
		Usage:      UsageFacts{ActiveUsers: 10, TotalUsers: 100, UsageTrend: models.UsageDecreasing, KeyFeatureUsage: 10},
	}
}

func createAtRiskInput() *Input {
	return &Input{
		CustomerID: "cust-3",
		Engagement: EngagementFacts{LastContactDays: 20, MeetingsLast90Days: 2, EmailResponseRate: 0.5, SupportTickets: 3},
		Contract:   ContractFacts{MonthsRemaining: 8, ContractValue: 60000},
		Usage:      UsageFacts{ActiveUsers: 50, TotalUsers: 100, UsageTrend: models.UsageStable, KeyFeatureUsage: 50},
	}
}

func factorByName(t *testing.T, out *Output, name string) Factor {
	t.Helper()
	for _, f := range out.Factors {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("factor %s not found", name)
	return Factor{}
}

// ==========================
// Rule tests
// ==========================

func TestFactorWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range FactorWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Len(t, FactorWeights, 5)
}

func TestDetermineHealthStatus(t *testing.T) {
	tests := []struct {
		name                 string
		healthScore          int
		churnRisk            int
		expansionProbability int
		want                 models.HealthStatus
	}{
		{"expanding wins first", 75, 20, 55, models.HealthExpanding},
		{"churning before at-risk", 45, 65, 10, models.HealthChurning},
		{"at-risk via low health score", 48, 20, 0, models.HealthAtRisk},
		{"healthy", 85, 5, 10, models.HealthHealthy},
		{"expanding boundary", 70, 10, 50, models.HealthExpanding},
		{"expansion probability just short", 70, 10, 49, models.HealthHealthy},
		{"health just short of expanding", 69, 10, 80, models.HealthHealthy},
		{"churn boundary", 55, 60, 5, models.HealthChurning},
		{"at-risk churn boundary", 65, 35, 5, models.HealthAtRisk},
		{"health boundary is not at-risk", 50, 34, 5, models.HealthHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineHealthStatus(tt.healthScore, tt.churnRisk, tt.expansionProbability))
		})
	}
}

func TestChurnRisk(t *testing.T) {
	tests := map[int]int{
		100: 0,
		90:  5,
		80:  15,
		79:  17,
		60:  55,
		59:  56,
		40:  65,
		39:  67,
		20:  95,
		0:   95,
	}
	for score, want := range tests {
		assert.Equal(t, want, ChurnRisk(score), "healthScore=%d", score)
	}
}

func TestExpansionProbability(t *testing.T) {
	assert.Equal(t, 5, ExpansionProbability(59, true, models.UsageIncreasing, 90))
	assert.Equal(t, 0, ExpansionProbability(60, false, models.UsageStable, 0))
	assert.Equal(t, 15, ExpansionProbability(70, false, models.UsageStable, 70))
	assert.Equal(t, 65, ExpansionProbability(70, true, models.UsageIncreasing, 71))
	assert.Equal(t, 95, ExpansionProbability(100, true, models.UsageIncreasing, 80))
}

func TestAssessHealth_Expanding(t *testing.T) {
	out := AssessHealth(createExpandingInput())

	assert.Equal(t, 93, out.EngagementScore)
	assert.Equal(t, 80, out.AdoptionScore)
	assert.Equal(t, 92, out.SentimentScore)
	assert.Equal(t, 89, out.HealthScore)
	assert.Equal(t, 6, out.ChurnRisk)
	assert.Equal(t, 94, out.ExpansionProbability)
	assert.Equal(t, models.HealthExpanding, out.HealthStatus)

	assert.Equal(t, 95, factorByName(t, out, FactorContractHealth).Score)
	assert.Equal(t, 85, factorByName(t, out, FactorUsageTrend).Score)
	assert.Equal(t, models.TrendImproving, factorByName(t, out, FactorEngagement).Trend)
	assert.Equal(t, models.TrendImproving, factorByName(t, out, FactorSentiment).Trend)

	require.Len(t, out.ExpansionOpportunities, 3)
	assert.Equal(t, Opportunity{Type: "seat-expansion", Description: out.ExpansionOpportunities[0].Description, EstimatedValue: 30000, Probability: 60}, out.ExpansionOpportunities[0])
	assert.Equal(t, 25000, out.ExpansionOpportunities[1].EstimatedValue)
	assert.Equal(t, 45, out.ExpansionOpportunities[1].Probability)
	assert.Equal(t, "expansion-in-discussion", out.ExpansionOpportunities[2].Type)
	assert.Equal(t, 50000, out.ExpansionOpportunities[2].EstimatedValue)
	assert.Equal(t, 70, out.ExpansionOpportunities[2].Probability)
}

func TestAssessHealth_Churning(t *testing.T) {
	out := AssessHealth(createChurningInput())

	assert.Equal(t, 7, out.EngagementScore)
	assert.Equal(t, 10, out.AdoptionScore)
	assert.Equal(t, 13, out.SentimentScore)
	assert.Equal(t, 13, out.HealthScore)
	assert.Equal(t, 95, out.ChurnRisk)
	assert.Equal(t, 5, out.ExpansionProbability)
	assert.Equal(t, models.HealthChurning, out.HealthStatus)
	assert.NotNil(t, out.ExpansionOpportunities)
	assert.Empty(t, out.ExpansionOpportunities)

	assert.Equal(t, models.TrendDeclining, factorByName(t, out, FactorEngagement).Trend)
	assert.Equal(t, models.TrendDeclining, factorByName(t, out, FactorContractHealth).Trend)
	assert.Equal(t, models.TrendDeclining, factorByName(t, out, FactorAdoption).Trend)
}

func TestAssessHealth_AtRisk(t *testing.T) {
	out := AssessHealth(createAtRiskInput())

	assert.Equal(t, 54, out.EngagementScore)
	assert.Equal(t, 50, out.AdoptionScore)
	assert.Equal(t, 58, out.SentimentScore)
	assert.Equal(t, 56, out.HealthScore)
	assert.Equal(t, 57, out.ChurnRisk)
	assert.Equal(t, models.HealthAtRisk, out.HealthStatus)
	assert.Equal(t, models.TrendStable, factorByName(t, out, FactorUsageTrend).Trend)
}

func TestAssessHealth_StatusConsistentWithNumbers(t *testing.T) {
	for _, in := range []*Input{createExpandingInput(), createChurningInput(), createAtRiskInput(), {}} {
		out := AssessHealth(in)
		assert.Equal(t, DetermineHealthStatus(out.HealthScore, out.ChurnRisk, out.ExpansionProbability), out.HealthStatus)
		assert.GreaterOrEqual(t, out.HealthScore, 0)
		assert.LessOrEqual(t, out.HealthScore, 100)
	}
}

func TestAssessHealth_ZeroUsersAndClamping(t *testing.T) {
	out := AssessHealth(&Input{
		Engagement: EngagementFacts{LastContactDays: 1, MeetingsLast90Days: 20, EmailResponseRate: 4},
		Usage:      UsageFacts{UsageTrend: "sideways", KeyFeatureUsage: 500},
	})

	// 35 + 30 + 35 after the response rate is clamped to 1.
	assert.Equal(t, 100, out.EngagementScore)
	assert.Equal(t, 50, out.AdoptionScore)
	assert.Equal(t, 60, factorByName(t, out, FactorUsageTrend).Score)
}

// ==========================
// Handler tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t), nil)

	out, err := h.Execute(context.Background(), createExpandingInput())
	require.NoError(t, err)
	assert.Equal(t, "cust-1", out.CustomerID)
	assert.Equal(t, models.HealthExpanding, out.HealthStatus)
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"response rate above one", func(in *Input) { in.Engagement.EmailResponseRate = 1.2 }},
		{"negative response rate", func(in *Input) { in.Engagement.EmailResponseRate = -0.1 }},
		{"key feature usage above 100", func(in *Input) { in.Usage.KeyFeatureUsage = 101 }},
		{"unknown usage trend", func(in *Input) { in.Usage.UsageTrend = "flat" }},
		{"more active than total users", func(in *Input) { in.Usage.ActiveUsers = 120 }},
	}

	h := NewHandler(LoadConfig(), logger.NewNoOpLogger(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := createExpandingInput()
			tt.mutate(in)

			_, err := h.Execute(context.Background(), in)
			require.Error(t, err)
			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
			assert.False(t, stdErr.Retryable)
		})
	}
}

func TestHandler_Execute_Idempotent(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewNoOpLogger(), nil)

	first, err := h.Execute(context.Background(), createAtRiskInput())
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), createAtRiskInput())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated assessment differs (-first +second):\n%s", diff)
	}
}
