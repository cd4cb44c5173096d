// internal/workers/intelligence/analyze-win-loss/rules.go
package analyzewinloss

import (
	"fmt"
	"strings"

	"sales-hunter-workers/internal/models"
	"sales-hunter-workers/internal/scoring"
)

const (
	FastCycleDays      = 30
	LongWinCycleDays   = 120
	LongLossCycleDays  = 90
	EnterpriseValue    = 100000
	StalledStageDays   = 30
	cycleFactorWeight  = 0.15
	competitorWeight   = 0.20
	enterpriseWeight   = 0.10
	reasonFactorWeight = 0.15
	stalledWeight      = 0.10
)

// KeywordFamily groups reason keywords that point at the same underlying factor.
type KeywordFamily struct {
	Name     string
	Factor   string
	Keywords []string
}

// ReasonFamilies is scanned in order against every win/loss reason.
var ReasonFamilies = []KeywordFamily{
	{Name: "price", Factor: "Pricing", Keywords: []string{"price", "cost", "budget"}},
	{Name: "feature", Factor: "Product fit", Keywords: []string{"feature", "capability", "function"}},
	{Name: "relationship", Factor: "Relationship", Keywords: []string{"relationship", "trust", "support"}},
	{Name: "timeline", Factor: "Timing", Keywords: []string{"timeline", "urgency", "timing"}},
}

var (
	priceLossRecommendations = []string{
		"Build an ROI model early so value is established before price is discussed",
		"Review discount guardrails and packaging options for budget-constrained buyers",
	}
	wonRecommendations = []string{
		"Document the winning approach and share it with the team",
		"Ask the customer for a reference or case study",
		"Plan the onboarding handoff to protect the relationship",
	}
	lostRecommendations = []string{
		"Schedule a loss review with the buyer to confirm the decision drivers",
		"Keep the account in nurture for the next buying cycle",
		"Review qualification criteria against this deal",
	}
	noDecisionLessons = []string{
		"Deals without a decision usually lacked a compelling event",
		"Qualification did not confirm a committed budget and timeline",
	}
	noDecisionRecommendations = []string{
		"Tighten qualification: confirm budget, authority and timeline before proposal",
		"Identify a compelling event that forces a decision",
	}
)

// AnalyzeDeal extracts key factors, lessons and recommendations from one closed deal.
func AnalyzeDeal(deal models.DealData) DealInsights {
	in := DealInsights{
		KeyFactors:      []KeyFactor{},
		LessonsLearned:  []string{},
		Recommendations: []string{},
		Benchmarks:      benchmarks(deal),
	}

	addCycleFactors(&in, deal)
	addCompetitorFactors(&in, deal)

	if deal.DealValue > EnterpriseValue {
		in.KeyFactors = append(in.KeyFactors, KeyFactor{
			Factor:      "Enterprise deal",
			Impact:      models.ImpactFor(deal.Outcome),
			Weight:      enterpriseWeight,
			Description: fmt.Sprintf("Deal value of %.0f is above the enterprise threshold", deal.DealValue),
		})
	}

	addReasonFactors(&in, deal)
	addStalledStages(&in, deal)

	if deal.Outcome == models.OutcomeNoDecision {
		in.LessonsLearned = append(in.LessonsLearned, noDecisionLessons...)
		in.Recommendations = append(in.Recommendations, noDecisionRecommendations...)
	}

	switch deal.Outcome {
	case models.OutcomeWon:
		in.Recommendations = append(in.Recommendations, wonRecommendations...)
	case models.OutcomeLost:
		in.Recommendations = append(in.Recommendations, lostRecommendations...)
	}
	return in
}

func addCycleFactors(in *DealInsights, deal models.DealData) {
	days := deal.SalesCycleLength
	switch {
	case deal.Outcome == models.OutcomeWon && days < FastCycleDays:
		in.KeyFactors = append(in.KeyFactors, KeyFactor{
			Factor:      "Fast sales cycle",
			Impact:      models.ImpactPositive,
			Weight:      cycleFactorWeight,
			Description: fmt.Sprintf("Closed in %d days", days),
		})
	case deal.Outcome == models.OutcomeWon && days > LongWinCycleDays:
		in.KeyFactors = append(in.KeyFactors, KeyFactor{
			Factor:      "Long sales cycle",
			Impact:      models.ImpactNeutral,
			Weight:      cycleFactorWeight,
			Description: fmt.Sprintf("Won after %d days", days),
		})
		in.LessonsLearned = append(in.LessonsLearned,
			fmt.Sprintf("The deal was won but took %d days; look for steps that can be run in parallel", days))
	case deal.Outcome == models.OutcomeLost && days > LongLossCycleDays:
		in.KeyFactors = append(in.KeyFactors, KeyFactor{
			Factor:      "Prolonged sales cycle",
			Impact:      models.ImpactNegative,
			Weight:      cycleFactorWeight,
			Description: fmt.Sprintf("Lost after %d days", days),
		})
		in.LessonsLearned = append(in.LessonsLearned,
			fmt.Sprintf("Long cycles lose momentum: this deal ran %d days before it was lost", days))
	}
}

func addCompetitorFactors(in *DealInsights, deal models.DealData) {
	competitor := strings.TrimSpace(deal.CompetitorInvolved)
	if competitor == "" {
		return
	}
	switch deal.Outcome {
	case models.OutcomeWon:
		in.KeyFactors = append(in.KeyFactors, KeyFactor{
			Factor:      "Competitive win",
			Impact:      models.ImpactPositive,
			Weight:      competitorWeight,
			Description: fmt.Sprintf("Won against %s", competitor),
		})
		in.Recommendations = append(in.Recommendations,
			fmt.Sprintf("Update the %s battle card with what won this deal", competitor))
	case models.OutcomeLost:
		in.KeyFactors = append(in.KeyFactors, KeyFactor{
			Factor:      "Competitive loss",
			Impact:      models.ImpactNegative,
			Weight:      competitorWeight,
			Description: fmt.Sprintf("Lost to %s", competitor),
		})
		in.LessonsLearned = append(in.LessonsLearned,
			fmt.Sprintf("%s was preferred in this evaluation; differentiate earlier in the cycle", competitor))
		in.Recommendations = append(in.Recommendations,
			fmt.Sprintf("Run a competitive review of %s positioning and refresh the objection handling", competitor))
	}
}

func addReasonFactors(in *DealInsights, deal models.DealData) {
	priceRecsAdded := false
	for _, reason := range deal.WinLossReasons {
		lower := strings.ToLower(reason)
		for _, family := range ReasonFamilies {
			if !containsAny(lower, family.Keywords) {
				continue
			}
			in.KeyFactors = append(in.KeyFactors, KeyFactor{
				Factor:      family.Factor,
				Impact:      models.ImpactFor(deal.Outcome),
				Weight:      reasonFactorWeight,
				Description: reason,
			})
			if family.Name == "price" && deal.Outcome == models.OutcomeLost && !priceRecsAdded {
				in.Recommendations = append(in.Recommendations, priceLossRecommendations...)
				priceRecsAdded = true
			}
		}
	}
}

func addStalledStages(in *DealInsights, deal models.DealData) {
	var stalled []string
	for _, stage := range deal.Stages {
		if stage.DurationDays <= StalledStageDays {
			continue
		}
		stalled = append(stalled, stage.Stage)
		in.KeyFactors = append(in.KeyFactors, KeyFactor{
			Factor:      fmt.Sprintf("Stalled in %s", stage.Stage),
			Impact:      models.ImpactNegative,
			Weight:      stalledWeight,
			Description: fmt.Sprintf("%d days in %s", stage.DurationDays, stage.Stage),
		})
	}
	if len(stalled) > 0 {
		in.LessonsLearned = append(in.LessonsLearned,
			fmt.Sprintf("Deal stalled in: %s; define exit criteria for these stages", strings.Join(stalled, ", ")))
	}
}

func benchmarks(deal models.DealData) DealBenchmarks {
	b := DealBenchmarks{
		SalesCycleDays: deal.SalesCycleLength,
		DealValue:      deal.DealValue,
		StageCount:     len(deal.Stages),
	}
	total := 0
	for _, s := range deal.Stages {
		total += s.DurationDays
		if s.DurationDays > b.LongestStageDays {
			b.LongestStageDays = s.DurationDays
			b.LongestStage = s.Stage
		}
	}
	if b.StageCount > 0 {
		b.AvgStageDuration = scoring.Round(float64(total) / float64(b.StageCount))
	}
	return b
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
