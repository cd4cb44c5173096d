// internal/workers/intelligence/assess-customer-health/rules.go
package assesscustomerhealth

import (
	"fmt"
	"math"

	"sales-hunter-workers/internal/models"
	"sales-hunter-workers/internal/scoring"
)

const (
	FactorEngagement     = "engagement"
	FactorAdoption       = "adoption"
	FactorSentiment      = "sentiment"
	FactorContractHealth = "contractHealth"
	FactorUsageTrend     = "usageTrend"
)

// FactorWeights sum to 1.0.
var FactorWeights = map[string]float64{
	FactorEngagement:     0.25,
	FactorAdoption:       0.25,
	FactorSentiment:      0.20,
	FactorContractHealth: 0.15,
	FactorUsageTrend:     0.15,
}

var factorOrder = []string{FactorEngagement, FactorAdoption, FactorSentiment, FactorContractHealth, FactorUsageTrend}

var usageTrendScores = map[models.UsageTrend]int{
	models.UsageIncreasing: 85,
	models.UsageStable:     60,
	models.UsageDecreasing: 25,
}

// AssessHealth scores a customer from engagement, contract and usage facts.
// Out-of-range rates are clamped; an unknown usage trend counts as stable.
func AssessHealth(in *Input) *Output {
	e, c, u := in.Engagement, in.Contract, in.Usage
	e.EmailResponseRate = clampFloat(e.EmailResponseRate, 0, 1)
	u.KeyFeatureUsage = clampFloat(u.KeyFeatureUsage, 0, 100)
	if !u.UsageTrend.Valid() {
		u.UsageTrend = models.UsageStable
	}

	ratio := activeRatio(u)
	scores := map[string]int{
		FactorEngagement:     engagementScore(e),
		FactorAdoption:       adoptionScore(ratio, u.KeyFeatureUsage),
		FactorSentiment:      sentimentScore(e, c),
		FactorContractHealth: contractScore(c),
		FactorUsageTrend:     usageTrendScores[u.UsageTrend],
	}

	health := scoring.WeightedSum(scores, FactorWeights)
	churn := ChurnRisk(health)
	expansion := ExpansionProbability(health, c.ExpansionDiscussed, u.UsageTrend, u.KeyFeatureUsage)

	factors := make([]Factor, 0, len(factorOrder))
	for _, name := range factorOrder {
		trend, detail := describeFactor(name, e, c, u, ratio)
		factors = append(factors, Factor{
			Name:   name,
			Score:  scores[name],
			Weight: FactorWeights[name],
			Trend:  trend,
			Detail: detail,
		})
	}

	return &Output{
		CustomerID:             in.CustomerID,
		HealthScore:            health,
		HealthStatus:           DetermineHealthStatus(health, churn, expansion),
		EngagementScore:        scores[FactorEngagement],
		AdoptionScore:          scores[FactorAdoption],
		SentimentScore:         scores[FactorSentiment],
		ExpansionProbability:   expansion,
		ChurnRisk:              churn,
		Factors:                factors,
		ExpansionOpportunities: opportunities(health, ratio, c, u),
	}
}

// DetermineHealthStatus applies the status rules in order; the first match wins.
func DetermineHealthStatus(healthScore, churnRisk, expansionProbability int) models.HealthStatus {
	switch {
	case expansionProbability >= 50 && healthScore >= 70:
		return models.HealthExpanding
	case churnRisk >= 60:
		return models.HealthChurning
	case churnRisk >= 35 || healthScore < 50:
		return models.HealthAtRisk
	default:
		return models.HealthHealthy
	}
}

// ChurnRisk maps a health score onto a churn percentage through fixed bands.
func ChurnRisk(healthScore int) int {
	hs := float64(healthScore)
	switch {
	case healthScore >= 80:
		if risk := 15 - (healthScore - 80); risk > 0 {
			return risk
		}
		return 0
	case healthScore >= 60:
		return 15 + (80-healthScore)*2
	case healthScore >= 40:
		return scoring.Round(55 + (60-hs)*0.5)
	default:
		if risk := scoring.Round(65 + (40-hs)*1.5); risk < 95 {
			return risk
		}
		return 95
	}
}

// ExpansionProbability is 5 below a health score of 60; above it the score
// and the expansion bonuses add up to at most 95.
func ExpansionProbability(healthScore int, expansionDiscussed bool, trend models.UsageTrend, keyFeatureUsage float64) int {
	if healthScore < 60 {
		return 5
	}
	p := scoring.Round(float64(healthScore-60) * 1.5)
	if expansionDiscussed {
		p += 25
	}
	if trend == models.UsageIncreasing {
		p += 15
	}
	if keyFeatureUsage > 70 {
		p += 10
	}
	if p > 95 {
		p = 95
	}
	return p
}

func activeRatio(u UsageFacts) float64 {
	if u.TotalUsers <= 0 {
		return 0
	}
	return float64(u.ActiveUsers) / float64(u.TotalUsers)
}

func engagementScore(e EngagementFacts) int {
	var score int
	switch d := e.LastContactDays; {
	case d <= 7:
		score = 35
	case d <= 14:
		score = 28
	case d <= 30:
		score = 20
	case d <= 60:
		score = 10
	}
	meetings := e.MeetingsLast90Days * 8
	if meetings > 30 {
		meetings = 30
	}
	score += meetings + scoring.Round(e.EmailResponseRate*35)
	if score > 100 {
		score = 100
	}
	return score
}

func adoptionScore(ratio, keyFeatureUsage float64) int {
	score := scoring.Round(ratio*50) + scoring.Round(keyFeatureUsage*0.5)
	if score > 100 {
		score = 100
	}
	return score
}

func sentimentScore(e EngagementFacts, c ContractFacts) int {
	score := 50
	if c.CompetitorMentioned {
		score -= 25
	}
	if c.ExpansionDiscussed {
		score += 20
	}
	if e.SupportTickets > 5 {
		score -= 15
	}
	if e.SupportTickets == 0 {
		score += 10
	}
	score += scoring.Round(e.EmailResponseRate * 15)
	return scoring.Clamp(score, 0, 100)
}

func contractScore(c ContractFacts) int {
	score := 50
	switch m := c.MonthsRemaining; {
	case m > 12:
		score += 30
	case m > 6:
		score += 15
	case m <= 3:
		score -= 20
	}
	if c.ExpansionDiscussed {
		score += 15
	}
	if c.CompetitorMentioned {
		score -= 15
	}
	return scoring.Clamp(score, 0, 100)
}

func describeFactor(name string, e EngagementFacts, c ContractFacts, u UsageFacts, ratio float64) (models.Trend, string) {
	switch name {
	case FactorEngagement:
		trend := models.TrendStable
		if e.LastContactDays <= 14 && e.MeetingsLast90Days >= 3 {
			trend = models.TrendImproving
		} else if e.LastContactDays > 30 {
			trend = models.TrendDeclining
		}
		return trend, fmt.Sprintf("Last contact %d days ago, %d meetings in 90 days, %d%% email response rate",
			e.LastContactDays, e.MeetingsLast90Days, scoring.Round(e.EmailResponseRate*100))
	case FactorAdoption:
		return u.UsageTrend.AsTrend(), fmt.Sprintf("%d of %d users active (%d%%), key feature usage %d%%",
			u.ActiveUsers, u.TotalUsers, scoring.Round(ratio*100), scoring.Round(u.KeyFeatureUsage))
	case FactorSentiment:
		switch {
		case c.CompetitorMentioned:
			return models.TrendDeclining, "Competitor mentioned in recent conversations"
		case c.ExpansionDiscussed:
			return models.TrendImproving, "Customer is discussing expansion"
		}
		return models.TrendStable, fmt.Sprintf("%d open support tickets", e.SupportTickets)
	case FactorContractHealth:
		switch {
		case c.MonthsRemaining <= 3:
			return models.TrendDeclining, fmt.Sprintf("Renewal due in %d months", c.MonthsRemaining)
		case c.ExpansionDiscussed:
			return models.TrendImproving, fmt.Sprintf("%d months remaining with expansion in discussion", c.MonthsRemaining)
		}
		return models.TrendStable, fmt.Sprintf("%d months remaining on contract", c.MonthsRemaining)
	default:
		return u.UsageTrend.AsTrend(), fmt.Sprintf("Usage is %s", u.UsageTrend)
	}
}

func opportunities(health int, ratio float64, c ContractFacts, u UsageFacts) []Opportunity {
	out := []Opportunity{}
	if ratio > 0.7 && health >= 60 {
		out = append(out, Opportunity{
			Type:           "seat-expansion",
			Description:    fmt.Sprintf("%d%% of licensed users are active; propose additional seats", scoring.Round(ratio*100)),
			EstimatedValue: scoring.Round(c.ContractValue * 0.3),
			Probability:    60,
		})
	}
	if u.KeyFeatureUsage > 60 && health >= 65 {
		out = append(out, Opportunity{
			Type:           "premium-features",
			Description:    "Heavy key-feature usage; introduce the premium tier",
			EstimatedValue: scoring.Round(c.ContractValue * 0.25),
			Probability:    45,
		})
	}
	if c.ExpansionDiscussed {
		out = append(out, Opportunity{
			Type:           "expansion-in-discussion",
			Description:    "Expansion already under discussion; prepare a formal proposal",
			EstimatedValue: scoring.Round(c.ContractValue * 0.5),
			Probability:    70,
		})
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
