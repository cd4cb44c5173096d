// internal/workers/intelligence/analyze-win-loss/models.go
package analyzewinloss

import "sales-hunter-workers/internal/models"

type Input struct {
	TenantID string          `json:"tenantId,omitempty"`
	Deal     models.DealData `json:"deal"`
}

type Output struct {
	DealID  string             `json:"dealId,omitempty"`
	Outcome models.DealOutcome `json:"outcome"`
	DealInsights
}

// DealInsights is the qualitative read-out of one closed deal.
type DealInsights struct {
	KeyFactors      []KeyFactor    `json:"keyFactors"`
	LessonsLearned  []string       `json:"lessonsLearned"`
	Recommendations []string       `json:"recommendations"`
	Benchmarks      DealBenchmarks `json:"benchmarks"`
}

type KeyFactor struct {
	Factor      string        `json:"factor"`
	Impact      models.Impact `json:"impact"`
	Weight      float64       `json:"weight"`
	Description string        `json:"description"`
}

type DealBenchmarks struct {
	SalesCycleDays   int     `json:"salesCycleDays"`
	DealValue        float64 `json:"dealValue"`
	StageCount       int     `json:"stageCount"`
	AvgStageDuration int     `json:"avgStageDuration"`
	LongestStage     string  `json:"longestStage,omitempty"`
	LongestStageDays int     `json:"longestStageDays"`
}
