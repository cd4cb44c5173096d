// internal/workers/intelligence/analyze-deal-portfolio/models.go
package analyzedealportfolio

import "sales-hunter-workers/internal/models"

type Input struct {
	TenantID string            `json:"tenantId,omitempty"`
	Deals    []models.DealData `json:"deals"`
}

type Output struct {
	TenantID string `json:"tenantId,omitempty"`
	PortfolioSummary
}

// PortfolioSummary aggregates closed deals. Rates are fractions in [0,1].
type PortfolioSummary struct {
	TotalDeals         int                `json:"totalDeals"`
	WinRate            float64            `json:"winRate"`
	AvgSalesCycle      int                `json:"avgSalesCycle"`
	AvgDealSize        int                `json:"avgDealSize"`
	TopWinReasons      []ReasonCount      `json:"topWinReasons"`
	TopLossReasons     []ReasonCount      `json:"topLossReasons"`
	CompetitorWinRates map[string]float64 `json:"competitorWinRates"`
}

type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}
