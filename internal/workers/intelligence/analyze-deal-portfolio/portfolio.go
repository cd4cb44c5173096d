// internal/workers/intelligence/analyze-deal-portfolio/portfolio.go
package analyzedealportfolio

import (
	"math"
	"sort"
	"strings"

	"sales-hunter-workers/internal/models"
	"sales-hunter-workers/internal/scoring"
)

// DefaultTopReasons is how many reasons each ranking keeps.
const DefaultTopReasons = 5

// AnalyzePortfolio aggregates a list of deals. Every ratio over an empty set is 0.
func AnalyzePortfolio(deals []models.DealData) PortfolioSummary {
	return analyzePortfolio(deals, DefaultTopReasons)
}

func analyzePortfolio(deals []models.DealData, top int) PortfolioSummary {
	summary := PortfolioSummary{
		TotalDeals:         len(deals),
		TopWinReasons:      []ReasonCount{},
		TopLossReasons:     []ReasonCount{},
		CompetitorWinRates: map[string]float64{},
	}
	if len(deals) == 0 {
		return summary
	}

	won, cycleTotal := 0, 0
	var wonValue float64
	winReasons := map[string]int{}
	lossReasons := map[string]int{}
	competitorTotals := map[string]int{}
	competitorWins := map[string]int{}

	for _, d := range deals {
		cycleTotal += d.SalesCycleLength
		if d.Outcome == models.OutcomeWon {
			won++
			wonValue += d.DealValue
		}

		for _, r := range d.WinLossReasons {
			r = strings.TrimSpace(r)
			if r == "" {
				continue
			}
			switch d.Outcome {
			case models.OutcomeWon:
				winReasons[r]++
			case models.OutcomeLost:
				lossReasons[r]++
			}
		}

		if c := strings.TrimSpace(d.CompetitorInvolved); c != "" {
			competitorTotals[c]++
			if d.Outcome == models.OutcomeWon {
				competitorWins[c]++
			}
		}
	}

	summary.WinRate = ratio(won, len(deals))
	summary.AvgSalesCycle = scoring.Round(float64(cycleTotal) / float64(len(deals)))
	if won > 0 {
		summary.AvgDealSize = scoring.Round(wonValue / float64(won))
	}
	summary.TopWinReasons = rankReasons(winReasons, top)
	summary.TopLossReasons = rankReasons(lossReasons, top)
	for c, total := range competitorTotals {
		summary.CompetitorWinRates[c] = ratio(competitorWins[c], total)
	}
	return summary
}

// rankReasons orders by count, highest first; equal counts sort alphabetically.
func rankReasons(counts map[string]int, top int) []ReasonCount {
	out := make([]ReasonCount, 0, len(counts))
	for r, n := range counts {
		out = append(out, ReasonCount{Reason: r, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	if len(out) > top {
		out = out[:top]
	}
	return out
}

// ratio returns num/den rounded to four decimals, 0 when den is 0.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(float64(num)/float64(den)*10000) / 10000
}
