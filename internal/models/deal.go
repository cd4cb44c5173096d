// internal/models/deal.go
package models

// StageEntry is the time a deal spent in one pipeline stage.
type StageEntry struct {
	Stage        string `json:"stage"`
	DurationDays int    `json:"durationDays"`
}

// DealData is a closed deal submitted for win/loss analysis.
type DealData struct {
	ID                 string       `json:"id,omitempty"`
	Outcome            DealOutcome  `json:"outcome"`
	DealValue          float64      `json:"dealValue"`
	SalesCycleLength   int          `json:"salesCycleLength"`
	CompetitorInvolved string       `json:"competitorInvolved,omitempty"`
	Stages             []StageEntry `json:"stages"`
	WinLossReasons     []string     `json:"winLossReasons"`
}
