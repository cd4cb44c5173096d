// internal/models/enums.go
package models

// SignalType classifies a raw signal record attached to a prospect.
type SignalType string

const (
	SignalViolation        SignalType = "violation"
	SignalNewPermit        SignalType = "new-permit"
	SignalPermitRenewal    SignalType = "permit-renewal"
	SignalExpansion        SignalType = "expansion"
	SignalHiring           SignalType = "hiring"
	SignalFunding          SignalType = "funding"
	SignalFacilityOpening  SignalType = "facility-opening"
	SignalLeadershipChange SignalType = "leadership-change"
)

// BuyingSignalType is the derived signal emitted by the signal detector.
type BuyingSignalType string

const (
	BuyingSignalComplianceUrgency    BuyingSignalType = "compliance-urgency"
	BuyingSignalExpansionReadiness   BuyingSignalType = "expansion-readiness"
	BuyingSignalLeadershipTransition BuyingSignalType = "leadership-transition"
	BuyingSignalHighIntent           BuyingSignalType = "high-intent"
)

type HealthStatus string

const (
	HealthExpanding HealthStatus = "expanding"
	HealthChurning  HealthStatus = "churning"
	HealthAtRisk    HealthStatus = "at-risk"
	HealthHealthy   HealthStatus = "healthy"
)

// Trend is the direction reported on each health factor.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// UsageTrend is the product-usage direction supplied with a health assessment.
type UsageTrend string

const (
	UsageIncreasing UsageTrend = "increasing"
	UsageStable     UsageTrend = "stable"
	UsageDecreasing UsageTrend = "decreasing"
)

// Valid reports whether u is one of the known usage trends.
func (u UsageTrend) Valid() bool {
	switch u {
	case UsageIncreasing, UsageStable, UsageDecreasing:
		return true
	}
	return false
}

// AsTrend maps a usage direction onto the factor trend vocabulary.
func (u UsageTrend) AsTrend() Trend {
	switch u {
	case UsageIncreasing:
		return TrendImproving
	case UsageDecreasing:
		return TrendDeclining
	default:
		return TrendStable
	}
}

type DealOutcome string

const (
	OutcomeWon          DealOutcome = "won"
	OutcomeLost         DealOutcome = "lost"
	OutcomeNoDecision   DealOutcome = "no-decision"
	OutcomeDisqualified DealOutcome = "disqualified"
)

func (o DealOutcome) Valid() bool {
	switch o {
	case OutcomeWon, OutcomeLost, OutcomeNoDecision, OutcomeDisqualified:
		return true
	}
	return false
}

// Impact is the polarity of a deal key factor.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// ImpactFor returns positive for won deals, negative for lost ones and neutral otherwise.
func ImpactFor(outcome DealOutcome) Impact {
	switch outcome {
	case OutcomeWon:
		return ImpactPositive
	case OutcomeLost:
		return ImpactNegative
	default:
		return ImpactNeutral
	}
}

// CommitteeRole is a contact's role in the buying committee.
type CommitteeRole string

const (
	RoleEconomicBuyer      CommitteeRole = "economic-buyer"
	RoleTechnicalEvaluator CommitteeRole = "technical-evaluator"
	RoleDecisionMaker      CommitteeRole = "decision-maker"
	RoleInfluencer         CommitteeRole = "influencer"
	RoleChampion           CommitteeRole = "champion"
	RoleEndUser            CommitteeRole = "end-user"
	RoleGatekeeper         CommitteeRole = "gatekeeper"
)

type EdgeType string

const (
	EdgeReportsTo EdgeType = "reports-to"
	EdgePeersWith EdgeType = "peers-with"
)

type AlertCategory string

const (
	CategoryComplianceViolation AlertCategory = "compliance-violation"
	CategoryRegulatoryChange    AlertCategory = "regulatory-change"
	CategoryBuyingSignal        AlertCategory = "buying-signal"
	CategoryExpansionSignal     AlertCategory = "expansion-signal"
	CategoryPermitExpiry        AlertCategory = "permit-expiry"
	CategoryCompetitorActivity  AlertCategory = "competitor-activity"
)

type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityHigh     AlertSeverity = "high"
	SeverityMedium   AlertSeverity = "medium"
	SeverityLow      AlertSeverity = "low"
	SeverityInfo     AlertSeverity = "info"
)

// AlertCondition names a condition kind inside an alert rule.
type AlertCondition string

const (
	ConditionNewViolation   AlertCondition = "new-violation"
	ConditionScoreThreshold AlertCondition = "score-threshold"
	ConditionNewSignal      AlertCondition = "new-signal"
)
