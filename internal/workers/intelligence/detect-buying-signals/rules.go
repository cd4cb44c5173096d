// internal/workers/intelligence/detect-buying-signals/rules.go
package detectbuyingsignals

import (
	"fmt"
	"sort"
	"strings"

	"sales-hunter-workers/internal/models"
	"sales-hunter-workers/internal/scoring"
)

// SignalWeights is the per-type weight used when raw signals are combined.
var SignalWeights = map[models.SignalType]float64{
	models.SignalViolation:        25,
	models.SignalNewPermit:        20,
	models.SignalPermitRenewal:    15,
	models.SignalExpansion:        15,
	models.SignalFunding:          15,
	models.SignalFacilityOpening:  15,
	models.SignalHiring:           10,
	models.SignalLeadershipChange: 10,
}

// DefaultSignalWeight applies to signal types missing from SignalWeights.
const DefaultSignalWeight = 5.0

const (
	ComplianceThreshold   = 40
	ComplianceUrgentScore = 70
	MinExpansionSignals   = 2
	HighIntentThreshold   = 60

	fitWeight    = 0.4
	intentWeight = 0.6
)

const (
	actionViolation  = "Lead with compliance remediation: reference the recorded violations and offer a corrective-action plan"
	actionPermit     = "Offer permitting support for the upcoming permit work"
	timingUrgent     = "Immediate - within 24-48 hours"
	timingSoon       = "Within 1-2 weeks"
	actionExpansion  = "Position capacity and scale-up services for the expansion"
	timingExpansion  = "Within 2-4 weeks, while growth plans are being budgeted"
	actionLeadership = "Introduce yourself to the new leadership before priorities are set"
	timingLeadership = "Within 30-90 days of the change, while new leaders review vendors"
	actionHighIntent = "Act now: engage with a tailored proposal"
	timingHighIntent = "Immediate - intent is at its peak"
)

// WeightFor returns the combination weight of a raw signal type.
func WeightFor(t models.SignalType) float64 {
	if w, ok := SignalWeights[t]; ok {
		return w
	}
	return DefaultSignalWeight
}

func isCompliance(t models.SignalType) bool {
	return t == models.SignalViolation || t == models.SignalNewPermit || t == models.SignalPermitRenewal
}

func isGrowth(t models.SignalType) bool {
	switch t {
	case models.SignalExpansion, models.SignalHiring, models.SignalFunding, models.SignalFacilityOpening:
		return true
	}
	return false
}

func component(s models.Signal) scoring.ComponentSignal {
	name := s.Title
	if name == "" {
		name = string(s.SignalType)
	}
	return scoring.ComponentSignal{Name: name, Score: s.Strength, Weight: WeightFor(s.SignalType)}
}

// DetectFromRecords runs the four detection rules over already-fetched data.
// A nil prospect yields no signals. The result is sorted by composite score,
// highest first; equal scores keep rule order.
func DetectFromRecords(prospect *models.Prospect, signals []models.Signal) []BuyingSignal {
	out := []BuyingSignal{}
	if prospect == nil {
		return out
	}

	if s, ok := complianceUrgency(signals); ok {
		out = append(out, s)
	}
	if s, ok := expansionReadiness(signals); ok {
		out = append(out, s)
	}
	if s, ok := leadershipTransition(signals); ok {
		out = append(out, s)
	}
	if s, ok := highIntent(prospect); ok {
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompositeScore > out[j].CompositeScore
	})
	return out
}

func complianceUrgency(signals []models.Signal) (BuyingSignal, bool) {
	var components []scoring.ComponentSignal
	violations, permits := 0, 0
	for _, s := range signals {
		if !isCompliance(s.SignalType) {
			continue
		}
		if s.SignalType == models.SignalViolation {
			violations++
		} else {
			permits++
		}
		components = append(components, component(s))
	}
	if len(components) == 0 {
		return BuyingSignal{}, false
	}

	score := scoring.Composite(components)
	if score < ComplianceThreshold {
		return BuyingSignal{}, false
	}

	action := actionPermit
	if violations > 0 {
		action = actionViolation
	}
	timing := timingSoon
	if score >= ComplianceUrgentScore {
		timing = timingUrgent
	}

	return BuyingSignal{
		SignalType:        models.BuyingSignalComplianceUrgency,
		Title:             "Compliance urgency",
		Description:       fmt.Sprintf("%d violation(s) and %d permit event(s) on record", violations, permits),
		CompositeScore:    score,
		ComponentSignals:  components,
		RecommendedAction: action,
		OptimalTiming:     timing,
	}, true
}

func expansionReadiness(signals []models.Signal) (BuyingSignal, bool) {
	var components []scoring.ComponentSignal
	var kinds []string
	seen := map[models.SignalType]bool{}
	for _, s := range signals {
		if !isGrowth(s.SignalType) {
			continue
		}
		components = append(components, component(s))
		if !seen[s.SignalType] {
			seen[s.SignalType] = true
			kinds = append(kinds, string(s.SignalType))
		}
	}
	if len(components) < MinExpansionSignals {
		return BuyingSignal{}, false
	}

	return BuyingSignal{
		SignalType:        models.BuyingSignalExpansionReadiness,
		Title:             "Expansion readiness",
		Description:       fmt.Sprintf("%d growth signals recorded (%s)", len(components), strings.Join(kinds, ", ")),
		CompositeScore:    scoring.Composite(components),
		ComponentSignals:  components,
		RecommendedAction: actionExpansion,
		OptimalTiming:     timingExpansion,
	}, true
}

func leadershipTransition(signals []models.Signal) (BuyingSignal, bool) {
	var components []scoring.ComponentSignal
	for _, s := range signals {
		if s.SignalType == models.SignalLeadershipChange {
			components = append(components, component(s))
		}
	}
	if len(components) == 0 {
		return BuyingSignal{}, false
	}

	return BuyingSignal{
		SignalType:        models.BuyingSignalLeadershipTransition,
		Title:             "Leadership transition",
		Description:       fmt.Sprintf("Leadership change: %s", components[0].Name),
		CompositeScore:    scoring.Composite(components),
		ComponentSignals:  components,
		RecommendedAction: actionLeadership,
		OptimalTiming:     timingLeadership,
	}, true
}

func highIntent(p *models.Prospect) (BuyingSignal, bool) {
	if p.FitScore == nil || p.IntentScore == nil {
		return BuyingSignal{}, false
	}
	fit, intent := *p.FitScore, *p.IntentScore
	score := scoring.Round(float64(fit)*fitWeight + float64(intent)*intentWeight)
	if score < HighIntentThreshold {
		return BuyingSignal{}, false
	}

	return BuyingSignal{
		SignalType:     models.BuyingSignalHighIntent,
		Title:          "High intent",
		Description:    fmt.Sprintf("Fit score %d and intent score %d combine to %d", fit, intent, score),
		CompositeScore: score,
		ComponentSignals: []scoring.ComponentSignal{
			{Name: "fit score", Score: fit, Weight: fitWeight},
			{Name: "intent score", Score: intent, Weight: intentWeight},
		},
		RecommendedAction: actionHighIntent,
		OptimalTiming:     timingHighIntent,
	}, true
}
