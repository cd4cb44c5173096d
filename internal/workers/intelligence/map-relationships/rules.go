// internal/workers/intelligence/map-relationships/rules.go
package maprelationships

import (
	"strings"
	"unicode"

	"sales-hunter-workers/internal/models"
)

// Keywords of four letters or fewer must match a whole word of the title;
// longer keywords match anywhere in it.
const wordKeywordMaxLen = 4

// RoleRule assigns a committee role on the first title match.
type RoleRule struct {
	Keywords []string
	// Requires, when set, must also match for the rule to apply.
	Requires []string
	Role     models.CommitteeRole
}

// CommitteeRoleRules is evaluated top to bottom; order matters.
var CommitteeRoleRules = []RoleRule{
	{Keywords: []string{"ceo", "chief executive", "president", "owner"}, Role: models.RoleEconomicBuyer},
	{Keywords: []string{"cfo", "chief financial", "finance"}, Role: models.RoleEconomicBuyer},
	{Keywords: []string{"cto", "cio", "technology", "chief information"}, Role: models.RoleTechnicalEvaluator},
	{Keywords: []string{"vp", "svp", "evp"}, Role: models.RoleDecisionMaker},
	{Keywords: []string{"director"}, Role: models.RoleInfluencer},
	{Keywords: []string{"manager"}, Requires: []string{"compliance", "environment"}, Role: models.RoleChampion},
	{Keywords: []string{"engineer", "specialist"}, Role: models.RoleEndUser},
	{Keywords: []string{"procurement", "purchasing"}, Role: models.RoleGatekeeper},
	{Keywords: []string{"assistant", "coordinator"}, Role: models.RoleGatekeeper},
}

// InfluenceRule assigns an influence level on the first title match.
type InfluenceRule struct {
	Keywords  []string
	Influence int
}

var InfluenceRules = []InfluenceRule{
	{Keywords: []string{"chief", "ceo", "cfo", "cto", "cio", "coo", "cmo", "president", "owner", "founder"}, Influence: 10},
	{Keywords: []string{"svp", "evp"}, Influence: 9},
	{Keywords: []string{"vp"}, Influence: 8},
	{Keywords: []string{"director"}, Influence: 7},
	{Keywords: []string{"senior manager", "head"}, Influence: 6},
	{Keywords: []string{"manager"}, Influence: 5},
	{Keywords: []string{"lead", "senior"}, Influence: 4},
	{Keywords: []string{"engineer", "specialist", "analyst"}, Influence: 3},
	{Keywords: []string{"assistant", "coordinator"}, Influence: 2},
}

// SeniorityInfluence is consulted when no title rule matches.
var SeniorityInfluence = map[string]int{
	"executive": 9,
	"vp":        8,
	"director":  7,
	"manager":   5,
	"senior":    4,
	"junior":    2,
	"entry":     2,
}

const defaultInfluence = 3

var titleAliases = strings.NewReplacer(
	"senior vice president", "svp",
	"executive vice president", "evp",
	"vice president", "vp",
)

type title struct {
	text  string
	words map[string]bool
}

func parseTitle(raw string) title {
	text := titleAliases.Replace(strings.ToLower(raw))
	words := map[string]bool{}
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = true
	}
	return title{text: text, words: words}
}

func (t title) matches(keyword string) bool {
	if len(keyword) <= wordKeywordMaxLen && !strings.Contains(keyword, " ") {
		return t.words[keyword]
	}
	return strings.Contains(t.text, keyword)
}

func (t title) matchesAny(keywords []string) bool {
	for _, k := range keywords {
		if t.matches(k) {
			return true
		}
	}
	return false
}

// InferCommitteeRole returns the first matching rule's role, then the recorded
// role, then influencer.
func InferCommitteeRole(rawTitle string, recorded models.CommitteeRole) models.CommitteeRole {
	t := parseTitle(rawTitle)
	for _, rule := range CommitteeRoleRules {
		if !t.matchesAny(rule.Keywords) {
			continue
		}
		if len(rule.Requires) > 0 && !t.matchesAny(rule.Requires) {
			continue
		}
		return rule.Role
	}
	if recorded != "" {
		return recorded
	}
	return models.RoleInfluencer
}

// InferInfluence returns an influence level in [1,10].
func InferInfluence(rawTitle, seniority string) int {
	t := parseTitle(rawTitle)
	level := defaultInfluence
	matched := false
	for _, rule := range InfluenceRules {
		if t.matchesAny(rule.Keywords) {
			level, matched = rule.Influence, true
			break
		}
	}
	if !matched {
		if v, ok := SeniorityInfluence[strings.ToLower(strings.TrimSpace(seniority))]; ok {
			level = v
		}
	}
	if level < 1 {
		return 1
	}
	if level > 10 {
		return 10
	}
	return level
}
