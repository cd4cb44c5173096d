// internal/workers/intelligence/map-relationships/mapper.go
package maprelationships

import (
	"fmt"
	"sort"

	"sales-hunter-workers/internal/models"
)

// DefaultMaxEdges caps the inferred relationship list.
const DefaultMaxEdges = 20

const (
	HighInfluence     = 7
	MinMappedContacts = 3
	maxEngageRecs     = 3
	peerEdgeStrength  = 5
	reportsToMinGap   = 2
)

const (
	gapEconomicBuyer  = "No economic buyer identified"
	gapChampion       = "No champion identified"
	gapTechnical      = "No technical evaluator identified"
	gapEndUser        = "No end user identified"
	gapTooFewContacts = "Too few contacts mapped (fewer than 3)"
	recommendChampion = "Find a champion: identify a compliance or environmental manager who can sponsor the purchase"
)

// AnalyzeContacts infers roles, influence, relationships and coverage for a contact list.
func AnalyzeContacts(contacts []models.Contact) RelationshipAnalysis {
	return analyzeContacts(contacts, DefaultMaxEdges)
}

func analyzeContacts(contacts []models.Contact, maxEdges int) RelationshipAnalysis {
	analyzed := make([]AnalyzedContact, 0, len(contacts))
	for _, c := range contacts {
		analyzed = append(analyzed, AnalyzedContact{
			Contact:                c,
			SuggestedCommitteeRole: InferCommitteeRole(c.Title, c.Role),
			Influence:              InferInfluence(c.Title, c.Seniority),
		})
	}

	gaps := coverageGaps(analyzed)
	return RelationshipAnalysis{
		Contacts:        analyzed,
		Relationships:   InferRelationships(analyzed, maxEdges),
		CoverageGaps:    gaps,
		Recommendations: recommendations(analyzed, gaps),
	}
}

// byInfluence returns a copy sorted by influence, highest first, keeping input order on ties.
func byInfluence(contacts []AnalyzedContact) []AnalyzedContact {
	sorted := append([]AnalyzedContact(nil), contacts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Influence > sorted[j].Influence
	})
	return sorted
}

// InferRelationships walks every pair of the influence-sorted list in order.
// A gap of two or more levels yields a reports-to edge from the lower to the
// higher contact; equal influence yields a peers-with edge.
func InferRelationships(contacts []AnalyzedContact, maxEdges int) []Edge {
	if maxEdges <= 0 {
		maxEdges = DefaultMaxEdges
	}
	sorted := byInfluence(contacts)
	edges := []Edge{}
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			hi, lo := sorted[i], sorted[j]
			switch gap := hi.Influence - lo.Influence; {
			case gap >= reportsToMinGap:
				strength := hi.Influence
				if strength > 10 {
					strength = 10
				}
				edges = append(edges, Edge{FromContactID: lo.ID, ToContactID: hi.ID, Type: models.EdgeReportsTo, Strength: strength})
			case gap == 0:
				edges = append(edges, Edge{FromContactID: hi.ID, ToContactID: lo.ID, Type: models.EdgePeersWith, Strength: peerEdgeStrength})
			}
			if len(edges) >= maxEdges {
				return edges
			}
		}
	}
	return edges
}

func coverageGaps(contacts []AnalyzedContact) []string {
	roles := map[models.CommitteeRole]bool{}
	for _, c := range contacts {
		roles[c.SuggestedCommitteeRole] = true
	}

	gaps := []string{}
	if !roles[models.RoleEconomicBuyer] {
		gaps = append(gaps, gapEconomicBuyer)
	}
	if !roles[models.RoleChampion] {
		gaps = append(gaps, gapChampion)
	}
	if !roles[models.RoleTechnicalEvaluator] {
		gaps = append(gaps, gapTechnical)
	}
	if !roles[models.RoleEndUser] {
		gaps = append(gaps, gapEndUser)
	}
	if len(contacts) < MinMappedContacts {
		gaps = append(gaps, gapTooFewContacts)
	}
	return gaps
}

func recommendations(contacts []AnalyzedContact, gaps []string) []string {
	recs := []string{}
	n := 0
	for _, c := range byInfluence(contacts) {
		if n == maxEngageRecs {
			break
		}
		if c.Influence < HighInfluence || c.Engaged() {
			continue
		}
		recs = append(recs, fmt.Sprintf("Engage %s (%s): influence %d/10 and not yet contacted", c.Name, c.Title, c.Influence))
		n++
	}

	if len(gaps) > 0 {
		recs = append(recs, fmt.Sprintf("Close %d coverage gap(s) in the buying committee", len(gaps)))
	}

	hasChampion := false
	for _, c := range contacts {
		if c.SuggestedCommitteeRole == models.RoleChampion {
			hasChampion = true
			break
		}
	}
	if !hasChampion {
		recs = append(recs, recommendChampion)
	}
	return recs
}
