// internal/workers/intelligence/assess-customer-health/models.go
package assesscustomerhealth

import "sales-hunter-workers/internal/models"

type Input struct {
	TenantID   string          `json:"tenantId,omitempty"`
	CustomerID string          `json:"customerId,omitempty"`
	Engagement EngagementFacts `json:"engagement"`
	Contract   ContractFacts   `json:"contract"`
	Usage      UsageFacts      `json:"usage"`
}

type EngagementFacts struct {
	LastContactDays    int     `json:"lastContactDays"`
	MeetingsLast90Days int     `json:"meetingsLast90Days"`
	EmailResponseRate  float64 `json:"emailResponseRate"`
	SupportTickets     int     `json:"supportTickets"`
	FeatureAdoption    float64 `json:"featureAdoption"`
}

type ContractFacts struct {
	MonthsRemaining     int     `json:"monthsRemaining"`
	ContractValue       float64 `json:"contractValue"`
	ExpansionDiscussed  bool    `json:"expansionDiscussed"`
	CompetitorMentioned bool    `json:"competitorMentioned"`
}

type UsageFacts struct {
	ActiveUsers     int               `json:"activeUsers"`
	TotalUsers      int               `json:"totalUsers"`
	UsageTrend      models.UsageTrend `json:"usageTrend"`
	KeyFeatureUsage float64           `json:"keyFeatureUsage"`
}

// Output is the health assessment. HealthStatus is always DetermineHealthStatus
// of the three derived numbers it carries.
type Output struct {
	CustomerID             string              `json:"customerId,omitempty"`
	HealthScore            int                 `json:"healthScore"`
	HealthStatus           models.HealthStatus `json:"healthStatus"`
	EngagementScore        int                 `json:"engagementScore"`
	AdoptionScore          int                 `json:"adoptionScore"`
	SentimentScore         int                 `json:"sentimentScore"`
	ExpansionProbability   int                 `json:"expansionProbability"`
	ChurnRisk              int                 `json:"churnRisk"`
	Factors                []Factor            `json:"factors"`
	ExpansionOpportunities []Opportunity       `json:"expansionOpportunities"`
}

type Factor struct {
	Name   string       `json:"name"`
	Score  int          `json:"score"`
	Weight float64      `json:"weight"`
	Trend  models.Trend `json:"trend"`
	Detail string       `json:"detail"`
}

type Opportunity struct {
	Type           string `json:"type"`
	Description    string `json:"description"`
	EstimatedValue int    `json:"estimatedValue"`
	Probability    int    `json:"probability"`
}
