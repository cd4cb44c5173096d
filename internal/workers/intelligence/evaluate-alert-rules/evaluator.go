// internal/workers/intelligence/evaluate-alert-rules/evaluator.go
package evaluatealertrules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/models"
	"sales-hunter-workers/internal/scoring"

	"github.com/google/uuid"
)

var (
	ErrProspectLookupFailed = errors.New("PROSPECT_LOOKUP_FAILED")
	ErrSignalQueryFailed    = errors.New("SIGNAL_QUERY_FAILED")
)

// alertNamespace seeds the name-based alert IDs, so re-evaluating the same
// data yields the same IDs.
var alertNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("sales-hunter/intelligence-alerts"))

// ProspectReader is the slice of the prospecting repository the evaluator reads.
type ProspectReader interface {
	SelectProspectsByTenantID(ctx context.Context, tenantID string, q models.ProspectQuery) ([]models.Prospect, error)
	SelectSignalsByProspectID(ctx context.Context, tenantID, prospectID string) ([]models.Signal, error)
}

type Option func(*Evaluator)

// WithClock replaces time.Now, which anchors the recency windows and createdAt.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

// Evaluator matches alert rule conditions against a tenant's prospects.
type Evaluator struct {
	repo   ProspectReader
	limit  int
	logger logger.Logger
	now    func() time.Time
}

func NewEvaluator(repo ProspectReader, limit int, log logger.Logger, opts ...Option) *Evaluator {
	if limit <= 0 {
		limit = 100
	}
	e := &Evaluator{repo: repo, limit: limit, logger: log, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// tenantScan memoizes the prospect list and per-prospect signals for one evaluation.
type tenantScan struct {
	tenantID  string
	prospects []models.Prospect
	loaded    bool
	signals   map[string][]models.Signal
}

// Evaluate runs every condition of every rule and returns the alerts in rule order.
// Unknown conditions are logged and skipped.
func (e *Evaluator) Evaluate(ctx context.Context, tenantID string, rules []models.AlertRule) ([]models.GeneratedAlert, error) {
	now := e.now().UTC()
	scan := &tenantScan{tenantID: tenantID, signals: map[string][]models.Signal{}}
	alerts := []models.GeneratedAlert{}

	for _, rule := range rules {
		for _, cond := range rule.Conditions {
			var (
				matched []models.GeneratedAlert
				err     error
			)
			switch cond.Condition {
			case models.ConditionNewViolation:
				matched, err = e.newViolations(ctx, scan, rule, cond, now)
			case models.ConditionScoreThreshold:
				matched, err = e.scoreThreshold(ctx, tenantID, rule, cond, now)
			case models.ConditionNewSignal:
				matched, err = e.newSignals(ctx, scan, rule, cond, now)
			default:
				e.logger.Warn("unknown alert condition skipped", map[string]interface{}{
					"ruleId":    rule.ID,
					"condition": cond.Condition,
				})
				continue
			}
			if err != nil {
				return nil, err
			}
			alerts = append(alerts, matched...)
		}
	}
	return alerts, nil
}

func (e *Evaluator) newViolations(ctx context.Context, scan *tenantScan, rule models.AlertRule, cond models.RuleCondition, now time.Time) ([]models.GeneratedAlert, error) {
	prospects, err := e.prospects(ctx, scan)
	if err != nil {
		return nil, err
	}

	var out []models.GeneratedAlert
	for i := range prospects {
		p := &prospects[i]
		signals, err := e.signals(ctx, scan, p.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range signals {
			if s.SignalType != models.SignalViolation || !scoring.WithinDays(s.DetectedAt, ViolationWindow, now) {
				continue
			}
			out = append(out, e.alert(scan.tenantID, rule, cond, p, s.ID, now,
				fmt.Sprintf("New violation at %s: %s", p.CompanyName, s.Title),
				describeSignal(s),
				map[string]interface{}{"signalId": s.ID},
			))
		}
	}
	return out, nil
}

func (e *Evaluator) scoreThreshold(ctx context.Context, tenantID string, rule models.AlertRule, cond models.RuleCondition, now time.Time) ([]models.GeneratedAlert, error) {
	minScore := intParam(cond.Parameters, "minScore", DefaultMinScore)
	prospects, err := e.repo.SelectProspectsByTenantID(ctx, tenantID, models.ProspectQuery{Limit: e.limit, MinFitScore: &minScore})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProspectLookupFailed, err)
	}

	var out []models.GeneratedAlert
	for i := range prospects {
		p := &prospects[i]
		if p.FitScore == nil || *p.FitScore < minScore {
			continue
		}
		out = append(out, e.alert(tenantID, rule, cond, p, "fit-score", now,
			fmt.Sprintf("High-fit prospect: %s", p.CompanyName),
			fmt.Sprintf("Fit score %d meets the threshold of %d", *p.FitScore, minScore),
			map[string]interface{}{"fitScore": *p.FitScore, "minScore": minScore},
		))
	}
	return out, nil
}

func (e *Evaluator) newSignals(ctx context.Context, scan *tenantScan, rule models.AlertRule, cond models.RuleCondition, now time.Time) ([]models.GeneratedAlert, error) {
	filter := models.SignalType(stringParam(cond.Parameters, "signalType"))
	prospects, err := e.prospects(ctx, scan)
	if err != nil {
		return nil, err
	}

	var out []models.GeneratedAlert
	for i := range prospects {
		p := &prospects[i]
		signals, err := e.signals(ctx, scan, p.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range signals {
			if filter != "" && s.SignalType != filter {
				continue
			}
			if !scoring.WithinDays(s.DetectedAt, NewSignalWindow, now) {
				continue
			}
			out = append(out, e.alert(scan.tenantID, rule, cond, p, s.ID, now,
				fmt.Sprintf("New %s signal at %s: %s", s.SignalType, p.CompanyName, s.Title),
				describeSignal(s),
				map[string]interface{}{"signalId": s.ID, "signalType": s.SignalType},
			))
		}
	}
	return out, nil
}

func (e *Evaluator) prospects(ctx context.Context, scan *tenantScan) ([]models.Prospect, error) {
	if scan.loaded {
		return scan.prospects, nil
	}
	prospects, err := e.repo.SelectProspectsByTenantID(ctx, scan.tenantID, models.ProspectQuery{Limit: e.limit})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProspectLookupFailed, err)
	}
	scan.prospects, scan.loaded = prospects, true
	return prospects, nil
}

func (e *Evaluator) signals(ctx context.Context, scan *tenantScan, prospectID string) ([]models.Signal, error) {
	if s, ok := scan.signals[prospectID]; ok {
		return s, nil
	}
	signals, err := e.repo.SelectSignalsByProspectID(ctx, scan.tenantID, prospectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignalQueryFailed, err)
	}
	scan.signals[prospectID] = signals
	return signals, nil
}

func (e *Evaluator) alert(tenantID string, rule models.AlertRule, cond models.RuleCondition, p *models.Prospect, subject string, now time.Time, title, description string, extra map[string]interface{}) models.GeneratedAlert {
	metadata := map[string]interface{}{
		"ruleId":    rule.ID,
		"condition": cond.Condition,
	}
	for k, v := range extra {
		metadata[k] = v
	}

	name := strings.Join([]string{tenantID, rule.ID, string(cond.Condition), p.ID, subject}, "|")
	return models.GeneratedAlert{
		ID:          uuid.NewSHA1(alertNamespace, []byte(name)).String(),
		RuleID:      rule.ID,
		TenantID:    tenantID,
		ProspectID:  p.ID,
		Title:       title,
		Description: description,
		Category:    rule.Category,
		Severity:    rule.Severity,
		Priority:    CalculateAlertPriority(rule.Severity, rule.Category),
		ActionItems: ActionItemsFor(rule.Category),
		Metadata:    metadata,
		CreatedAt:   now,
	}
}

func describeSignal(s models.Signal) string {
	text := s.Description
	if text == "" {
		text = s.Title
	}
	return fmt.Sprintf("%s (detected %s)", text, s.DetectedAt.UTC().Format("2006-01-02"))
}

func intParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}

func stringParam(params map[string]interface{}, key string) string {
	s, _ := params[key].(string)
	return s
}
