// internal/dispatch/dispatcher.go
package dispatch

import (
	"context"
	"sort"

	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/common/metrics"
	"sales-hunter-workers/internal/models"
)

// Sink delivers a batch of generated alerts to one destination.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, tenantID string, alerts []models.GeneratedAlert) error
}

// Selector is implemented by sinks that only take part of a batch. The dispatcher
// hands such a sink its selection and skips it when nothing is selected.
type Selector interface {
	Select(alerts []models.GeneratedAlert) []models.GeneratedAlert
}

// Result reports per-sink delivery. Delivered counts the alerts each sink accepted;
// Failed maps a sink name to its error message.
type Result struct {
	Delivered map[string]int    `json:"delivered"`
	Failed    map[string]string `json:"failed,omitempty"`
}

// OK is true when every sink accepted the batch.
func (r *Result) OK() bool {
	return r != nil && len(r.Failed) == 0
}

// Dispatcher fans alerts out to its sinks. A failing sink never blocks the others.
type Dispatcher struct {
	sinks  []Sink
	logger logger.Logger
}

func NewDispatcher(log logger.Logger, sinks ...Sink) *Dispatcher {
	active := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	return &Dispatcher{sinks: active, logger: log.WithFields(map[string]interface{}{"component": "dispatch"})}
}

// Sinks returns the configured sink names in sorted order.
func (d *Dispatcher) Sinks() []string {
	names := make([]string, 0, len(d.sinks))
	for _, s := range d.sinks {
		names = append(names, s.Name())
	}
	sort.Strings(names)
	return names
}

// Dispatch delivers alerts to every sink sequentially and never returns an error;
// sink failures are logged, counted and reported in the Result.
func (d *Dispatcher) Dispatch(ctx context.Context, tenantID string, alerts []models.GeneratedAlert) *Result {
	result := &Result{Delivered: map[string]int{}, Failed: map[string]string{}}
	if len(alerts) == 0 {
		return result
	}

	for _, sink := range d.sinks {
		name := sink.Name()
		batch := alerts
		if sel, ok := sink.(Selector); ok {
			batch = sel.Select(alerts)
		}
		if len(batch) == 0 {
			continue
		}

		if err := sink.Deliver(ctx, tenantID, batch); err != nil {
			d.logger.Error("alert delivery failed", map[string]interface{}{
				"sink":     name,
				"tenantId": tenantID,
				"alerts":   len(batch),
				"error":    err.Error(),
			})
			metrics.AlertsDispatched.WithLabelValues(name, "failed").Add(float64(len(batch)))
			result.Failed[name] = err.Error()
			continue
		}
		metrics.AlertsDispatched.WithLabelValues(name, "delivered").Add(float64(len(batch)))
		result.Delivered[name] = len(batch)
	}

	d.logger.Info("alerts dispatched", map[string]interface{}{
		"tenantId": tenantID,
		"alerts":   len(alerts),
		"sinks":    len(d.sinks),
		"failed":   len(result.Failed),
	})
	return result
}
