// internal/dispatch/elasticsearch.go
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"sales-hunter-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

const SinkElasticsearch = "elasticsearch"

// ElasticsearchSink indexes each alert under its own ID, so re-evaluating
// the same data overwrites rather than duplicates.
type ElasticsearchSink struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchSink(client *elasticsearch.Client, index string) *ElasticsearchSink {
	return &ElasticsearchSink{client: client, index: index}
}

func (s *ElasticsearchSink) Name() string { return SinkElasticsearch }

func (s *ElasticsearchSink) Deliver(ctx context.Context, tenantID string, alerts []models.GeneratedAlert) error {
	for _, alert := range alerts {
		body, err := json.Marshal(alert)
		if err != nil {
			return fmt.Errorf("marshal alert %s: %w", alert.ID, err)
		}

		res, err := s.client.Index(
			s.index,
			bytes.NewReader(body),
			s.client.Index.WithDocumentID(alert.ID),
			s.client.Index.WithContext(ctx),
		)
		if err != nil {
			return fmt.Errorf("index alert %s: %w", alert.ID, err)
		}
		if res.IsError() {
			msg, _ := io.ReadAll(res.Body)
			res.Body.Close()
			return fmt.Errorf("index alert %s: %s: %s", alert.ID, res.Status(), bytes.TrimSpace(msg))
		}
		res.Body.Close()
	}
	return nil
}
