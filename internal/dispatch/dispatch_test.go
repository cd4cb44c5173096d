// internal/dispatch/dispatch_test.go
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"sales-hunter-workers/internal/common/logger"
	"sales-hunter-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Fakes
// ==========================

type fakeSink struct {
	name string
	err  error
	got  []models.GeneratedAlert
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Deliver(_ context.Context, _ string, alerts []models.GeneratedAlert) error {
	f.got = append(f.got, alerts...)
	return f.err
}

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func sampleAlerts() []models.GeneratedAlert {
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return []models.GeneratedAlert{
		{
			ID: "a-1", RuleID: "r-1", TenantID: "tenant-1", ProspectID: "p-1",
			Title: "New violation at Acme Roofing", Description: "OSHA citation filed",
			Category: models.CategoryComplianceViolation, Severity: models.SeverityCritical, Priority: 100,
			ActionItems: []string{"Call the site manager"}, CreatedAt: created,
		},
		{
			ID: "a-2", RuleID: "r-2", TenantID: "tenant-1", ProspectID: "p-2",
			Title: "Fit score above 80", Category: models.CategoryBuyingSignal, Severity: models.SeverityHigh, Priority: 88,
			CreatedAt: created,
		},
		{
			ID: "a-3", RuleID: "r-3", TenantID: "tenant-1", ProspectID: "p-3",
			Title: "New hiring signal", Category: models.CategoryBuyingSignal, Severity: models.SeverityLow, Priority: 30,
			CreatedAt: created,
		},
	}
}

// ==========================
// Dispatcher
// ==========================

func TestDispatcher_IsolatesSinkFailures(t *testing.T) {
	ok := &fakeSink{name: "ok"}
	broken := &fakeSink{name: "broken", err: errors.New("connection refused")}
	d := NewDispatcher(logger.NewTestLogger(t), broken, nil, ok)

	result := d.Dispatch(context.Background(), "tenant-1", sampleAlerts())

	assert.Equal(t, map[string]int{"ok": 3}, result.Delivered)
	assert.Equal(t, map[string]string{"broken": "connection refused"}, result.Failed)
	assert.False(t, result.OK())
	assert.Len(t, ok.got, 3)
	assert.Equal(t, []string{"broken", "ok"}, d.Sinks())
}

func TestDispatcher_EmptyBatchSkipsSinks(t *testing.T) {
	sink := &fakeSink{name: "ok"}
	result := NewDispatcher(logger.NewNoOpLogger(), sink).Dispatch(context.Background(), "tenant-1", nil)

	assert.True(t, result.OK())
	assert.Empty(t, result.Delivered)
	assert.Empty(t, sink.got)
}

func TestDispatcher_CountsOnlySelectedAlerts(t *testing.T) {
	var emailed, paged int
	email := NewEmailSink(&MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			emailed++
			return &ses.SendEmailOutput{MessageId: aws.String("m-1")}, nil
		},
	}, "alerts@example.com", []string{"rep@example.com"})
	sms := NewSMSSink(&MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			paged++
			return &sns.PublishOutput{MessageId: aws.String("m-2")}, nil
		},
	}, "arn:aws:sns:us-east-1:123:alerts")
	all := &fakeSink{name: "all"}

	d := NewDispatcher(logger.NewTestLogger(t), email, sms, all)
	result := d.Dispatch(context.Background(), "tenant-1", sampleAlerts())

	assert.Equal(t, map[string]int{SinkEmail: 2, SinkSMS: 1, "all": 3}, result.Delivered)
	assert.True(t, result.OK())
	assert.Equal(t, 1, emailed)
	assert.Equal(t, 1, paged)
}

func TestDispatcher_SkipsSinkWithNothingSelected(t *testing.T) {
	sms := NewSMSSink(&MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			t.Fatal("no page expected")
			return nil, nil
		},
	}, "arn")

	result := NewDispatcher(logger.NewNoOpLogger(), sms).Dispatch(context.Background(), "tenant-1", sampleAlerts()[1:])

	assert.True(t, result.OK())
	assert.NotContains(t, result.Delivered, SinkSMS)
}

// ==========================
// Elasticsearch
// ==========================

func newESClient(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticsearchSink_IndexesByAlertID(t *testing.T) {
	var mu sync.Mutex
	paths := []string{}
	var first models.GeneratedAlert

	client := newESClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		if len(paths) == 1 {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &first)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	sink := NewElasticsearchSink(client, "intelligence-alerts")
	require.NoError(t, sink.Deliver(context.Background(), "tenant-1", sampleAlerts()))

	assert.Equal(t, []string{
		"PUT /intelligence-alerts/_doc/a-1",
		"PUT /intelligence-alerts/_doc/a-2",
		"PUT /intelligence-alerts/_doc/a-3",
	}, paths)
	assert.Equal(t, "r-1", first.RuleID)
	assert.Equal(t, 100, first.Priority)
}

func TestElasticsearchSink_ErrorResponse(t *testing.T) {
	client := newESClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"mapper_parsing_exception"}`))
	})

	err := NewElasticsearchSink(client, "intelligence-alerts").Deliver(context.Background(), "tenant-1", sampleAlerts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a-1")
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
}

// ==========================
// Kafka
// ==========================

func TestKafkaSink_KeysByTenant(t *testing.T) {
	writer := &fakeWriter{}
	sink := NewKafkaSink(writer)

	require.NoError(t, sink.Deliver(context.Background(), "tenant-1", sampleAlerts()))
	require.Len(t, writer.msgs, 3)

	for _, msg := range writer.msgs {
		assert.Equal(t, "tenant-1", string(msg.Key))
	}
	assert.Equal(t, kafka.Header{Key: "alert-id", Value: []byte("a-2")}, writer.msgs[1].Headers[0])

	var decoded models.GeneratedAlert
	require.NoError(t, json.Unmarshal(writer.msgs[0].Value, &decoded))
	assert.Equal(t, "a-1", decoded.ID)

	require.NoError(t, sink.Close())
	assert.True(t, writer.closed)
}

func TestKafkaSink_WriteError(t *testing.T) {
	sink := NewKafkaSink(&fakeWriter{err: errors.New("leader not available")})
	err := sink.Deliver(context.Background(), "tenant-1", sampleAlerts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"kafka-1:9092"}, "intelligence.alerts")
	assert.Equal(t, "intelligence.alerts", w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
}

// ==========================
// Email / SMS
// ==========================

func TestEmailSink_SendsDigestOfUrgentAlerts(t *testing.T) {
	var sent *ses.SendEmailInput
	client := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			sent = params
			return &ses.SendEmailOutput{MessageId: aws.String("m-1")}, nil
		},
	}

	sink := NewEmailSink(client, "alerts@example.com", []string{"rep@example.com"})
	require.NoError(t, sink.Deliver(context.Background(), "tenant-1", sampleAlerts()))
	require.NotNil(t, sent)

	assert.Equal(t, "alerts@example.com", aws.ToString(sent.Source))
	assert.Equal(t, []string{"rep@example.com"}, sent.Destination.ToAddresses)
	assert.Equal(t, "[tenant-1] 2 urgent intelligence alert(s)", aws.ToString(sent.Message.Subject.Data))

	body := aws.ToString(sent.Message.Body.Text.Data)
	assert.Contains(t, body, "[CRITICAL] New violation at Acme Roofing (priority 100)")
	assert.Contains(t, body, "  - Call the site manager")
	assert.NotContains(t, body, "New hiring signal")
}

func TestEmailSink_NothingUrgent(t *testing.T) {
	client := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			t.Fatal("no email expected")
			return nil, nil
		},
	}
	low := sampleAlerts()[2:]
	require.NoError(t, NewEmailSink(client, "a@example.com", []string{"b@example.com"}).Deliver(context.Background(), "tenant-1", low))
}

func TestSMSSink_PublishesCriticalOnly(t *testing.T) {
	var messages []string
	client := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			assert.Equal(t, "arn:aws:sns:us-east-1:123:alerts", aws.ToString(params.TopicArn))
			messages = append(messages, aws.ToString(params.Message))
			return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
		},
	}

	sink := NewSMSSink(client, "arn:aws:sns:us-east-1:123:alerts")
	require.NoError(t, sink.Deliver(context.Background(), "tenant-1", sampleAlerts()))
	assert.Equal(t, []string{"[tenant-1] New violation at Acme Roofing (priority 100)"}, messages)
}

func TestSMSSink_PublishError(t *testing.T) {
	client := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	err := NewSMSSink(client, "arn").Deliver(context.Background(), "tenant-1", sampleAlerts())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "a-1"))
}
