// internal/dispatch/notification.go
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"sales-hunter-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

const (
	SinkEmail = "email"
	SinkSMS   = "sms"
)

// SESService is the subset of *ses.Client used for alert digests.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SNSService is the subset of *sns.Client used for critical alert pages.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// EmailSink sends one digest per batch listing the high and critical alerts.
type EmailSink struct {
	client     SESService
	from       string
	recipients []string
}

func NewEmailSink(client SESService, from string, recipients []string) *EmailSink {
	return &EmailSink{client: client, from: from, recipients: recipients}
}

func (s *EmailSink) Name() string { return SinkEmail }

// Select keeps the critical and high alerts.
func (s *EmailSink) Select(alerts []models.GeneratedAlert) []models.GeneratedAlert {
	return filterSeverity(alerts, models.SeverityCritical, models.SeverityHigh)
}

func (s *EmailSink) Deliver(ctx context.Context, tenantID string, alerts []models.GeneratedAlert) error {
	urgent := s.Select(alerts)
	if len(urgent) == 0 {
		return nil
	}

	subject := fmt.Sprintf("[%s] %d urgent intelligence alert(s)", tenantID, len(urgent))
	body := digest(urgent)

	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: s.recipients},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(s.from),
	})
	if err != nil {
		return fmt.Errorf("send alert digest: %w", err)
	}
	return nil
}

// SMSSink publishes every critical alert to an SNS topic.
type SMSSink struct {
	client   SNSService
	topicARN string
}

func NewSMSSink(client SNSService, topicARN string) *SMSSink {
	return &SMSSink{client: client, topicARN: topicARN}
}

func (s *SMSSink) Name() string { return SinkSMS }

func (s *SMSSink) Select(alerts []models.GeneratedAlert) []models.GeneratedAlert {
	return filterSeverity(alerts, models.SeverityCritical)
}

func (s *SMSSink) Deliver(ctx context.Context, tenantID string, alerts []models.GeneratedAlert) error {
	for _, alert := range s.Select(alerts) {
		_, err := s.client.Publish(ctx, &sns.PublishInput{
			TopicArn: aws.String(s.topicARN),
			Message:  aws.String(fmt.Sprintf("[%s] %s (priority %d)", tenantID, alert.Title, alert.Priority)),
			Subject:  aws.String("Critical intelligence alert"),
		})
		if err != nil {
			return fmt.Errorf("publish alert %s: %w", alert.ID, err)
		}
	}
	return nil
}

func filterSeverity(alerts []models.GeneratedAlert, severities ...models.AlertSeverity) []models.GeneratedAlert {
	var out []models.GeneratedAlert
	for _, alert := range alerts {
		for _, sev := range severities {
			if alert.Severity == sev {
				out = append(out, alert)
				break
			}
		}
	}
	return out
}

func digest(alerts []models.GeneratedAlert) string {
	var b strings.Builder
	for _, alert := range alerts {
		fmt.Fprintf(&b, "[%s] %s (priority %d)\n", strings.ToUpper(string(alert.Severity)), alert.Title, alert.Priority)
		if alert.Description != "" {
			fmt.Fprintf(&b, "  %s\n", alert.Description)
		}
		for _, item := range alert.ActionItems {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}
	return b.String()
}
