// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app:
  name: sales-hunter-workers
  version: 1.4.0
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: sales_hunter
    user: intel
    password: ${TEST_PG_PASSWORD}
  redis:
    address: localhost:6379
workers:
  detect-buying-signals:
    enabled: true
    max_jobs_active: 8
  evaluate-alert-rules:
    enabled: false
alerts:
  kafka:
    enabled: true
    brokers: ["kafka-1:9092", "kafka-2:9092"]
scheduler:
  enabled: true
  cron: "0 */10 * * * *"
  tenants: ["tenant-a", "tenant-b"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Alerts.Kafka.Brokers)
	assert.Equal(t, "intelligence.alerts", cfg.Alerts.Kafka.Topic)
	assert.Equal(t, "intelligence-alerts", cfg.Alerts.ElasticsearchIndex)
	assert.Equal(t, []string{"tenant-a", "tenant-b"}, cfg.Scheduler.Tenants)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())

	detect := GetWorkerConfig(cfg, "detect-buying-signals")
	assert.True(t, detect.Enabled)
	assert.Equal(t, 8, detect.MaxJobsActive)
	assert.Equal(t, 30000, detect.Timeout)
	assert.Equal(t, 3, detect.MaxRetries)

	assert.False(t, IsWorkerEnabled(cfg, "evaluate-alert-rules"))
	assert.True(t, IsWorkerEnabled(cfg, "map-relationships"))
	assert.True(t, GetWorkerConfig(cfg, "map-relationships").Enabled)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "database:\n  postgres:\n    host: h\n    database: d\n    user: u\n  redis:\n    address: r:6379\n",
			wantErr: "camunda.broker_address is required",
		},
		{
			name:    "missing redis",
			body:    "camunda:\n  broker_address: z:26500\ndatabase:\n  postgres:\n    host: h\n    database: d\n    user: u\n",
			wantErr: "database.redis.address is required",
		},
		{
			name: "kafka enabled without brokers",
			body: "camunda:\n  broker_address: z:26500\ndatabase:\n  postgres:\n    host: h\n    database: d\n    user: u\n  redis:\n    address: r:6379\n" +
				"alerts:\n  kafka:\n    enabled: true\n",
			wantErr: "alerts.kafka.brokers is required",
		},
		{
			name: "scheduler without tenants",
			body: "camunda:\n  broker_address: z:26500\ndatabase:\n  postgres:\n    host: h\n    database: d\n    user: u\n  redis:\n    address: r:6379\n" +
				"scheduler:\n  enabled: true\n",
			wantErr: "scheduler.tenants is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestElasticsearchConfig_GetAddresses(t *testing.T) {
	assert.Equal(t, []string{"http://a:9200"}, ElasticsearchConfig{URL: "http://a:9200"}.GetAddresses())
	assert.Equal(t, []string{"http://b:9200"}, ElasticsearchConfig{Addresses: []string{"http://b:9200"}, URL: "http://a:9200"}.GetAddresses())
	assert.Nil(t, ElasticsearchConfig{}.GetAddresses())
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
