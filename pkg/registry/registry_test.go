// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	reg, err := Builtin()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"detect-buying-signals",
		"assess-customer-health",
		"analyze-win-loss",
		"analyze-deal-portfolio",
		"map-relationships",
		"evaluate-alert-rules",
		"research-prospect",
	}, reg.TaskTypes())

	_, ok := reg.Find("evaluate-alert-rules")
	assert.True(t, ok)
	_, ok = reg.Find("unknown-task")
	assert.False(t, ok)
}

func TestActivity_ValidateInput_AlertRules(t *testing.T) {
	activity, ok := MustBuiltin().Find("evaluate-alert-rules")
	require.True(t, ok)

	tests := []struct {
		name    string
		doc     map[string]interface{}
		wantErr string
	}{
		{
			name: "valid rules",
			doc: map[string]interface{}{
				"tenantId": "tenant-1",
				"rules": []interface{}{
					map[string]interface{}{
						"id":       "r-1",
						"category": "compliance-violation",
						"severity": "critical",
						"conditions": []interface{}{
							map[string]interface{}{"condition": "score-threshold", "parameters": map[string]interface{}{"minScore": 80}},
						},
					},
				},
			},
		},
		{
			name:    "no rules loads from the store",
			doc:     map[string]interface{}{"tenantId": "tenant-1"},
			wantErr: "",
		},
		{
			name:    "missing tenant",
			doc:     map[string]interface{}{},
			wantErr: "tenantId",
		},
		{
			name: "unknown severity",
			doc: map[string]interface{}{
				"tenantId": "tenant-1",
				"rules": []interface{}{
					map[string]interface{}{"id": "r-1", "category": "buying-signal", "severity": "urgent", "conditions": []interface{}{}},
				},
			},
			wantErr: "severity",
		},
		{
			name: "condition without name",
			doc: map[string]interface{}{
				"tenantId": "tenant-1",
				"rules": []interface{}{
					map[string]interface{}{"id": "r-1", "category": "buying-signal", "severity": "low",
						"conditions": []interface{}{map[string]interface{}{"parameters": map[string]interface{}{}}}},
				},
			},
			wantErr: "condition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := activity.ValidateInput(tt.doc)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestActivity_ValidateInput_Struct(t *testing.T) {
	activity, _ := MustBuiltin().Find("analyze-win-loss")

	type deal struct {
		Outcome string `json:"outcome"`
	}
	type input struct {
		Deal deal `json:"deal"`
	}

	assert.NoError(t, activity.ValidateInput(input{Deal: deal{Outcome: "won"}}))
	assert.Error(t, activity.ValidateInput(input{Deal: deal{Outcome: "pending"}}))
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2.0.0","activities":[{"taskType":"custom"}]}`), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", reg.Version)
	a, ok := reg.Find("custom")
	require.True(t, ok)
	assert.NoError(t, a.ValidateInput(map[string]interface{}{"anything": true}))

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
