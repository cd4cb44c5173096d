package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComposite(t *testing.T) {
	tests := []struct {
		name       string
		components []ComponentSignal
		want       int
	}{
		{
			name: "weighted average",
			components: []ComponentSignal{
				{Name: "a", Score: 80, Weight: 1},
				{Name: "b", Score: 40, Weight: 1},
			},
			want: 60,
		},
		{
			name: "uneven weights",
			components: []ComponentSignal{
				{Name: "violation", Score: 90, Weight: 25},
				{Name: "permit", Score: 50, Weight: 15},
			},
			want: 75, // (2250+750)/40
		},
		{
			name: "rounds half up",
			components: []ComponentSignal{
				{Name: "a", Score: 61, Weight: 1},
				{Name: "b", Score: 60, Weight: 1},
			},
			want: 61,
		},
		{name: "empty", components: nil, want: 0},
		{
			name:       "zero weights",
			components: []ComponentSignal{{Name: "a", Score: 90, Weight: 0}},
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Composite(tt.components))
		})
	}
}

func TestWeightedSum(t *testing.T) {
	weights := map[string]float64{"engagement": 0.25, "adoption": 0.25, "sentiment": 0.2, "contract": 0.15, "usage": 0.15}
	scores := map[string]int{"engagement": 100, "adoption": 80, "sentiment": 60, "contract": 40, "usage": 85}

	// 25 + 20 + 12 + 6 + 12.75 = 75.75
	assert.Equal(t, 76, WeightedSum(scores, weights))
	assert.Equal(t, 0, WeightedSum(map[string]int{}, weights))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-5, 0, 100))
	assert.Equal(t, 100, Clamp(130, 0, 100))
	assert.Equal(t, 42, Clamp(42, 0, 100))
}

func TestWithinDays(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, WithinDays(now, 7, now))
	assert.True(t, WithinDays(now.Add(-7*24*time.Hour), 7, now), "window start is inclusive")
	assert.False(t, WithinDays(now.Add(-7*24*time.Hour-time.Second), 7, now))
	assert.True(t, WithinDays(now.Add(-71*time.Hour), 3, now))
	assert.False(t, WithinDays(now.Add(-73*time.Hour), 3, now))
}
