// internal/domain/hydration_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDailyNeed(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		age    int
		want   float64
	}{
		{"UnderThirty", 70, 25, 2.31},
		{"ThirtyToFiftyFour", 70, 40, 2.1945},
		{"FiftyFiveAndOver", 70, 60, 2.079},
		{"BoundaryThirty", 70, 30, 2.1945},
		{"BoundaryFiftyFive", 70, 55, 2.079},
		{"BoundaryTwentyNine", 70, 29, 2.31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeDailyNeed(tt.weight, tt.age), 1e-9)
		})
	}
}

func TestComputeDailyNeed_PositiveAndDeterministic(t *testing.T) {
	for _, weight := range []float64{MinWeightKg, 1.5, 45, 70, 150.25, MaxWeightKg} {
		for _, age := range []int{MinAge, 29, 30, 54, 55, MaxAge} {
			first := ComputeDailyNeed(weight, age)
			assert.Greater(t, first, 0.0, "weight=%v age=%d", weight, age)
			assert.Equal(t, first, ComputeDailyNeed(weight, age), "weight=%v age=%d", weight, age)
		}
	}
}
