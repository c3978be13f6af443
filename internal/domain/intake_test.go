// internal/domain/intake_test.go
package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydroflow-bot/internal/util"
)

func profileWithNeed(need float64) *UserProfile {
	return &UserProfile{
		UserID:      7,
		Weight:      70,
		Age:         25,
		DailyNeed:   need,
		DailyIntake: decimal.Zero,
		History:     []IntakeEvent{},
	}
}

func TestRecordIntake(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)

	t.Run("AcceptsMilliliters", func(t *testing.T) {
		p := profileWithNeed(2.0)

		res, err := RecordIntake(p, "250", now)
		require.NoError(t, err)

		assert.True(t, res.AmountMl.Equal(decimal.NewFromInt(250)))
		assert.True(t, res.DailyIntake.Equal(decimal.RequireFromString("0.25")), res.DailyIntake.String())
		assert.True(t, res.Remaining.Equal(decimal.RequireFromString("1.75")), res.Remaining.String())
		assert.False(t, res.GoalReached)

		assert.True(t, p.DailyIntake.Equal(res.DailyIntake))
		require.Len(t, p.History, 1)
		assert.Equal(t, now, p.History[0].RecordedAt)
		assert.True(t, p.History[0].Liters.Equal(decimal.RequireFromString("0.25")))
		assert.Equal(t, int64(7), p.History[0].UserID)
		assert.NotEmpty(t, p.History[0].ID)
		assert.Equal(t, p.History[0], res.Event)
	})

	for _, input := range []string{"-5", "0", "0.0", "abc", ""} {
		t.Run("Rejects_"+input, func(t *testing.T) {
			p := profileWithNeed(2.0)

			_, err := RecordIntake(p, input, now)
			assert.ErrorIs(t, err, util.ErrInvalidAmount)
			assert.True(t, p.DailyIntake.IsZero())
			assert.Empty(t, p.History)
		})
	}

	t.Run("NilProfile", func(t *testing.T) {
		_, err := RecordIntake(nil, "250", now)
		assert.ErrorIs(t, err, util.ErrNoProfile)
	})
}

func TestRecordIntake_GoalCrossing(t *testing.T) {
	p := profileWithNeed(1.0)
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	steps := []struct {
		amount      string
		goalReached bool
		remaining   string
	}{
		{"300", false, "0.7"},
		{"300", false, "0.4"},
		{"399.5", false, "0.0005"},
		{"0.5", true, "0"},  // exactly 1.0 L
		{"250", true, "0"},  // keeps holding once crossed
		{"1000", true, "0"}, // excess is not clamped
	}

	for i, step := range steps {
		res, err := RecordIntake(p, step.amount, now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, step.goalReached, res.GoalReached, "step %d", i)
		assert.True(t, res.Remaining.Equal(decimal.RequireFromString(step.remaining)), "step %d remaining %s", i, res.Remaining)
	}

	assert.Len(t, p.History, len(steps))
	assert.True(t, p.DailyIntake.Equal(decimal.RequireFromString("2.25")), p.DailyIntake.String())
	for i := 1; i < len(p.History); i++ {
		assert.True(t, p.History[i].RecordedAt.After(p.History[i-1].RecordedAt))
	}
}

func TestParseAmountMl(t *testing.T) {
	amount, err := ParseAmountMl(" 330.5 ")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("330.5")))

	_, err = ParseAmountMl("-1")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}
