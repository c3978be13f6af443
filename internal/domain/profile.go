// internal/domain/profile.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // Exact ledger arithmetic
)

var millilitersPerLiter = decimal.NewFromInt(1000)

// IntakeEvent is one accepted consumption record.
type IntakeEvent struct {
	ID         string          `db:"id" json:"id"`
	UserID     int64           `db:"user_id" json:"user_id"`
	Liters     decimal.Decimal `db:"amount_liters" json:"amount_liters"`
	RecordedAt time.Time       `db:"recorded_at" json:"recorded_at"` // UTC
}

// NewIntakeEvent creates an IntakeEvent with a fresh identifier.
func NewIntakeEvent(userID int64, liters decimal.Decimal, at time.Time) IntakeEvent {
	return IntakeEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		Liters:     liters,
		RecordedAt: at.UTC(),
	}
}

// UserProfile holds the hydration state of a user who finished onboarding.
type UserProfile struct {
	UserID         int64           `json:"user_id"`
	Weight         float64         `json:"weight"`       // kg
	Age            int             `json:"age"`          // years
	DailyNeed      float64         `json:"daily_need"`   // liters, fixed at onboarding
	DailyIntake    decimal.Decimal `json:"daily_intake"` // liters, never decreases
	History        []IntakeEvent   `json:"history"`
	LastReminderAt *time.Time      `json:"last_reminder_at,omitempty"` // UTC, nil until the first reminder
	CreatedAt      time.Time       `json:"created_at"`
}

// NewUserProfile creates a profile with an empty ledger and a freshly computed goal.
func NewUserProfile(userID int64, weight float64, age int, now time.Time) *UserProfile {
	return &UserProfile{
		UserID:      userID,
		Weight:      weight,
		Age:         age,
		DailyNeed:   ComputeDailyNeed(weight, age),
		DailyIntake: decimal.Zero,
		History:     []IntakeEvent{},
		CreatedAt:   now.UTC(),
	}
}

// Need returns DailyNeed as a decimal for comparisons against the ledger.
func (p *UserProfile) Need() decimal.Decimal {
	return decimal.NewFromFloat(p.DailyNeed)
}

// Remaining is the amount still to drink, never negative.
func (p *UserProfile) Remaining() decimal.Decimal {
	remaining := p.Need().Sub(p.DailyIntake)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// GoalReached reports whether intake has met or exceeded the daily need.
func (p *UserProfile) GoalReached() bool {
	return p.DailyIntake.GreaterThanOrEqual(p.Need())
}

// ReminderDue reports whether more than interval has passed since the last
// reminder. A profile that was never reminded is always due.
func (p *UserProfile) ReminderDue(now time.Time, interval time.Duration) bool {
	if p.LastReminderAt == nil {
		return true
	}
	return now.Sub(*p.LastReminderAt) > interval
}

// Progress summarizes the ledger against the goal.
func (p *UserProfile) Progress() Progress {
	return Progress{
		DailyIntake: p.DailyIntake,
		DailyNeed:   p.Need(),
		Remaining:   p.Remaining(),
		GoalReached: p.GoalReached(),
	}
}

// Clone returns a deep copy so the copy can be mutated without affecting p.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.History = append(make([]IntakeEvent, 0, len(p.History)+1), p.History...)
	if p.LastReminderAt != nil {
		t := *p.LastReminderAt
		cp.LastReminderAt = &t
	}
	return &cp
}

// Progress is a read-only view of a user's intake against their goal.
type Progress struct {
	DailyIntake decimal.Decimal `json:"daily_intake"`
	DailyNeed   decimal.Decimal `json:"daily_need"`
	Remaining   decimal.Decimal `json:"remaining"`
	GoalReached bool            `json:"goal_reached"`
}
