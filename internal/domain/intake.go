// internal/domain/intake.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hydroflow-bot/internal/util"
)

// IntakeResult is the outcome of one accepted intake.
type IntakeResult struct {
	Event       IntakeEvent     `json:"event"`
	AmountMl    decimal.Decimal `json:"amount_ml"`
	DailyIntake decimal.Decimal `json:"daily_intake"`
	DailyNeed   decimal.Decimal `json:"daily_need"`
	Remaining   decimal.Decimal `json:"remaining"`
	GoalReached bool            `json:"goal_reached"`
}

// ParseAmountMl parses a strictly positive amount of milliliters.
func ParseAmountMl(input string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, util.ErrInvalidAmount
	}
	return amount, nil
}

// RecordIntake adds amountMl to the profile's ledger. The ledger total and
// history are updated together; on error the profile is not touched.
func RecordIntake(p *UserProfile, amountMl string, now time.Time) (IntakeResult, error) {
	if p == nil {
		return IntakeResult{}, util.ErrNoProfile
	}
	ml, err := ParseAmountMl(amountMl)
	if err != nil {
		return IntakeResult{}, err
	}

	liters := ml.Div(millilitersPerLiter)
	event := NewIntakeEvent(p.UserID, liters, now)

	p.History = append(p.History, event)
	p.DailyIntake = p.DailyIntake.Add(liters)

	return IntakeResult{
		Event:       event,
		AmountMl:    ml,
		DailyIntake: p.DailyIntake,
		DailyNeed:   p.Need(),
		Remaining:   p.Remaining(),
		GoalReached: p.GoalReached(),
	}, nil
}
