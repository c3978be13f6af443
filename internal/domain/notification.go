// internal/domain/notification.go
package domain

import "github.com/shopspring/decimal"

// MessageKind tells the delivery layer which message to render.
type MessageKind string

const (
	KindPromptWeight       MessageKind = "PROMPT_WEIGHT"
	KindPromptAge          MessageKind = "PROMPT_AGE"
	KindReWeightInvalid    MessageKind = "RE_WEIGHT_INVALID"
	KindReAgeInvalid       MessageKind = "RE_AGE_INVALID"
	KindOnboardingComplete MessageKind = "ONBOARDING_COMPLETE"
	KindIntakeAccepted     MessageKind = "INTAKE_ACCEPTED"
	KindIntakeRejected     MessageKind = "INTAKE_REJECTED"
	KindReminderDue        MessageKind = "REMINDER_DUE"
	KindGoalAlreadyMet     MessageKind = "GOAL_ALREADY_MET"

	// Command replies.
	KindHelp           MessageKind = "HELP"
	KindInfo           MessageKind = "INFO"
	KindFact           MessageKind = "FACT"
	KindTotalReport    MessageKind = "TOTAL_REPORT"
	KindNoProfile      MessageKind = "NO_PROFILE"
	KindUnknownCommand MessageKind = "UNKNOWN_COMMAND"
)

// Notification is an outbound message request. Wording is left to the
// delivery layer; only the structured payload is carried here.
type Notification struct {
	Kind      MessageKind      `json:"kind"`
	DailyNeed *decimal.Decimal `json:"daily_need,omitempty"`
	AmountMl  *decimal.Decimal `json:"amount_ml,omitempty"`
	Progress  *Progress        `json:"progress,omitempty"`
	Text      string           `json:"text,omitempty"`
}

// NewOnboardingComplete reports the goal computed for a new profile.
func NewOnboardingComplete(p *UserProfile) Notification {
	need := p.Need()
	return Notification{Kind: KindOnboardingComplete, DailyNeed: &need}
}

// NewIntakeAccepted echoes an accepted intake together with the updated totals.
func NewIntakeAccepted(res IntakeResult) Notification {
	amount := res.AmountMl
	return Notification{
		Kind:     KindIntakeAccepted,
		AmountMl: &amount,
		Progress: &Progress{
			DailyIntake: res.DailyIntake,
			DailyNeed:   res.DailyNeed,
			Remaining:   res.Remaining,
			GoalReached: res.GoalReached,
		},
	}
}

// NewReminder picks GoalAlreadyMet or ReminderDue depending on progress.
func NewReminder(p *UserProfile) Notification {
	progress := p.Progress()
	kind := KindReminderDue
	if progress.GoalReached {
		kind = KindGoalAlreadyMet
	}
	return Notification{Kind: kind, Progress: &progress}
}

// NewTotalReport summarizes the ledger on request.
func NewTotalReport(p *UserProfile) Notification {
	progress := p.Progress()
	return Notification{Kind: KindTotalReport, Progress: &progress}
}
