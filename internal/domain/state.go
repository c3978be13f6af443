// internal/domain/state.go
package domain

// Phase identifies where a user is in the hydration flow.
type Phase string

const (
	PhaseIdle           Phase = "IDLE"
	PhaseAwaitingWeight Phase = "AWAITING_WEIGHT"
	PhaseAwaitingAge    Phase = "AWAITING_AGE"
	PhaseTracking       Phase = "TRACKING"
)

// UserState is the per-user entry kept by the state store. At most one of
// Session and Profile is set.
type UserState struct {
	UserID  int64
	Session *OnboardingSession
	Profile *UserProfile
}

// Phase derives the current phase from which half of the union is populated.
func (s UserState) Phase() Phase {
	switch {
	case s.Profile != nil:
		return PhaseTracking
	case s.Session == nil:
		return PhaseIdle
	case s.Session.Step == StepAwaitingAge:
		return PhaseAwaitingAge
	default:
		return PhaseAwaitingWeight
	}
}

// Clone deep-copies the state.
func (s UserState) Clone() UserState {
	out := UserState{UserID: s.UserID, Profile: s.Profile.Clone()}
	if s.Session != nil {
		sess := *s.Session
		out.Session = &sess
	}
	return out
}
