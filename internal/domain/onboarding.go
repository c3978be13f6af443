// internal/domain/onboarding.go
package domain

import (
	"strconv"
	"strings"
	"time"

	"hydroflow-bot/internal/util"
)

// OnboardingStep is the question an onboarding session is waiting on.
type OnboardingStep string

const (
	StepAwaitingWeight OnboardingStep = "AWAITING_WEIGHT"
	StepAwaitingAge    OnboardingStep = "AWAITING_AGE"
)

// OnboardingSession is the transient dialog that collects weight and age.
type OnboardingSession struct {
	Step          OnboardingStep
	PendingWeight float64 // set once the weight answer was accepted
	StartedAt     time.Time
}

// StartOnboarding opens a session in AwaitingWeight and asks for the weight.
// A session already in progress starts over. Users with a profile are
// returned unchanged with ErrProfileExists.
func StartOnboarding(s UserState, now time.Time) (UserState, Notification, error) {
	if s.Phase() == PhaseTracking {
		return s, Notification{}, util.ErrProfileExists
	}

	next := s.Clone()
	next.Session = &OnboardingSession{Step: StepAwaitingWeight, StartedAt: now.UTC()}
	return next, Notification{Kind: KindPromptWeight}, nil
}

// AdvanceOnboarding feeds one answer into the session. Invalid answers leave
// the state untouched and produce a re-prompt plus a validation error.
// A valid age answer replaces the session with a new profile.
func AdvanceOnboarding(s UserState, input string, now time.Time) (UserState, Notification, error) {
	if s.Session == nil {
		if s.Profile != nil {
			return s, Notification{}, util.ErrProfileExists
		}
		return s, Notification{}, util.ErrNotFound
	}

	switch s.Session.Step {
	case StepAwaitingWeight:
		weight, err := ParseWeight(input)
		if err != nil {
			return s, Notification{Kind: KindReWeightInvalid}, err
		}
		next := s.Clone()
		next.Session.Step = StepAwaitingAge
		next.Session.PendingWeight = weight
		return next, Notification{Kind: KindPromptAge}, nil

	default:
		age, err := ParseAge(input)
		if err != nil {
			return s, Notification{Kind: KindReAgeInvalid}, err
		}
		profile := NewUserProfile(s.UserID, s.Session.PendingWeight, age, now)
		next := UserState{UserID: s.UserID, Profile: profile}
		return next, NewOnboardingComplete(profile), nil
	}
}

// ParseWeight accepts a real number of kilograms within [MinWeightKg, MaxWeightKg].
func ParseWeight(input string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || !(w >= MinWeightKg && w <= MaxWeightKg) {
		return 0, util.ErrInvalidWeight
	}
	return w, nil
}

// ParseAge accepts a whole number of years within [MinAge, MaxAge].
func ParseAge(input string) (int, error) {
	a, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || a < MinAge || a > MaxAge {
		return 0, util.ErrInvalidAge
	}
	return a, nil
}
