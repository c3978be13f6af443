// internal/service/dispatcher.go
package service

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"hydroflow-bot/internal/domain"
	"hydroflow-bot/internal/notify"
	"hydroflow-bot/internal/util"
)

// intakePattern matches a plain non-negative decimal, read as milliliters.
var intakePattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Chat commands understood by the dispatcher.
const (
	CommandStart = "/start"
	CommandHelp  = "/help"
	CommandInfo  = "/info"
	CommandFact  = "/fact"
	CommandTotal = "/total"
)

// Dispatcher routes inbound chat text to the hydration service and sends the
// resulting replies through the notifier.
type Dispatcher struct {
	service  HydrationService
	notifier notify.Notifier
	logger   *zap.Logger
	pick     func(n int) int // chooses a fact index in [0, n)
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(svc HydrationService, notifier notify.Notifier, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		service:  svc,
		notifier: notifier,
		logger:   logger,
		pick:     rand.Intn,
	}
}

// HandleMessage processes one inbound text from userID and returns the
// notifications that were emitted. Delivery failures are returned after every
// reply has been attempted.
func (d *Dispatcher) HandleMessage(ctx context.Context, userID int64, text string) ([]domain.Notification, error) {
	text = strings.TrimSpace(text)

	var (
		replies []domain.Notification
		err     error
	)
	if strings.HasPrefix(text, "/") {
		replies, err = d.handleCommand(ctx, userID, text)
	} else {
		replies, err = d.handleText(ctx, userID, text)
	}
	if err != nil {
		return nil, err
	}

	var sendErr error
	for _, n := range replies {
		if err := d.notifier.Notify(ctx, userID, n); err != nil {
			sendErr = multierr.Append(sendErr, err)
		}
	}
	if sendErr != nil {
		return replies, fmt.Errorf("deliver replies to user %d: %w", userID, sendErr)
	}
	return replies, nil
}

func (d *Dispatcher) handleCommand(ctx context.Context, userID int64, text string) ([]domain.Notification, error) {
	command := strings.Fields(text)[0]
	command, _, _ = strings.Cut(command, "@") // "/start@SomeBot"

	switch strings.ToLower(command) {
	case CommandStart, CommandHelp:
		replies := []domain.Notification{{Kind: domain.KindHelp}}
		prompt, err := d.service.StartOnboarding(ctx, userID)
		switch {
		case err == nil:
			replies = append(replies, prompt)
		case util.IsError(err, util.ErrProfileExists):
		default:
			return nil, err
		}
		return replies, nil

	case CommandInfo:
		return []domain.Notification{{Kind: domain.KindInfo}}, nil

	case CommandFact:
		fact := waterFacts[d.pick(len(waterFacts))]
		return []domain.Notification{{Kind: domain.KindFact, Text: fact}}, nil

	case CommandTotal:
		st, err := d.service.GetState(ctx, userID)
		if err != nil {
			return nil, err
		}
		if st.Profile == nil {
			return []domain.Notification{{Kind: domain.KindNoProfile}}, nil
		}
		return []domain.Notification{domain.NewTotalReport(st.Profile)}, nil
	}

	return []domain.Notification{{Kind: domain.KindUnknownCommand}}, nil
}

func (d *Dispatcher) handleText(ctx context.Context, userID int64, text string) ([]domain.Notification, error) {
	st, err := d.service.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch st.Phase() {
	case domain.PhaseAwaitingWeight, domain.PhaseAwaitingAge:
		n, err := d.service.SubmitOnboardingAnswer(ctx, userID, text)
		if err != nil && !util.IsError(err, util.ErrInvalidInput) {
			return nil, err
		}
		return []domain.Notification{n}, nil
	}

	if !intakePattern.MatchString(text) {
		return []domain.Notification{{Kind: domain.KindUnknownCommand}}, nil
	}

	res, err := d.service.RecordIntake(ctx, userID, text)
	switch {
	case err == nil:
		return []domain.Notification{domain.NewIntakeAccepted(*res)}, nil
	case util.IsError(err, util.ErrInvalidAmount):
		return []domain.Notification{{Kind: domain.KindIntakeRejected}}, nil
	case util.IsError(err, util.ErrNoProfile):
		return []domain.Notification{{Kind: domain.KindNoProfile}}, nil
	case util.IsError(err, util.ErrOnboardingInProgress):
		// The user started onboarding between the state read and the write.
		n, err := d.service.SubmitOnboardingAnswer(ctx, userID, text)
		if err != nil && !util.IsError(err, util.ErrInvalidInput) {
			return nil, err
		}
		return []domain.Notification{n}, nil
	default:
		d.logger.Error("failed to record intake", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
}
