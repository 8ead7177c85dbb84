package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"activityroster/internal/domain"
	"activityroster/internal/domain/entities"
	"activityroster/internal/ports/input"
	"activityroster/internal/ports/output"
)

const (
	actionLoad   = "load"
	actionSignup = "signup"
	actionRemove = "remove"
)

var _ input.RosterUseCase = (*RosterService)(nil)

// RosterService holds the loader, the signup submitter and the removal
// handler. It keeps no state between calls: every Load returns a fresh
// Snapshot and mutations never patch a previous one.
type RosterService struct {
	gateway    output.ActivityGateway
	translator output.T
	recorder   output.Recorder
	logger     *slog.Logger
}

func NewRosterService(
	gateway output.ActivityGateway,
	translator output.T,
	recorder output.Recorder,
	logger *slog.Logger,
) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterService{
		gateway:    gateway,
		translator: translator,
		recorder:   recorder,
		logger:     logger,
	}
}

// Load fetches the whole activity collection in response order.
func (s *RosterService) Load(ctx context.Context) (entities.Snapshot, error) {
	activities, err := s.gateway.ListActivities(ctx)
	if err != nil {
		s.record(actionLoad, domain.Code(err))
		s.logger.Error("error fetching activities", "error", err)
		return entities.Snapshot{}, fmt.Errorf("load activities: %w", err)
	}
	s.record(actionLoad, input.OutcomeOK.String())
	return entities.Snapshot{Activities: activities}, nil
}

// Signup registers reg.Email for reg.Activity.
func (s *RosterService) Signup(ctx context.Context, locale string, reg entities.Registration) input.Outcome {
	if !reg.Complete() {
		s.record(actionSignup, domain.CodeIncompleteRegistration)
		return input.Outcome{
			Kind:   input.OutcomeRejected,
			Status: errorStatus(s.translator.T(locale, KeyRequired, nil)),
		}
	}
	message, err := s.gateway.Signup(ctx, reg)
	return s.outcome(locale, actionSignup, KeySignupTransport, reg, message, err)
}

// Remove unregisters reg.Email from reg.Activity. Confirmation is the
// presenter's job; an incomplete pair is skipped without a request.
func (s *RosterService) Remove(ctx context.Context, locale string, reg entities.Registration) input.Outcome {
	if !reg.Complete() {
		return input.Outcome{Kind: input.OutcomeSkipped}
	}
	message, err := s.gateway.Unregister(ctx, reg)
	return s.outcome(locale, actionRemove, KeyRemoveTransport, reg, message, err)
}

// ConfirmPrompt is the question shown before a removal.
func (s *RosterService) ConfirmPrompt(locale string, reg entities.Registration) string {
	return s.translator.T(locale, KeyConfirmRemove, map[string]any{
		"Email":    reg.Email,
		"Activity": reg.Activity,
	})
}

func (s *RosterService) outcome(locale, action, transportKey string, reg entities.Registration, message string, err error) input.Outcome {
	if err == nil {
		s.record(action, input.OutcomeOK.String())
		return input.Outcome{
			Kind:   input.OutcomeOK,
			Status: successStatus(message),
			Reload: true,
		}
	}

	var rejected *domain.RejectedError
	if errors.As(err, &rejected) {
		s.record(action, domain.CodeRejected)
		s.logger.Info("action rejected", "action", action, "activity", reg.Activity, "status", rejected.Status, "detail", rejected.Detail)
		text := rejected.Detail
		if text == "" {
			text = s.translator.T(locale, KeyErrorGeneric, nil)
		}
		return input.Outcome{Kind: input.OutcomeRejected, Status: errorStatus(text)}
	}

	// Transport failures and unreadable bodies share the fixed message.
	s.record(action, domain.Code(err))
	s.logger.Error("action failed", "action", action, "activity", reg.Activity, "error", err)
	return input.Outcome{
		Kind:   input.OutcomeTransportFailure,
		Status: errorStatus(s.translator.T(locale, transportKey, nil)),
	}
}

func (s *RosterService) record(action, outcome string) {
	if s.recorder != nil {
		s.recorder.RecordAction(action, outcome)
	}
}

func successStatus(text string) entities.StatusMessage {
	return entities.StatusMessage{Text: text, Kind: entities.StatusSuccess, Visible: true}
}

func errorStatus(text string) entities.StatusMessage {
	return entities.StatusMessage{Text: text, Kind: entities.StatusError, Visible: true}
}
