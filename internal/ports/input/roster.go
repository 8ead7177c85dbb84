package input

import (
	"context"

	"activityroster/internal/domain/entities"
)

// OutcomeKind tags the result of a state-changing action.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeRejected
	OutcomeTransportFailure
	// OutcomeSkipped means the action was aborted before any request.
	OutcomeSkipped
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransportFailure:
		return "transport_failure"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome is what a presenter needs to update the status area and decide
// whether to re-run the loader.
type Outcome struct {
	Kind   OutcomeKind
	Status entities.StatusMessage
	// Reload is set only on success; the presenter then calls Load.
	Reload bool
}

type RosterUseCase interface {
	Load(ctx context.Context) (entities.Snapshot, error)
	Signup(ctx context.Context, locale string, reg entities.Registration) Outcome
	Remove(ctx context.Context, locale string, reg entities.Registration) Outcome
	ConfirmPrompt(locale string, reg entities.Registration) string
}
