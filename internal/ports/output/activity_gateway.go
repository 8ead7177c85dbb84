package output

import (
	"context"

	"activityroster/internal/domain/entities"
)

// ActivityGateway is the backend collaborator. Implementations return
// *domain.RejectedError for non-2xx answers and wrap transport failures so
// that errors.Is(err, domain.ErrTransport) holds.
type ActivityGateway interface {
	ListActivities(ctx context.Context) ([]entities.Activity, error)
	Signup(ctx context.Context, reg entities.Registration) (string, error)
	Unregister(ctx context.Context, reg entities.Registration) (string, error)
}
