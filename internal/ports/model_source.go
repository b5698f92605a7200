package ports

import (
	"context"

	"github.com/bnema/modelwatch/internal/domain"
)

// ModelSource reports the models the daemon is currently running. A single
// call is one outbound request; retries are the caller's decision.
type ModelSource interface {
	Fetch(ctx context.Context) ([]domain.ModelDescriptor, error)
}
