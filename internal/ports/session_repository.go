package ports

import (
	"context"

	"github.com/bnema/modelwatch/internal/domain"
)

type SessionRepository interface {
	Load(ctx context.Context) ([]domain.Session, error)
	Save(ctx context.Context, sessions []domain.Session) error
}
