package queries

import (
	"context"

	"github.com/google/uuid"
)

type UserViewRepo interface {
	// FindByEmail also returns the stored password hash for verification.
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}
