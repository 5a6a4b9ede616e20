package repository

import (
	"context"

	"parkhub/internal/domain/user"
	"parkhub/internal/infra"

	"github.com/google/uuid"
)

type UserRepository struct {
	db infra.DBTX
}

func NewUserRepository(db infra.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, tx infra.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`INSERT INTO users (id, email, username, password_hash, full_name, address, postal_code, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		u.ID(), u.Email().Value(), u.Username().Value(), u.PasswordHash(),
		u.FullName(), u.Address(), u.PostalCode(), u.Role().String(), u.IsActive()).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx infra.DBTX, userID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`,
		userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
