package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zahub/storefront/internal/domain"
	"github.com/zahub/storefront/internal/interfaces"
)

type userRepository struct {
	db DB
}

func NewUserRepository(db DB) interfaces.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) ResolveAppUser(ctx context.Context, authUserID string) (uuid.UUID, error) {
	query := `SELECT id FROM app_user WHERE auth_user_id = $1`

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, authUserID).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrNotAuthenticated, err)
	}
	return id, nil
}
