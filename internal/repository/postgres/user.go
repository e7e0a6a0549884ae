package postgres

import (
	"context"

	"cardbot/internal/domain"

	"github.com/jmoiron/sqlx"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUser creates the user or refreshes a changed username
func (r *UserRepo) EnsureUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (id, username)
		VALUES (:id, :username)
		ON CONFLICT (id)
		DO UPDATE SET username = EXCLUDED.username
		WHERE users.username IS DISTINCT FROM EXCLUDED.username
	`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return &domain.StoreError{Op: "ensure user", Err: err}
	}
	return nil
}
