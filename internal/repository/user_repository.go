package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/favorites-service/internal/domain"
)

// UserRepository defines persistence access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	AttachLike(ctx context.Context, userID, likeID string) error
	DetachLike(ctx context.Context, userID, likeID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	Delete(ctx context.Context, userID string) error
	WithDB(db DB) UserRepository
}

type userRepository struct {
	db DB
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithDB(db DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, password_hash, role)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, role, like_ids, created_at, updated_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, role, like_ids, created_at, updated_at
        FROM users WHERE LOWER(email)=LOWER($1)`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.LikeIDs,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) AttachLike(ctx context.Context, userID, likeID string) error {
	const query = `
        UPDATE users SET like_ids = array_append(like_ids, $2), updated_at=NOW()
        WHERE id=$1`
	return r.exec(ctx, query, userID, likeID)
}

func (r *userRepository) DetachLike(ctx context.Context, userID, likeID string) error {
	const query = `
        UPDATE users SET like_ids = array_remove(like_ids, $2), updated_at=NOW()
        WHERE id=$1`
	return r.exec(ctx, query, userID, likeID)
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	const query = `
        UPDATE users SET password_hash=$2, updated_at=NOW()
        WHERE id=$1`
	return r.exec(ctx, query, userID, passwordHash)
}

func (r *userRepository) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM users WHERE id=$1`
	return r.exec(ctx, query, userID)
}

func (r *userRepository) exec(ctx context.Context, query string, args ...any) error {
	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
