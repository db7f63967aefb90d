package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/favorites-service/internal/domain"
)

// LikeRepository encapsulates like persistence.
type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	GetByID(ctx context.Context, id string) (*domain.Like, error)
	GetByCreatorAndSource(ctx context.Context, creatorID, src string) (*domain.Like, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Like, error)
	Delete(ctx context.Context, id string) error
	DeleteByCreator(ctx context.Context, creatorID string) error
	WithDB(db DB) LikeRepository
}

type likeRepository struct {
	db DB
}

// NewLikeRepository instantiates repository.
func NewLikeRepository(db DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithDB(db DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	const query = `
        INSERT INTO likes (src, name, creator_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		like.Src,
		like.Name,
		like.CreatorID,
	).Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *likeRepository) GetByID(ctx context.Context, id string) (*domain.Like, error) {
	const query = `
        SELECT id, src, name, creator_id, created_at
        FROM likes WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *likeRepository) GetByCreatorAndSource(ctx context.Context, creatorID, src string) (*domain.Like, error) {
	const query = `
        SELECT id, src, name, creator_id, created_at
        FROM likes WHERE creator_id=$1 AND src=$2`
	return r.fetchSingle(ctx, query, creatorID, src)
}

func (r *likeRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Like, error) {
	var like domain.Like
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&like.ID,
		&like.Src,
		&like.Name,
		&like.CreatorID,
		&like.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) ListByCreator(ctx context.Context, creatorID string) ([]domain.Like, error) {
	const query = `
        SELECT id, src, name, creator_id, created_at
        FROM likes WHERE creator_id=$1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLikes(rows)
}

func (r *likeRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM likes WHERE id=$1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *likeRepository) DeleteByCreator(ctx context.Context, creatorID string) error {
	const query = `DELETE FROM likes WHERE creator_id=$1`
	_, err := r.db.Exec(ctx, query, creatorID)
	return err
}

func scanLikes(rows pgx.Rows) ([]domain.Like, error) {
	result := []domain.Like{}
	for rows.Next() {
		var like domain.Like
		if err := rows.Scan(
			&like.ID,
			&like.Src,
			&like.Name,
			&like.CreatorID,
			&like.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, like)
	}
	return result, rows.Err()
}
