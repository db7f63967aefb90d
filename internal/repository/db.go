package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate reports a unique constraint violation. The constraints on
// users(email) and likes(creator_id, src) backstop the check-then-insert
// paths in the services.
var ErrDuplicate = errors.New("duplicate record")

// DB is the subset of pgx used by repositories. Both *pgxpool.Pool and
// pgx.Tx satisfy it, so a repository can be rebound onto a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxRunner executes fn inside a transaction; all writes issued through the
// provided DB commit together or roll back together.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, db DB) error) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
