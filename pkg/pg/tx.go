package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise, including when fn panics.
func WithTx(ctx context.Context, db TxBeginner, fn func(pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, db, fn)
}
