package pg_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/drivecase/pkg/pg"
)

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	duplicate := fmt.Errorf("insert link: %w", &pgconn.PgError{Code: "23505"})
	foreignKey := &pgconn.PgError{Code: "23503"}
	notFound := fmt.Errorf("select case: %w", pgx.ErrNoRows)

	assert.True(t, pg.IsDuplicateKeyError(duplicate))
	assert.False(t, pg.IsDuplicateKeyError(foreignKey))
	assert.False(t, pg.IsDuplicateKeyError(nil))

	assert.True(t, pg.IsForeignKeyViolationError(foreignKey))
	assert.False(t, pg.IsForeignKeyViolationError(errors.New("other")))

	assert.True(t, pg.IsNotFoundError(notFound))
	assert.False(t, pg.IsNotFoundError(nil))
}

func TestConnect_Disabled(t *testing.T) {
	t.Parallel()

	cfg := pg.Config{}
	assert.False(t, cfg.Enabled())

	_, err := pg.Connect(context.Background(), cfg)
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
}

func TestConnect_BadConnectionString(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}
