// Package pg bootstraps PostgreSQL access on top of jackc/pgx/v5 and applies
// schema migrations with pressly/goose/v3.
//
// Connect opens a *pgxpool.Pool from Config, retrying while the database
// comes up. Migrate runs goose against the same pool using an fs.FS, which
// lets the binary ship its migrations embedded. WithTx wraps
// pgx.BeginFunc, and Healthcheck produces a readiness check.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//	if !cfg.Enabled() {
//		return nil // registry disabled
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, db.Migrations, db.MigrationsDir, log); err != nil {
//		return err
//	}
//
// IsNotFoundError, IsDuplicateKeyError and IsForeignKeyViolationError
// classify pgx and *pgconn.PgError values.
package pg
