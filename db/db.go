// Package db embeds the SQL migrations applied by pg.Migrate.
//
//	if err := pg.Migrate(ctx, pool, cfg.PG, db.Migrations, db.MigrationsDir, log); err != nil {
//		return err
//	}
package db

import "embed"

// MigrationsDir is the directory inside Migrations holding goose files.
const MigrationsDir = "migrations"

// Migrations holds the goose SQL migrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS
