// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package duckdb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/comixd/comixd/pkg/core/log"
)

// migrations holds the versioned schema scripts of the legacy store
// itself. They pre-date this migration engine: applying them brings an
// old legacy file to the latest known legacy schema, so the column
// sets discovered during the copy match the configured table list.
//
//go:embed migrations/*.sql
var migrations embed.FS

// UpgradeSchema applies all pending legacy schema scripts, in numeric
// filename order, each inside its own transaction. Applied versions
// are tracked in the schema_version table. This must complete before
// any table read; a failure here aborts the whole migration.
func (s *Store) UpgradeSchema(ctx context.Context) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(
		ctx,
		"CREATE TABLE IF NOT EXISTS schema_version "+
			"(version INTEGER NOT NULL)",
	); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}
	current, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}
	list, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("listing legacy schema scripts: %w", err)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	pending := 0
	for _, f := range list {
		v, err := scriptVersion(f.Name())
		if err != nil {
			return err
		}
		if v <= current {
			continue
		}
		b, err := migrations.ReadFile("migrations/" + f.Name())
		if err != nil {
			return fmt.Errorf("reading script %q: %w", f.Name(), err)
		}
		if err := applyScript(ctx, db, v, string(b)); err != nil {
			return fmt.Errorf("applying script %q: %w", f.Name(), err)
		}
		log.Debug(ctx, "applied legacy schema script",
			slog.String("script", f.Name()),
		)
		pending++
	}
	if pending > 0 {
		log.Info(ctx, "upgraded legacy store schema",
			slog.Int("scripts", pending),
		)
	}
	return nil
}

func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v sql.NullInt64
	err := db.QueryRowContext(
		ctx, "SELECT MAX(version) FROM schema_version",
	).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading legacy schema version: %w", err)
	}
	return int(v.Int64), nil
}

// applyScript executes the semicolon-separated statements of one
// script and records its version, all in one transaction.
func applyScript(
	ctx context.Context, db *sql.DB, version int, script string,
) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = fmt.Errorf("%w, rollback: %w", err, rerr)
			}
		}
	}()
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec: %w", err)
		}
	}
	if _, err = tx.ExecContext(
		ctx, "INSERT INTO schema_version (version) VALUES (?)", version,
	); err != nil {
		return fmt.Errorf("recording version %d: %w", version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// scriptVersion extracts the version number from a file named like
// "0002_script_name.sql".
func scriptVersion(filename string) (int, error) {
	v, _, _ := strings.Cut(filename, "_")
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("script %q has no numeric prefix: %w",
			filename, err)
	}
	return n, nil
}
