// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package sqlite

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

// migrations holds the versioned catalog schema scripts. Scripts are
// named with a numeric prefix like "0001_initial_catalog.sql" and are
// applied in ascending order; the applied version is tracked in the
// user_version pragma.
//
//go:embed migrations/*.sql
var migrations embed.FS

// Migrator applies the catalog schema scripts to the destination
// database. It runs at every startup, before the legacy store
// migration, so the migration engine always finds the destination
// tables already initialized.
type Migrator struct {
	db *sql.DB
}

// NewMigrator creates a Migrator over the given pool.
func NewMigrator(p *Pool) (*Migrator, error) {
	db, err := p.SqlDB()
	if err != nil {
		return nil, err
	}
	return &Migrator{db: db}, nil
}

// Up applies all scripts with a version greater than the current
// user_version, each inside its own transaction which also advances
// the pragma, so a crash between scripts never re-applies one.
func (m *Migrator) Up(ctx context.Context) error {
	list, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("listing catalog schema scripts: %w", err)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	current, err := m.userVersion(ctx)
	if err != nil {
		return err
	}
	final, err := scriptVersion(list[len(list)-1].Name())
	if err != nil {
		return err
	}
	if final > current {
		log.Info(ctx, "bringing up catalog schema",
			slog.Int("scripts", final-current),
		)
	}
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
		if err := m.execScript(ctx, v, string(b)); err != nil {
			return fmt.Errorf("applying script %q: %w", f.Name(), err)
		}
		log.Debug(ctx, "applied catalog schema script",
			slog.String("script", f.Name()),
		)
	}
	return nil
}

func (m *Migrator) userVersion(ctx context.Context) (int, error) {
	var v int
	err := m.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading user_version: %w", err)
	}
	return v, nil
}

func (m *Migrator) execScript(
	ctx context.Context, version int, script string,
) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
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
	if _, err = tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	// the pragma does not support bind parameters
	if _, err = tx.ExecContext(
		ctx, "PRAGMA user_version = "+strconv.Itoa(version),
	); err != nil {
		return fmt.Errorf("advancing user_version: %w", err)
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
