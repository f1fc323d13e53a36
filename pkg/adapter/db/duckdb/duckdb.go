// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package duckdb adapts the legacy embedded DuckDB catalog store. It
// only serves the one-time store migration: resolving the configured
// connection locator to the on-disk database file, upgrading the
// legacy schema to its latest known version, and streaming full-table
// row sets out of it. All regular catalog access goes through the
// sqlite adapter instead.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/comixd/comixd/pkg/core/usecase/storemig"
)

// Store is the legacy store handle. The database file is opened
// lazily, so a Store can be constructed (and its locator resolved)
// without touching the filesystem; the guard checks of the migration
// use case rely on that.
type Store struct {
	locator string
	db      *sql.DB
}

// New creates a Store for the given connection locator without opening
// the underlying database file.
func New(locator string) *Store {
	return &Store{locator: locator}
}

// DataFile resolves the locator and appends the storage suffix,
// yielding the actual on-disk file path of the legacy store. It
// reports false for locators which are not file-backed.
func (s *Store) DataFile() (string, bool) {
	p, ok := ResolvePath(s.locator)
	if !ok {
		return "", false
	}
	return p + StorageSuffix, true
}

func (s *Store) open() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	path, ok := s.DataFile()
	if !ok {
		return nil, fmt.Errorf(
			"locator %q is not file-backed", s.locator,
		)
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	// the migration is strictly single-threaded
	db.SetMaxOpenConns(1)
	s.db = db
	return db, nil
}

// ReadTable opens a read cursor over an unconstrained full-table
// select and discovers the column names and declared types from the
// result metadata.
func (s *Store) ReadTable(
	ctx context.Context, table string,
) (storemig.RowSource, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	q := "SELECT * FROM " + quoteIdent(table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	tr, err := newTableRows(rows)
	if err != nil {
		// best-effort, the introspection error is the one to report
		_ = rows.Close()
		return nil, fmt.Errorf("introspecting %s: %w", table, err)
	}
	return tr, nil
}

// Close releases the legacy store connection. It is safe to call on a
// Store which was never opened.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("closing legacy store: %w", err)
	}
	return nil
}

var _ storemig.Source = (*Store)(nil)

// quoteIdent quotes a SQL identifier, so reserved words like "user"
// can be used as table names.
func quoteIdent(name string) string {
	quoted := make([]byte, 0, len(name)+2)
	quoted = append(quoted, '"')
	for i := 0; i < len(name); i++ {
		if name[i] == '"' {
			quoted = append(quoted, '"')
		}
		quoted = append(quoted, name[i])
	}
	return string(append(quoted, '"'))
}
