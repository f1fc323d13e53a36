// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/comixd/comixd/pkg/core/usecase/storemig"
)

// Dest is the write target of the legacy store migration. It bypasses
// GORM on purpose: the insert statements are derived from the column
// metadata which the migration discovers at run time, not from mapped
// structs.
type Dest struct {
	db *sql.DB
}

// NewDest creates a Dest over the given pool.
func NewDest(p *Pool) (*Dest, error) {
	db, err := p.SqlDB()
	if err != nil {
		return nil, err
	}
	return &Dest{db: db}, nil
}

var _ storemig.Destination = (*Dest)(nil)

// CountRows returns the row count of the given table. The migration
// guard uses it to verify that the destination is still empty.
func (d *Dest) CountRows(
	ctx context.Context, table string,
) (int64, error) {
	var n int64
	q := "SELECT COUNT(*) FROM " + quoteIdent(table)
	if err := d.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows of %s: %w", table, err)
	}
	return n, nil
}

// InsertBatch writes the given rows as one unit of work: a single
// transaction around a prepared insert statement which is built from
// the discovered column list with positional placeholders.
func (d *Dest) InsertBatch(
	ctx context.Context,
	table string,
	cols []storemig.Column,
	rows [][]any,
) (err error) {
	if len(rows) == 0 {
		return nil
	}
	tx, err := d.db.BeginTx(ctx, nil)
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
	stmt, err := tx.PrepareContext(ctx, insertStatement(table, cols))
	if err != nil {
		return fmt.Errorf("preparing insert into %s: %w", table, err)
	}
	defer stmt.Close()
	for i, row := range rows {
		if _, err = stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf(
				"inserting row %d into %s: %w", i, table, err,
			)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// insertStatement builds a parameterized insert for the given table
// with a column list identical to the discovered source columns.
func insertStatement(table string, cols []storemig.Column) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quoteIdent(table))
	b.WriteString(" (")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(c.Name))
	}
	b.WriteString(") VALUES (")
	for i := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('?')
	}
	b.WriteString(")")
	return b.String()
}

// quoteIdent quotes a SQL identifier, so reserved words like "user"
// can be used as table names.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
