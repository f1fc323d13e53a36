// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package duckdb

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/comixd/comixd/pkg/core/usecase/storemig"
)

// tableRows adapts a *sql.Rows full-table cursor to the
// storemig.RowSource interface. Column names and declared type tags
// are discovered once, from the result metadata.
type tableRows struct {
	rows *sql.Rows
	cols []storemig.Column
	blob []bool
}

func newTableRows(rows *sql.Rows) (*tableRows, error) {
	cts, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("column types: %w", err)
	}
	cols := make([]storemig.Column, len(cts))
	blob := make([]bool, len(cts))
	for i, ct := range cts {
		tag := ct.DatabaseTypeName()
		cols[i] = storemig.Column{Name: ct.Name(), TypeName: tag}
		blob[i] = isBinaryType(tag)
	}
	return &tableRows{rows: rows, cols: cols, blob: blob}, nil
}

// isBinaryType reports whether the declared type tag denotes a binary
// large object column. DuckDB reports BLOB; the BYTEA and VARBINARY
// aliases are accepted too since the legacy scripts used them
// interchangeably.
func isBinaryType(tag string) bool {
	switch u := strings.ToUpper(tag); {
	case strings.Contains(u, "BLOB"):
		return true
	case u == "BYTEA" || u == "VARBINARY" || u == "BINARY":
		return true
	}
	return false
}

func (tr *tableRows) Columns() []storemig.Column {
	return tr.cols
}

func (tr *tableRows) Next() bool {
	return tr.rows.Next()
}

// Values scans the current row into a fresh []any. Binary columns are
// materialized into owned byte slices because the driver may reuse its
// scan buffer for the next row; all other values pass through
// unchanged, since the two engines negotiate compatible types for
// every non-binary column kind.
func (tr *tableRows) Values() ([]any, error) {
	vals := make([]any, len(tr.cols))
	ptrs := make([]any, 0, len(tr.cols))
	for i := range vals {
		ptrs = append(ptrs, &vals[i])
	}
	if err := tr.rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	for i, isBlob := range tr.blob {
		if !isBlob {
			continue
		}
		if b, ok := vals[i].([]byte); ok {
			vals[i] = append([]byte(nil), b...)
		}
	}
	return vals, nil
}

func (tr *tableRows) Err() error {
	return tr.rows.Err()
}

func (tr *tableRows) Close() error {
	return tr.rows.Close()
}
