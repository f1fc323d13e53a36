// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package sqlite

import (
	"context"

	"github.com/comixd/comixd/pkg/core/repo"
	"gorm.io/gorm"
)

// Tx represents a database transaction. It is unsafe to be used
// concurrently. A transaction may be used in order to execute one or
// more SQL statements one at a time; for the statement execution
// methods, see the Queryer interface. SQLite allows a single writing
// transaction at a time, so a writer may wait behind another one up to
// the configured busy timeout before failing with SQLITE_BUSY.
// Tx embeds the *gorm.DB, hence, may be used like GORM from within the
// repository packages (which can depend on frameworks).
type Tx struct {
	*gorm.DB
}

// Exec runs SQL statements with given args given ctx context.
// Number of affected rows and possible errors will be returned.
// If args is provided, sql will be prepared and args will be passed
// separately to the DBMS in order to prevent SQL injection. In this
// case, sql must contain exactly one statement. Parameters in sql
// should use the ? placeholder as supported by SQLite natively.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tt := tx.DB.WithContext(ctx).Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}

// Query runs a single SQL statement with given args given ctx context.
// The result set is returned as the Rows interface. The Query or Exec
// may not be called again until the Rows is closed since only one
// ongoing statement may be used on each connection.
func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	rows, err := tx.DB.WithContext(ctx).Raw(sql, args...).Rows()
	return rowsAdapter{rows}, err
}

// IsTx method prevents a non-Tx object (such as a Conn) to mistakenly
// implement the Tx interface.
func (tx *Tx) IsTx() {
}

// GORM returns the embedded *gorm.DB with the given context attached,
// so repository packages can run their queries through GORM.
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}
