// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storemig

import (
	"errors"
	"fmt"
)

// Option is a functional option for the store migration use case.
type Option func(uc *UseCase) error

// WithBatchSize option configures how many rows are buffered before
// they are flushed to the destination as one batched insert. A
// non-full trailing batch is flushed at end of table regardless.
// The default capacity is 500 rows.
func WithBatchSize(n int) Option {
	return func(uc *UseCase) error {
		if n <= 0 {
			return fmt.Errorf("batch size (%d) is not positive", n)
		}
		if uc.batchSize != 0 {
			return errors.New("batch size is already configured")
		}
		uc.batchSize = n
		return nil
	}
}

// WithGuardTable option configures which destination table is counted
// by the emptiness guard check. It should be an identity-bearing table
// which any populated destination is guaranteed to fill; the default
// is the "user" table.
func WithGuardTable(table string) Option {
	return func(uc *UseCase) error {
		if table == "" {
			return errors.New("guard table must be non-empty")
		}
		uc.guardTable = table
		return nil
	}
}

// WithMarkFailedAttempts option controls whether a marker file is
// written after a failed copy. The default (true) preserves the
// single-attempt policy: a failed attempt is marked and never retried
// automatically. Setting it to false leaves no marker on failure, so
// the next startup retries against the partially populated destination
// only after its guard check finds the destination empty again (i.e.,
// after manual cleanup).
func WithMarkFailedAttempts(mark bool) Option {
	return func(uc *UseCase) error {
		uc.markFailedAttempts = mark
		return nil
	}
}
