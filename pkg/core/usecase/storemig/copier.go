// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storemig

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/comixd/comixd/pkg/core/log"
)

// copyTable streams one table out of the source and writes it into the
// destination in bounded batches. The destination column list and the
// insert statement shape are derived from the source result metadata,
// not hardcoded. Values pass through opaquely; only binary columns are
// materialized by the RowSource implementation. The row source is
// released on every exit path.
func (uc *UseCase) copyTable(
	ctx context.Context, table string,
) (err error) {
	rs, err := uc.src.ReadTable(ctx, table)
	if err != nil {
		return fmt.Errorf("reading source rows: %w", err)
	}
	defer func() {
		if cerr := rs.Close(); cerr != nil {
			log.Warn(ctx, "releasing source row cursor",
				log.Table(table),
				log.Err("error", cerr),
			)
		}
	}()
	cols := rs.Columns()
	if len(cols) == 0 {
		return errors.New("source reported no columns")
	}
	var copied int
	batch := make([][]any, 0, uc.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := uc.dst.InsertBatch(ctx, table, cols, batch); err != nil {
			return fmt.Errorf(
				"inserting batch of %d rows after row %d: %w",
				len(batch), copied, err,
			)
		}
		copied += len(batch)
		batch = batch[:0]
		return nil
	}
	for rs.Next() {
		vals, err := rs.Values()
		if err != nil {
			return fmt.Errorf("scanning row %d: %w", copied+len(batch), err)
		}
		batch = append(batch, vals)
		if len(batch) == uc.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := rs.Err(); err != nil {
		return fmt.Errorf("iterating source rows: %w", err)
	}
	if err := flush(); err != nil {
		return err
	}
	log.Debug(ctx, "copied table",
		log.Table(table),
		slog.Int("rows", copied),
	)
	return nil
}
