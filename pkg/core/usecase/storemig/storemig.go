// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package storemig contains the one-time legacy store migration use
// case. It copies the complete catalog of the legacy embedded DuckDB
// store into the embedded SQLite store exactly once, at host startup,
// while the background task consumers are paused.
//
// The migration is guarded by four independent checks (file-backed
// locator, marker absence, source file presence, empty destination)
// and is fail-open: any failure during the copy is logged and
// contained, a marker file is written whether the copy succeeded or
// failed, and the consumers are always resumed, so host startup never
// depends on the migration outcome. The marker content records the
// outcome, so a partially migrated destination can be told apart from
// a fully migrated one by inspection.
package storemig

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/comixd/comixd/pkg/core/log"
)

// Column describes one column of a source result set, as discovered
// from the result metadata at run time: its name and its declared SQL
// type tag. The column set is never hardcoded per table.
type Column struct {
	Name     string
	TypeName string
}

// RowSource streams the rows of one source table. It follows the
// database/sql Rows protocol: Next, Values, and finally Err to learn
// about an iteration error. Values materializes binary-large-object
// columns into byte slices which stay valid after the next call.
type RowSource interface {
	Columns() []Column
	Next() bool
	Values() ([]any, error)
	Err() error
	Close() error
}

// Source represents the legacy store. DataFile resolves the configured
// connection locator to the on-disk database file, reporting false for
// locators which are not file-backed (in-memory, network, or archive
// variants). UpgradeSchema brings the legacy schema to its latest
// known version before any table is read, so the column sets which
// ReadTable discovers are predictable.
type Source interface {
	DataFile() (path string, ok bool)
	UpgradeSchema(ctx context.Context) error
	ReadTable(ctx context.Context, table string) (RowSource, error)
	Close() error
}

// Destination represents the new store. InsertBatch must write the
// given rows as a single batched unit of work, with a column list
// identical to the discovered source columns.
type Destination interface {
	CountRows(ctx context.Context, table string) (int64, error)
	InsertBatch(ctx context.Context, table string, cols []Column, rows [][]any) error
}

// ConsumerRegistry pauses and resumes the background task consumers
// around the copy window, so no consumer mutates the destination (or
// relies on its emptiness) while the copy is in flight. Both calls are
// best-effort over all registered consumers.
type ConsumerRegistry interface {
	PauseAll()
	ResumeAll()
}

// UseCase is the store migration orchestrator. It holds the source and
// destination stores, the consumer registry, and the table copy order.
// The table order is externally supplied configuration: every table
// must appear after all tables it references by foreign key, and the
// list must be kept in sync with the schema by whoever maintains it.
type UseCase struct {
	src       Source
	dst       Destination
	consumers ConsumerRegistry
	tables    []string

	guardTable         string
	batchSize          int
	markFailedAttempts bool
}

// New instantiates a store migration use case copying the given tables
// in the given order. Optional parameters are passed as functional
// options; see the Option type.
func New(
	src Source,
	dst Destination,
	consumers ConsumerRegistry,
	tables []string,
	opts ...Option,
) (*UseCase, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("tables list must be non-empty")
	}
	seen := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		if _, ok := seen[t]; ok {
			return nil, fmt.Errorf("duplicate table %q in copy order", t)
		}
		seen[t] = struct{}{}
	}
	uc := &UseCase{
		src:       src,
		dst:       dst,
		consumers: consumers,
		tables:    tables,

		markFailedAttempts: true,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.guardTable == "" {
		uc.guardTable = "user"
	}
	if uc.batchSize == 0 {
		uc.batchSize = 500
	}
	return uc, nil
}

// Run performs the migration attempt and reports its outcome. It never
// returns an error: failures are contained here, so the host startup
// sequence can proceed regardless of the outcome.
//
// Sequence: evaluate the guard (a failing check is a normal skip with
// zero side effects); pause consumers with the resume deferred, so it
// executes on every exit path including panics; upgrade the legacy
// schema; copy all tables in order; write the marker file whether the
// copy succeeded or failed (unless marking failed attempts was
// disabled); log the outcome with its duration.
func (uc *UseCase) Run(ctx context.Context) Report {
	dataFile, reason, ok := uc.shouldRun(ctx)
	if !ok {
		return Report{Result: ResultSkipped, SkipReason: reason}
	}
	log.Info(ctx, "migrating legacy store",
		slog.String("path", dataFile),
		slog.Int("tables", len(uc.tables)),
	)
	uc.consumers.PauseAll()
	defer uc.consumers.ResumeAll()

	start := time.Now()
	failedTable, err := uc.copyAll(ctx)
	rep := Report{
		Result:      ResultCompleted,
		Duration:    time.Since(start),
		FailedTable: failedTable,
		Err:         err,
	}
	if err != nil {
		rep.Result = ResultFailed
		log.Error(ctx, "legacy store migration failed",
			log.Err("error", err),
			log.Table(failedTable),
			log.Took(rep.Duration),
		)
	}
	if err == nil || uc.markFailedAttempts {
		mp := MarkerPath(dataFile)
		if merr := writeMarker(mp, rep); merr != nil {
			log.Error(ctx, "writing migration marker",
				log.Err("error", merr),
				slog.String("path", mp),
			)
		}
	}
	if err == nil {
		log.Info(ctx, "legacy store migration completed",
			log.Took(rep.Duration),
		)
	}
	return rep
}

// copyAll upgrades the legacy schema and copies every table in the
// configured order. There is no cross-table transaction: each batch
// commits independently, so a failure partway through leaves earlier
// tables fully migrated and the failing table partially migrated. The
// source connection is released on every exit path, best-effort.
func (uc *UseCase) copyAll(
	ctx context.Context,
) (failedTable string, err error) {
	defer func() {
		if cerr := uc.src.Close(); cerr != nil {
			log.Warn(ctx, "closing legacy store",
				log.Err("error", cerr),
			)
		}
	}()
	if err := uc.src.UpgradeSchema(ctx); err != nil {
		return "", fmt.Errorf("upgrading legacy schema: %w", err)
	}
	for _, t := range uc.tables {
		if err := uc.copyTable(ctx, t); err != nil {
			return t, fmt.Errorf("copying table %q: %w", t, err)
		}
	}
	return "", nil
}
