// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storemig

import (
	"context"
	"log/slog"
	"os"

	"github.com/comixd/comixd/pkg/core/log"
)

// Skip reasons as reported by Report.SkipReason. Each one corresponds
// to exactly one guard check.
const (
	SkipNotFileBacked = "legacy store is not file-backed"
	SkipAlreadyMarked = "migration marker already exists"
	SkipNoSourceFile  = "legacy store file does not exist"
	SkipDestNotEmpty  = "destination store is not empty"
	SkipGuardCountErr = "destination row count failed"
)

// shouldRun evaluates the four short-circuiting guard checks. A failed
// check is a normal skip, not an error: it is logged distinctly and
// leaves zero side effects. The checks run in a fixed order so that an
// existing marker prevents any read against either store: locator
// resolution and the marker stat are pure filesystem work, and only
// the last check touches the destination.
func (uc *UseCase) shouldRun(
	ctx context.Context,
) (dataFile, reason string, ok bool) {
	path, ok := uc.src.DataFile()
	if !ok {
		log.Info(ctx, "legacy store is not file-backed, "+
			"skipping store migration")
		return "", SkipNotFileBacked, false
	}
	marker := MarkerPath(path)
	if _, err := os.Stat(marker); err == nil {
		log.Info(ctx, "legacy store migration already attempted, "+
			"skipping store migration",
			slog.String("marker", marker),
		)
		return "", SkipAlreadyMarked, false
	}
	if _, err := os.Stat(path); err != nil {
		log.Info(ctx, "no legacy store file found, "+
			"skipping store migration",
			slog.String("path", path),
		)
		return "", SkipNoSourceFile, false
	}
	n, err := uc.dst.CountRows(ctx, uc.guardTable)
	switch {
	case err != nil:
		// No side effect has happened yet, so an unreadable
		// destination is treated as one more failed guard check
		// rather than a failed attempt: no marker is written and the
		// next startup retries.
		log.Warn(ctx, "counting destination rows failed, "+
			"skipping store migration",
			log.Table(uc.guardTable),
			log.Err("error", err),
		)
		return "", SkipGuardCountErr, false
	case n != 0:
		log.Info(ctx, "destination store already contains data, "+
			"skipping store migration",
			log.Table(uc.guardTable),
			slog.Int64("rows", n),
		)
		return "", SkipDestNotEmpty, false
	}
	return path, "", true
}
