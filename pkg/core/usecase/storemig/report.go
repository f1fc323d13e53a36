// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storemig

import "time"

// Result classifies the outcome of one Run call.
type Result string

const (
	// ResultSkipped means a guard check failed and nothing was done.
	ResultSkipped Result = "skipped"
	// ResultCompleted means every table was copied.
	ResultCompleted Result = "completed"
	// ResultFailed means the schema upgrade or a table copy failed;
	// tables before the failing one are fully migrated, the failing
	// table and all later ones are partial or absent.
	ResultFailed Result = "failed"
)

// Report describes the outcome of one migration attempt. Run returns
// it instead of an error because the migration policy is fail-open:
// callers log the report and proceed with startup in every case.
type Report struct {
	Result      Result
	SkipReason  string        // set when Result is ResultSkipped
	Duration    time.Duration // copy window duration, zero for skips
	FailedTable string        // set when Result is ResultFailed
	Err         error         // set when Result is ResultFailed
}
