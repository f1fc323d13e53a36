// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storemig

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// MarkerSuffix is appended to the legacy store file path in order to
// derive the marker file path. The marker existence is the sole
// persisted record that a migration attempt occurred; it is created
// exactly once and never deleted by this system.
const MarkerSuffix = ".migrated"

// MarkerPath derives the marker file path from the resolved legacy
// store file path.
func MarkerPath(dataFile string) string {
	return dataFile + MarkerSuffix
}

// Marker is the persisted content of the marker file. Existence alone
// still means "an attempt was made"; the content additionally records
// whether that attempt completed, so operators can tell a partially
// populated destination apart from a fully migrated one.
type Marker struct {
	Result      Result    `json:"result"`
	DurationMS  int64     `json:"duration_ms"`
	FailedTable string    `json:"failed_table,omitempty"`
	Error       string    `json:"error,omitempty"`
	MigratedAt  time.Time `json:"migrated_at"`
}

// ReadMarker loads and decodes a marker file. It is not used by the
// migration itself (the guard only checks existence) but by the
// migrate-store CLI command for reporting an earlier attempt.
func ReadMarker(path string) (*Marker, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	var m Marker
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return &m, nil
}

func writeMarker(path string, rep Report) error {
	m := Marker{
		Result:      rep.Result,
		DurationMS:  rep.Duration.Milliseconds(),
		FailedTable: rep.FailedTable,
		MigratedAt:  time.Now().UTC(),
	}
	if rep.Err != nil {
		m.Error = rep.Err.Error()
	}
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding marker: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}
