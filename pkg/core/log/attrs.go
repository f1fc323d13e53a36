// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"
	"time"
)

// Err returns an Attr for the given error value, resolved as a string
// by its Error method. A nil error yields the constant "no-error".
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, value.Error())
}

// Table returns an Attr holding a database table name under the
// conventional "table" key.
func Table(name string) slog.Attr {
	return slog.String("table", name)
}

// Took returns an Attr holding an operation duration under the
// conventional "took" key.
func Took(d time.Duration) slog.Attr {
	return slog.Duration("took", d)
}
