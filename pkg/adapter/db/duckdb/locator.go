// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package duckdb

import "strings"

// StorageSuffix is the file suffix of the legacy store. The locator
// carries the path without it; callers append it to obtain the actual
// on-disk file.
const StorageSuffix = ".duckdb"

// exclusionTokens mark locator variants which are not backed by a
// local database file: in-memory stores, SSL or plain TCP client
// connections, and read-only zip archives. Matching is a
// case-insensitive substring check.
var exclusionTokens = []string{"mem:", "ssl:", "tcp:", "zip:"}

// ResolvePath extracts the filesystem path from a connection locator
// string like
//
//	legacy:duckdb:file:/var/lib/comixd/catalog;ACCESS_MODE=read_write
//
// The path is the last ':'-separated segment with any ';'-separated
// driver parameters stripped. ResolvePath reports false for locators
// containing an exclusion token and for locators yielding an empty
// path; malformed input never causes an error.
func ResolvePath(locator string) (string, bool) {
	lower := strings.ToLower(locator)
	for _, tok := range exclusionTokens {
		if strings.Contains(lower, tok) {
			return "", false
		}
	}
	segments := strings.Split(locator, ":")
	path, _, _ := strings.Cut(segments[len(segments)-1], ";")
	if path == "" {
		return "", false
	}
	return path, true
}
