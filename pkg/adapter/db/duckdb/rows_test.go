// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBinaryType(t *testing.T) {
	for tag, want := range map[string]bool{
		"BLOB":      true,
		"blob":      true,
		"TINYBLOB":  true,
		"BYTEA":     true,
		"VARBINARY": true,
		"BINARY":    true,
		"VARCHAR":   false,
		"TIMESTAMP": false,
		"INTEGER":   false,
		"BOOLEAN":   false,
		"":          false,
	} {
		assert.Equal(t, want, isBinaryType(tag), "tag %q", tag)
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"user"`, quoteIdent("user"))
	assert.Equal(t, `"we""ird"`, quoteIdent(`we"ird`))
}
