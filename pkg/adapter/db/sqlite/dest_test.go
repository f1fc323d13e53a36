// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package sqlite

import (
	"testing"

	"github.com/comixd/comixd/pkg/core/usecase/storemig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertStatement(t *testing.T) {
	cols := []storemig.Column{
		{Name: "id", TypeName: "VARCHAR"},
		{Name: "name", TypeName: "VARCHAR"},
		{Name: "thumbnail", TypeName: "BLOB"},
	}
	assert.Equal(
		t,
		`INSERT INTO "media" ("id", "name", "thumbnail")`+
			` VALUES (?, ?, ?)`,
		insertStatement("media", cols),
	)
}

func TestInsertStatementQuotesReservedNames(t *testing.T) {
	cols := []storemig.Column{{Name: "order", TypeName: "INTEGER"}}
	assert.Equal(
		t,
		`INSERT INTO "user" ("order") VALUES (?)`,
		insertStatement("user", cols),
	)
}

func TestScriptVersion(t *testing.T) {
	v, err := scriptVersion("0002_catalog_indexes.sql")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = scriptVersion("notes.sql")
	assert.Error(t, err)
}
