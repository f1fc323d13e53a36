// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package duckdb_test

import (
	"testing"

	"github.com/comixd/comixd/pkg/adapter/db/duckdb"
	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	for _, tc := range []struct {
		name    string
		locator string
		path    string
		ok      bool
	}{
		{
			name:    "plain path",
			locator: "duckdb:/var/lib/comixd/catalog",
			path:    "/var/lib/comixd/catalog",
			ok:      true,
		},
		{
			name:    "nested scheme with parameters",
			locator: "scheme:store:file:/data/app;OTHER=1",
			path:    "/data/app",
			ok:      true,
		},
		{
			name:    "multiple parameters",
			locator: "duckdb:/data/app;ACCESS_MODE=read_only;THREADS=4",
			path:    "/data/app",
			ok:      true,
		},
		{
			name:    "in-memory store",
			locator: "duckdb:mem:testdb",
			ok:      false,
		},
		{
			name:    "uppercase exclusion token",
			locator: "duckdb:MEM:testdb",
			ok:      false,
		},
		{
			name:    "ssl client connection",
			locator: "duckdb:ssl://remote:5000/db",
			ok:      false,
		},
		{
			name:    "tcp client connection",
			locator: "duckdb:tcp://remote:5000/db",
			ok:      false,
		},
		{
			name:    "zip archive",
			locator: "duckdb:zip:/data/stores.zip!/catalog",
			ok:      false,
		},
		{
			name:    "empty locator",
			locator: "",
			ok:      false,
		},
		{
			name:    "parameters only",
			locator: "duckdb:;ACCESS_MODE=read_only",
			ok:      false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path, ok := duckdb.ResolvePath(tc.locator)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.path, path)
		})
	}
}

func TestDataFileAppendsStorageSuffix(t *testing.T) {
	s := duckdb.New("duckdb:/var/lib/comixd/legacy/catalog")
	path, ok := s.DataFile()
	assert.True(t, ok)
	assert.Equal(t, "/var/lib/comixd/legacy/catalog.duckdb", path)
}

func TestDataFileRejectsNonFileLocators(t *testing.T) {
	s := duckdb.New("duckdb:mem:catalog")
	_, ok := s.DataFile()
	assert.False(t, ok)
}
