// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"testing"

	"github.com/comixd/comixd/pkg/adapter/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	c, err := config.Load([]byte(`
version: 1
database:
  path: /tmp/catalog.sqlite
`))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/catalog.sqlite", c.Database.Path)
	assert.Empty(t, c.Database.Legacy)
	assert.Equal(t, ":8080", c.Gin.Address)
	require.NotNil(t, c.Gin.Logger)
	assert.True(t, *c.Gin.Logger)
	require.NotNil(t, c.Gin.Recovery)
	assert.True(t, *c.Gin.Recovery)
	assert.False(t, c.Kafka.Enabled)
	assert.Nil(t, c.Migration.MarkFailedAttempts)
}

func TestLoadKeepsExplicitSettings(t *testing.T) {
	c, err := config.Load([]byte(`
version: 1
database:
  path: /tmp/catalog.sqlite
  legacy: "duckdb:/tmp/legacy/catalog;ACCESS_MODE=read_only"
gin:
  address: ":9090"
  logger: false
kafka:
  enabled: true
  brokers: [localhost:9092]
migration:
  guard-table: library
  batch-size: 100
  mark-failed-attempts: false
`))
	require.NoError(t, err)
	assert.Equal(
		t, "duckdb:/tmp/legacy/catalog;ACCESS_MODE=read_only",
		c.Database.Legacy,
	)
	assert.Equal(t, ":9090", c.Gin.Address)
	require.NotNil(t, c.Gin.Logger)
	assert.False(t, *c.Gin.Logger)
	assert.Equal(t, "comixd", c.Kafka.Group)
	assert.Equal(t, "library", c.Migration.GuardTable)
	assert.Equal(t, 100, c.Migration.BatchSize)
	require.NotNil(t, c.Migration.MarkFailedAttempts)
	assert.False(t, *c.Migration.MarkFailedAttempts)
}

func TestLoadRejectsBadConfigs(t *testing.T) {
	for name, doc := range map[string]string{
		"version mismatch": `
version: 2
database:
  path: /tmp/catalog.sqlite
`,
		"missing database path": `
version: 1
`,
		"enabled kafka without brokers": `
version: 1
database:
  path: /tmp/catalog.sqlite
kafka:
  enabled: true
`,
		"not yaml": `{{`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestDefaultTablesDependencyOrder(t *testing.T) {
	tables := config.DefaultTables()
	require.Len(t, tables, 14)

	pos := make(map[string]int, len(tables))
	for i, table := range tables {
		pos[table] = i
	}
	// every table must come after the tables it references
	for child, parents := range map[string][]string{
		"user_library_sharing": {"user", "library"},
		"series":               {"library"},
		"series_metadata":      {"series"},
		"book":                 {"series", "library"},
		"media":                {"book"},
		"media_page":           {"book"},
		"media_file":           {"book"},
		"book_metadata":        {"book"},
		"book_metadata_author": {"book"},
		"read_progress":        {"book", "user"},
		"collection_series":    {"collection", "series"},
	} {
		for _, parent := range parents {
			assert.Less(
				t, pos[parent], pos[child],
				"%s must be copied before %s", parent, child,
			)
		}
	}
}
