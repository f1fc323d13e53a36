// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config loads the comixd configuration settings from a YAML
// document and exposes factory methods which instantiate the adapters
// that those settings describe. It is preferred to implement Config
// with primitive fields or other structs which are defined locally,
// not models or structs which are defined in lower layers, so the
// configuration can be versioned and kept intact while other layers
// can change freely.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/IBM/sarama"
	"github.com/comixd/comixd/pkg/adapter/db/sqlite"
	"github.com/comixd/comixd/pkg/adapter/restful/gin"
	"github.com/comixd/comixd/pkg/core/usecase/storemig"
	"gopkg.in/yaml.v3"
)

// Version is the configuration format version which this package can
// load.
const Version = 1

// DefaultTables returns the catalog tables in their dependency order,
// so a table is only copied after the tables it references. This is
// the default table list of the legacy store migration.
func DefaultTables() []string {
	return []string{
		"library",
		"user",
		"user_library_sharing",
		"series",
		"series_metadata",
		"book",
		"media",
		"media_page",
		"media_file",
		"book_metadata",
		"book_metadata_author",
		"read_progress",
		"collection",
		"collection_series",
	}
}

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases.
type Config struct {
	Version   int       // configuration format version
	Database  Database  // SQLite catalog settings
	Gin       Gin       // Gin-Gonic instantiation settings
	Kafka     Kafka     // background task broker settings
	Migration Migration // legacy store migration settings
}

// Database contains the catalog database settings.
type Database struct {
	// Path is the filesystem path of the SQLite catalog database.
	Path string
	// Legacy is the connection locator of the legacy embedded store,
	// as it appears in pre-rewrite configuration files. It may be
	// empty when no legacy store was ever configured.
	Legacy string
}

// ConnectionPool creates a database connection pool over the catalog
// database which is described by the `d` settings.
func (d Database) ConnectionPool(
	ctx context.Context,
) (*sqlite.Pool, error) {
	p, err := sqlite.NewPool(ctx, d.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.NewPool(%q): %w", d.Path, err)
	}
	return p, nil
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect whether
// they were present in the configuration file and fill the missing
// ones with their default values.
type Gin struct {
	// Address is the listening address of the REST API server.
	Address  string
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Kafka contains the background task broker settings. When Enabled is
// false, no client is created and tasks degrade to synchronous
// execution.
type Kafka struct {
	Enabled bool
	Brokers []string
	// Group is the consumer group of this comixd instance.
	Group string
}

// NewClient creates a sarama client based on the `k` settings.
func (k Kafka) NewClient() (sarama.Client, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	c, err := sarama.NewClient(k.Brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("sarama.NewClient(%v): %w", k.Brokers, err)
	}
	return c, nil
}

// Migration contains the legacy store migration settings. All fields
// are optional; zero values select the use case defaults.
type Migration struct {
	// Tables overrides the copied tables and their order.
	Tables []string
	// GuardTable overrides the table whose row count decides the
	// destination emptiness.
	GuardTable string `yaml:"guard-table"`
	// BatchSize overrides the number of rows per insert batch.
	BatchSize int `yaml:"batch-size"`
	// MarkFailedAttempts controls whether a failed migration attempt
	// still writes the run-once marker file.
	MarkFailedAttempts *bool `yaml:"mark-failed-attempts"`
}

// NewUseCase instantiates the legacy store migration use case with
// the `m` settings applied over the given source, destination, and
// consumer registry.
func (m Migration) NewUseCase(
	src storemig.Source,
	dst storemig.Destination,
	consumers storemig.ConsumerRegistry,
) (*storemig.UseCase, error) {
	tables := m.Tables
	if len(tables) == 0 {
		tables = DefaultTables()
	}
	opts := make([]storemig.Option, 0, 3)
	if m.GuardTable != "" {
		opts = append(opts, storemig.WithGuardTable(m.GuardTable))
	}
	if m.BatchSize != 0 {
		opts = append(opts, storemig.WithBatchSize(m.BatchSize))
	}
	if m.MarkFailedAttempts != nil {
		opts = append(
			opts,
			storemig.WithMarkFailedAttempts(*m.MarkFailedAttempts),
		)
	}
	return storemig.New(src, dst, consumers, tables, opts...)
}

// LoadFile function loads, validates, and normalizes the
// configuration file at the given path and returns its settings as an
// instance of the Config struct.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return c, nil
}

// Load unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. Thereafter, loaded Config will be validated and normalized
// in order to ensure that provided settings are acceptable.
func Load(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values
// with their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if c.Version != Version {
		return fmt.Errorf(
			"expecting version %d, got %d", Version, c.Version,
		)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must be set")
	}
	if c.Gin.Address == "" {
		c.Gin.Address = ":8080"
	}
	nil2True(&c.Gin.Logger)
	nil2True(&c.Gin.Recovery)
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers must be set when enabled")
		}
		if c.Kafka.Group == "" {
			c.Kafka.Group = "comixd"
		}
	}
	if c.Migration.BatchSize < 0 {
		return fmt.Errorf(
			"migration.batch-size (%d) must be positive",
			c.Migration.BatchSize,
		)
	}
	return nil
}

func nil2True(b **bool) {
	if *b == nil {
		v := true
		*b = &v
	}
}
