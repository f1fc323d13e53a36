// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the comixd
// server. Commands are organized using the cobra library.
// The root command starts the web server itself, the "db" sub-command
// groups the database management actions, and the "users" sub-command
// manages user accounts.
//
//	./comixd [-c /path/of/config.yaml]            # start web server
//	./comixd db migrate [-c /path/of/config.yaml]
//	./comixd db migrate-store [-c /path/of/config.yaml]
//	./comixd users create EMAIL [--admin] [-c /path/of/config.yaml]
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/comixd/comixd/pkg/adapter/config"
	"github.com/comixd/comixd/pkg/adapter/db/duckdb"
	"github.com/comixd/comixd/pkg/adapter/db/sqlite"
	"github.com/comixd/comixd/pkg/adapter/events"
	"github.com/comixd/comixd/pkg/adapter/restful/gin"
	"github.com/comixd/comixd/pkg/adapter/restful/gin/routes"
	"github.com/comixd/comixd/pkg/core/log"
	"github.com/comixd/comixd/pkg/core/usecase/libraryuc"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "comixd",
	Short: "A self-hosted comics and ebook library server",
	Long: `A self-hosted comics and ebook library server.
It serves the catalog of libraries, series, and books over a REST API,
stores the catalog in an embedded SQLite database, and dispatches
library scans as background tasks over Kafka (when configured).
On the first start after an upgrade from a legacy installation, the
contents of the legacy embedded store are migrated into the SQLite
catalog automatically, exactly once.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.LoadFile(cfgPath)
	if err != nil {
		return fmt.Errorf("config.LoadFile(%q): %w", cfgPath, err)
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	if err = migrateSchema(ctx, p); err != nil {
		return err
	}

	registry := events.NewRegistry()
	var scanner libraryuc.ScanRequester
	if c.Kafka.Enabled {
		client, cerr := c.Kafka.NewClient()
		if cerr != nil {
			return fmt.Errorf("creating Kafka client: %w", cerr)
		}
		defer client.Close()
		producer, perr := events.NewScanTaskProducer(client)
		if perr != nil {
			return fmt.Errorf("creating scan producer: %w", perr)
		}
		defer producer.Close()
		scanner = producer
		consumer := events.NewScanTaskConsumer(
			c.Kafka.Group, client, newFsScanner(),
		)
		if err = consumer.Start(ctx); err != nil {
			return fmt.Errorf("starting scan consumer: %w", err)
		}
		defer consumer.Close()
		registry.Register(consumer)
	}

	migrateLegacyStore(ctx, c, p, registry)

	var e *gin.Engine = c.Gin.NewEngine()
	routes.Register(e, p, scanner)
	if err = e.Run(c.Gin.Address); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

func migrateSchema(ctx context.Context, p *sqlite.Pool) error {
	m, err := sqlite.NewMigrator(p)
	if err != nil {
		return fmt.Errorf("creating schema migrator: %w", err)
	}
	if err = m.Up(ctx); err != nil {
		return fmt.Errorf("migrating catalog schema: %w", err)
	}
	return nil
}

// migrateLegacyStore runs the one-time legacy store migration. A
// failure must not prevent the server from starting: the outcome is
// logged and recorded in the marker file, and the server continues
// with whatever the catalog holds.
func migrateLegacyStore(
	ctx context.Context,
	c *config.Config,
	p *sqlite.Pool,
	registry *events.Registry,
) {
	src := duckdb.New(c.Database.Legacy)
	dst, err := sqlite.NewDest(p)
	if err != nil {
		log.Error(ctx, "legacy store migration unavailable",
			log.Err("error", err))
		return
	}
	uc, err := c.Migration.NewUseCase(src, dst, registry)
	if err != nil {
		log.Error(ctx, "legacy store migration misconfigured",
			log.Err("error", err))
		return
	}
	uc.Run(ctx)
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default
// value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
