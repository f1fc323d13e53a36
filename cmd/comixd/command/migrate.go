// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/comixd/comixd/pkg/adapter/config"
	"github.com/comixd/comixd/pkg/adapter/db/duckdb"
	"github.com/comixd/comixd/pkg/adapter/db/sqlite"
	"github.com/comixd/comixd/pkg/adapter/events"
	"github.com/comixd/comixd/pkg/core/usecase/storemig"
	"github.com/spf13/cobra"
)

var migrateStoreCmd = &cobra.Command{
	Use:   "migrate-store",
	Short: "Copy a legacy embedded store into the catalog",
	Long: `Copy a legacy embedded store into the catalog.
This is the same one-time migration which the server performs at
startup: it resolves the legacy store file from the configured
locator, refuses to run when the marker file exists or the catalog
already holds users, upgrades the legacy schema, and copies all
catalog tables in their dependency order. The command reports the
outcome, or the recorded outcome of an earlier attempt when the
marker file already exists.`,
	RunE: migrateStore,
}

func migrateStore(cmd *cobra.Command, _ []string) error {
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
	src := duckdb.New(c.Database.Legacy)
	dst, err := sqlite.NewDest(p)
	if err != nil {
		return fmt.Errorf("creating migration destination: %w", err)
	}
	uc, err := c.Migration.NewUseCase(src, dst, events.NewRegistry())
	if err != nil {
		return fmt.Errorf("creating migration use case: %w", err)
	}
	rep := uc.Run(ctx)
	out := cmd.OutOrStdout()
	switch rep.Result {
	case storemig.ResultCompleted:
		fmt.Fprintf(out, "migration completed in %v\n", rep.Duration)
	case storemig.ResultFailed:
		fmt.Fprintf(
			out, "migration failed at table %s: %v\n",
			rep.FailedTable, rep.Err,
		)
	case storemig.ResultSkipped:
		fmt.Fprintf(out, "migration skipped: %s\n", rep.SkipReason)
		reportEarlierAttempt(cmd, src, rep)
	}
	return nil
}

// reportEarlierAttempt prints the recorded outcome of an earlier
// attempt when the skip was caused by an existing marker file.
func reportEarlierAttempt(
	cmd *cobra.Command, src storemig.Source, rep storemig.Report,
) {
	if rep.SkipReason != storemig.SkipAlreadyMarked {
		return
	}
	dataFile, ok := src.DataFile()
	if !ok {
		return
	}
	m, err := storemig.ReadMarker(storemig.MarkerPath(dataFile))
	if err != nil {
		fmt.Fprintf(
			cmd.ErrOrStderr(), "unreadable marker file: %v\n", err,
		)
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(
		out, "earlier attempt at %v: %s (%dms)\n",
		m.MigratedAt, m.Result, m.DurationMS,
	)
	if m.Result == storemig.ResultFailed {
		fmt.Fprintf(
			out, "it failed at table %s: %s\n",
			m.FailedTable, m.Error,
		)
	}
}

func init() {
	dbCmd.AddCommand(migrateStoreCmd)
}
