// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/comixd/comixd/pkg/adapter/config"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
The migrate action upgrades the catalog schema to its latest version
and the migrate-store action copies a legacy embedded store into the
catalog (the same one-time migration which the server performs at
startup).`,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade the catalog schema to its latest version",
	RunE:  dbMigrate,
}

func dbMigrate(_ *cobra.Command, _ []string) error {
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
	return migrateSchema(ctx, p)
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	rootCmd.AddCommand(dbCmd)
}
