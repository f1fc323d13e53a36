// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/comixd/comixd/pkg/adapter/config"
	"github.com/comixd/comixd/pkg/adapter/db/sqlite/usersrp"
	"github.com/comixd/comixd/pkg/adapter/hash/scram"
	"github.com/comixd/comixd/pkg/core/usecase/usersuc"
	"github.com/spf13/cobra"
)

var (
	userPassword string
	userAdmin    bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "User account management actions",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create EMAIL",
	Short: "Create a user account",
	Long: `Create a user account with the given email address.
The password is hashed with SCRAM-SHA-256 before it is stored, so the
catalog never holds plaintext credentials.`,
	RunE: usersCreate,
	Args: cobra.ExactArgs(1),
}

func usersCreate(cmd *cobra.Command, args []string) error {
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
	uc := usersuc.New(p, usersrp.New(), scram.SHA256())
	u, err := uc.Create(ctx, args[0], userPassword, userAdmin)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", u.Email, u.ID)
	return nil
}

func init() {
	usersCreateCmd.Flags().StringVarP(
		&userPassword, "password", "p", "", "password of the new user",
	)
	usersCreateCmd.Flags().BoolVar(
		&userAdmin, "admin", false, "grant administrator privileges",
	)
	_ = usersCreateCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(usersCreateCmd)
	rootCmd.AddCommand(usersCmd)
}
