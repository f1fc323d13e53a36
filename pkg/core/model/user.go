// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// User models a server account. The PasswordHash field carries a
// SCRAM-formatted hash string, never a plaintext password, so user
// rows can be copied or dumped without exposing credentials.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Admin        bool
}

// Validate checks the structural invariants of a user which are
// independent of any storage concern.
func (u *User) Validate() error {
	if !strings.Contains(u.Email, "@") {
		return errors.New("email must contain a '@'")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash must be non-empty")
	}
	return nil
}
