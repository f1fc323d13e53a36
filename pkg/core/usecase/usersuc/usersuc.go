// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users UseCase. It creates user
// accounts with scram hashed passwords; plaintext passwords never
// reach the repository layer.
package usersuc

import (
	"context"
	"fmt"

	"github.com/comixd/comixd/pkg/core/cerr"
	"github.com/comixd/comixd/pkg/core/model"
	"github.com/comixd/comixd/pkg/core/repo"
	"github.com/comixd/comixd/pkg/core/scram"
	"github.com/google/uuid"
)

// HashIters is the scram iterations count of newly hashed passwords,
// following the RFC 7677 recommendation.
const HashIters = 15000

// UseCase represents the users use case. It holds a database
// connection pool, the users repository instance, and the scram
// hasher for password hashing.
type UseCase struct {
	pool    repo.Pool
	usersrp repo.Users
	hasher  scram.Hasher
}

// New instantiates a users use case.
func New(p repo.Pool, users repo.Users, h scram.Hasher) *UseCase {
	return &UseCase{pool: p, usersrp: users, hasher: h}
}

// Create hashes the given password and creates a user account. The
// first created account is usually an admin; the decision is left to
// the caller.
func (users *UseCase) Create(
	ctx context.Context, email, pass string, admin bool,
) (u *model.User, err error) {
	h, err := users.hasher.Hash(pass, "", HashIters)
	if err != nil {
		return nil, cerr.BadRequest(
			fmt.Errorf("hashing password: %w", err),
		)
	}
	m := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: h,
		Admin:        admin,
	}
	if err = m.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.Create(ctx, m)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// Count returns the number of user accounts.
func (users *UseCase) Count(ctx context.Context) (n int64, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		n, err = q.Count(ctx)
		return err
	})
	return
}
