// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/comixd/comixd/pkg/core/cerr"
	"github.com/comixd/comixd/pkg/core/model"
	"github.com/comixd/comixd/pkg/core/repo"
	"github.com/comixd/comixd/pkg/core/usecase/usersuc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	repo.Conn
}

func (fakeConn) IsConn() {}

type fakePool struct {
}

func (fakePool) Conn(ctx context.Context, h repo.ConnHandler) error {
	return h(ctx, fakeConn{})
}

type fakeHasher struct {
	pass string
	err  error
}

func (h *fakeHasher) Hash(pass, salt string, iters int) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	h.pass = pass
	return "SCRAM-SHA-256$15000:salt$stored:server", nil
}

type fakeUsers struct {
	created []model.User
	count   int64
}

func (u *fakeUsers) Conn(repo.Conn) repo.UsersConnQueryer { return u }
func (u *fakeUsers) Tx(repo.Tx) repo.UsersTxQueryer       { return u }

func (u *fakeUsers) Create(
	_ context.Context, m model.User,
) (*model.User, error) {
	u.created = append(u.created, m)
	return &m, nil
}

func (u *fakeUsers) Count(context.Context) (int64, error) {
	return u.count, nil
}

func TestCreateHashesPassword(t *testing.T) {
	hasher := &fakeHasher{}
	users := &fakeUsers{}
	uc := usersuc.New(fakePool{}, users, hasher)

	u, err := uc.Create(
		context.Background(), "admin@example.com", "hunter2", true,
	)

	require.NoError(t, err)
	assert.Equal(t, "hunter2", hasher.pass)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.True(t, u.Admin)
	assert.NotEqual(t, uuid.Nil, u.ID)
	require.Len(t, users.created, 1)
	// the repository must only ever see the hash
	assert.Equal(
		t, "SCRAM-SHA-256$15000:salt$stored:server",
		users.created[0].PasswordHash,
	)
}

func TestCreateRejectsBadInputs(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		uc := usersuc.New(fakePool{}, &fakeUsers{}, &fakeHasher{})
		_, err := uc.Create(
			context.Background(), "not-an-email", "hunter2", false,
		)
		var ce *cerr.Error
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, http.StatusBadRequest, ce.HTTPStatusCode)
	})
	t.Run("unhashable password", func(t *testing.T) {
		hasher := &fakeHasher{err: errors.New("empty password")}
		users := &fakeUsers{}
		uc := usersuc.New(fakePool{}, users, hasher)
		_, err := uc.Create(
			context.Background(), "a@example.com", "", false,
		)
		var ce *cerr.Error
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, http.StatusBadRequest, ce.HTTPStatusCode)
		assert.Empty(t, users.created)
	})
}

func TestCount(t *testing.T) {
	uc := usersuc.New(fakePool{}, &fakeUsers{count: 42}, &fakeHasher{})
	n, err := uc.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 42, n)
}
