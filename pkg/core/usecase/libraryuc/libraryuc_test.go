// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package libraryuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/comixd/comixd/pkg/core/cerr"
	"github.com/comixd/comixd/pkg/core/model"
	"github.com/comixd/comixd/pkg/core/repo"
	"github.com/comixd/comixd/pkg/core/usecase/libraryuc"
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

type fakeLibraries struct {
	libs []model.Library
}

func (l *fakeLibraries) Conn(repo.Conn) repo.LibrariesConnQueryer {
	return l
}

func (l *fakeLibraries) Tx(repo.Tx) repo.LibrariesTxQueryer {
	return l
}

func (l *fakeLibraries) List(context.Context) ([]model.Library, error) {
	return l.libs, nil
}

func (l *fakeLibraries) Create(
	_ context.Context, m model.Library,
) (*model.Library, error) {
	l.libs = append(l.libs, m)
	return &m, nil
}

type fakeScanner struct {
	requests []uuid.UUID
	err      error
}

func (s *fakeScanner) RequestScan(
	_ context.Context, libraryID uuid.UUID, root string,
) error {
	if s.err != nil {
		return s.err
	}
	s.requests = append(s.requests, libraryID)
	return nil
}

func TestAddCreatesLibraryAndRequestsScan(t *testing.T) {
	libs := &fakeLibraries{}
	scanner := &fakeScanner{}
	uc := libraryuc.New(fakePool{}, libs, scanner)

	l, err := uc.Add(context.Background(), "Comics", "/data/comics")

	require.NoError(t, err)
	assert.Equal(t, "Comics", l.Name)
	assert.Equal(t, "/data/comics", l.Root)
	assert.NotEqual(t, uuid.Nil, l.ID)
	assert.False(t, l.CreatedAt.IsZero())
	require.Len(t, libs.libs, 1)
	assert.Equal(t, []uuid.UUID{l.ID}, scanner.requests)
}

func TestAddSurvivesScanRequestFailure(t *testing.T) {
	libs := &fakeLibraries{}
	scanner := &fakeScanner{err: errors.New("broker down")}
	uc := libraryuc.New(fakePool{}, libs, scanner)

	l, err := uc.Add(context.Background(), "Comics", "/data/comics")

	require.NoError(t, err)
	require.NotNil(t, l)
	require.Len(t, libs.libs, 1)
}

func TestAddWorksWithoutScanner(t *testing.T) {
	uc := libraryuc.New(fakePool{}, &fakeLibraries{}, nil)
	_, err := uc.Add(context.Background(), "Comics", "/data/comics")
	require.NoError(t, err)
}

func TestAddValidatesInputs(t *testing.T) {
	uc := libraryuc.New(fakePool{}, &fakeLibraries{}, nil)
	for name, args := range map[string][2]string{
		"empty name": {"", "/data/comics"},
		"empty root": {"Comics", ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Add(context.Background(), args[0], args[1])
			var ce *cerr.Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, http.StatusBadRequest, ce.HTTPStatusCode)
		})
	}
}

func TestList(t *testing.T) {
	libs := &fakeLibraries{libs: []model.Library{
		{ID: uuid.New(), Name: "Comics"},
		{ID: uuid.New(), Name: "Manga"},
	}}
	uc := libraryuc.New(fakePool{}, libs, nil)

	ls, err := uc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, ls, 2)
	assert.Equal(t, "Comics", ls[0].Name)
}
