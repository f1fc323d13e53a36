// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package libraryuc contains the libraries UseCase which supports the
// library related use cases:
//  1. Listing the libraries,
//  2. Adding a library and requesting its initial scan.
package libraryuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comixd/comixd/pkg/core/cerr"
	"github.com/comixd/comixd/pkg/core/log"
	"github.com/comixd/comixd/pkg/core/model"
	"github.com/comixd/comixd/pkg/core/repo"
	"github.com/google/uuid"
)

// ScanRequester asks the background scanner to walk a library root.
// A nil ScanRequester disables scan requests (e.g., when the task
// broker is not configured).
type ScanRequester interface {
	RequestScan(ctx context.Context, libraryID uuid.UUID, root string) error
}

// UseCase represents the libraries use case. It holds a database
// connection pool and the libraries repository instance (to be guided
// with the DB pool).
type UseCase struct {
	pool    repo.Pool
	libsrp  repo.Libraries
	scanner ScanRequester
}

// New instantiates a libraries use case. The scanner may be nil.
func New(
	p repo.Pool, libs repo.Libraries, scanner ScanRequester,
) *UseCase {
	return &UseCase{pool: p, libsrp: libs, scanner: scanner}
}

// List returns all libraries ordered by name.
func (libs *UseCase) List(ctx context.Context) (ls []model.Library, err error) {
	err = libs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := libs.libsrp.Conn(c)
		ls, err = q.List(ctx)
		return err
	})
	if err != nil {
		ls = nil
	}
	return
}

// Add creates a library with the given name and root directory and
// requests its initial scan. The scan request is best-effort: a
// broker failure leaves the library created and is only logged, since
// a scan can be requested again later.
func (libs *UseCase) Add(
	ctx context.Context, name, root string,
) (l *model.Library, err error) {
	if name == "" {
		return nil, cerr.BadRequest(errors.New("name must be non-empty"))
	}
	if root == "" {
		return nil, cerr.BadRequest(errors.New("root must be non-empty"))
	}
	err = libs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := libs.libsrp.Conn(c)
		l, err = q.Create(ctx, model.Library{
			ID:        uuid.New(),
			Name:      name,
			Root:      root,
			CreatedAt: time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating library: %w", err)
	}
	if libs.scanner != nil {
		if serr := libs.scanner.RequestScan(ctx, l.ID, l.Root); serr != nil {
			log.Warn(
				ctx, "could not request initial scan",
				log.Err("error", serr),
			)
		}
	}
	return l, nil
}
