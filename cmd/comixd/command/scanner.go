// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/comixd/comixd/pkg/core/log"
	"github.com/google/uuid"
)

// bookExtensions are the archive formats which the scanner recognizes
// as books.
var bookExtensions = map[string]bool{
	".cbz":  true,
	".cbr":  true,
	".epub": true,
	".pdf":  true,
}

// fsScanner walks a library root and reports the book files it finds.
// TODO: reconcile the findings with the catalog instead of only
// counting them.
type fsScanner struct {
}

func newFsScanner() *fsScanner {
	return &fsScanner{}
}

func (s *fsScanner) ScanLibrary(
	ctx context.Context, libraryID uuid.UUID, root string,
) error {
	var books int
	err := filepath.WalkDir(
		root,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if bookExtensions[ext] {
				books++
			}
			return nil
		},
	)
	if err != nil {
		return err
	}
	log.Info(
		ctx, "library scan finished",
		slog.String("library", libraryID.String()),
		slog.String("root", root),
		slog.Int("books", books),
	)
	return nil
}
