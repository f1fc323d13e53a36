// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"net/http"

	"github.com/comixd/comixd/pkg/adapter/db/sqlite/librariesrp"
	"github.com/comixd/comixd/pkg/adapter/restful/gin/librariesrs"
	"github.com/comixd/comixd/pkg/core/repo"
	"github.com/comixd/comixd/pkg/core/usecase/libraryuc"
	"github.com/gin-gonic/gin"
)

// Register instantiates relevant repositories and use cases. The p
// connections pool is passed to the use case instances, so they may
// acquire/release connections and transactions on demand. These
// connections/transactions will be passed to the repositories later
// in order to run relevant queries on them and accomplish those use
// cases. Each use case package is named like libraryuc and each
// repository package is named like librariesrp. Register instantiates
// a series of "resource" structs, from packages which are named like
// librariesrs, in order to adapt the use cases interfaces with the
// REST APIs. These resources are registered as request handlers using
// the e gin-gonic engine instance. The scanner may be nil when no
// task broker is configured.
func Register(
	e *gin.Engine, p repo.Pool, scanner libraryuc.ScanRequester,
) {
	libsRepo := librariesrp.New()
	libsUseCase := libraryuc.New(p, libsRepo, scanner)

	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r := e.Group("/api/comixd/v1")
	librariesrs.Register(r, libsUseCase)
}
