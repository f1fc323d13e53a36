// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package librariesrs realizes the libraries resource, allowing the
// library manipulation REST APIs to be accepted and delegated to the
// library use cases respectively.
package librariesrs

import (
	"net/http"

	"github.com/comixd/comixd/pkg/adapter/restful/gin/serdser"
	"github.com/comixd/comixd/pkg/core/usecase/libraryuc"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type resource struct {
	libs *libraryuc.UseCase
}

// Register instantiates a resource adapting the libraries use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/comixd/v1/libraries
//     in order to list the libraries.
//  2. POST request to /api/comixd/v1/libraries
//     in order to add a library and request its initial scan.
func Register(r *gin.RouterGroup, libs *libraryuc.UseCase) {
	rs := &resource{libs: libs}
	r.GET("libraries", rs.ListLibraries)
	r.POST("libraries", rs.AddLibrary)
}

func (rs *resource) ListLibraries(c *gin.Context) {
	ls, err := rs.libs.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ls)
}

type libraryAddReq struct {
	Name string `json:"name" binding:"required"`
	Root string `json:"root" binding:"required"`
}

func (rs *resource) AddLibrary(c *gin.Context) {
	req := &libraryAddReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	l, err := rs.libs.Add(c, req.Name, req.Root)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}
