// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models. This layer may not depend on
// outer layers, while all other layers may depend on it.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Library models a root directory which is scanned for series and
// books. The catalog rows of a library live in the embedded store and
// are managed by the adapter layer repositories.
type Library struct {
	ID        uuid.UUID // library identifier
	Name      string    // display name, unique per server
	Root      string    // absolute path of the scanned directory
	CreatedAt time.Time
}
