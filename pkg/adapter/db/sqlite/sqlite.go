// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sqlite adapts the embedded SQLite database which holds the
// comixd catalog. It provides the connection pool and transaction
// wrappers which are consumed through the core repo interfaces, the
// schema migrator which versions the catalog tables, and the batched
// write target of the legacy store migration.
package sqlite

// SchemaVersion is the latest known catalog schema version, as
// recorded in the user_version pragma by the Migrator. It must equal
// the numeric prefix of the newest script under migrations/.
const SchemaVersion = 2
