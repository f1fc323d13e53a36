// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx represents a database transaction. It is unsafe to be used
// concurrently. A transaction may be used in order to execute one or
// more SQL statements one at a time; for statement execution methods,
// see the Queryer interface. SQLite serializes writing transactions,
// so a Tx may block behind another writer until the driver busy
// timeout elapses.
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}
