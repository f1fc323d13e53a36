// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interface for a Salted Challenge
// Response Authentication Mechanism (SCRAM) hasher. The implementation
// lives in the adapter layer (pkg/adapter/hash/scram); the use cases
// layer only needs to turn a plaintext password into a standard scram
// hash string before it is stored in the user table, so dumping or
// migrating that table never exposes plaintext credentials.
package scram

// Hasher computes scram hash strings for a fixed underlying hash
// function (e.g., SHA256). The username is not asked because it does
// not affect the storedKey and serverKey values.
type Hasher interface {
	// Hash computes a hash string following the standard scram hash
	// format:
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	//
	// The pass argument must be non-empty. The salt must contain a
	// base64 encoding of the desired salt bytes; if empty, a random
	// salt is generated. The iters must be at least 4096 (RFC 7677
	// recommends 15000 or more).
	Hash(pass, salt string, iters int) (string, error)
}
