// Copyright (C) 2024 Tachyon Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package tachyon implements the Tachyon keyed hash: a 256-bit,
// domain-separated, optionally-keyed hash built on hardware AES round
// instructions and carry-less multiplication, with a streaming driver
// and an external parallel dispatcher for multi-megabyte input.
//
// This construction is experimental and unaudited. It makes no
// cryptographic security claim, and digest computation itself is not
// constant-time — only Verify/VerifyMAC's final comparison is.
package tachyon

import (
	"github.com/tachyon-project/tachyon/internal/stream"
	"github.com/tachyon-project/tachyon/internal/tachcore"
)

// Domain is a 64-bit tag mixed into a digest, separating the purposes
// the same input bytes can be hashed for.
type Domain = tachcore.Domain

// Predefined domains.
const (
	DomainGeneric          = tachcore.DomainGeneric
	DomainFileChecksum     = tachcore.DomainFileChecksum
	DomainKeyDerivation    = tachcore.DomainKeyDerivation
	DomainMessageAuth      = tachcore.DomainMessageAuth
	DomainDatabaseIndex    = tachcore.DomainDatabaseIndex
	DomainContentAddressed = tachcore.DomainContentAddressed
)

// UserDomain builds a user-custom domain tag for id in [0, 65536).
func UserDomain(id uint32) (Domain, error) {
	return tachcore.UserDomain(id)
}

// ActiveBackend reports the name of the backend the dispatcher
// selected ("portable", "aesni", or "avx512-wide"). It forces backend
// selection on first call.
func ActiveBackend() string {
	return tachcore.ActiveBackend()
}

// Hash computes the unseeded, unkeyed, generic-domain digest of data.
func Hash(data []byte) [32]byte {
	return HashFull(data, DomainGeneric, 0, nil)
}

// HashSeeded computes the digest of data under a non-default seed.
func HashSeeded(data []byte, seed uint64) [32]byte {
	return HashFull(data, DomainGeneric, seed, nil)
}

// HashWithDomain computes the digest of data tagged with domain.
func HashWithDomain(data []byte, domain Domain) [32]byte {
	return HashFull(data, domain, 0, nil)
}

// HashKeyed computes the keyed digest (MAC) of data.
func HashKeyed(data []byte, key [32]byte) [32]byte {
	return HashFull(data, DomainGeneric, 0, &key)
}

// HashFull computes the digest of data with full control over domain,
// seed, and an optional key. Inputs at or above the streaming driver's
// 256 KiB leaf size are routed through the Merkle-tree streaming path;
// everything else goes straight to the bulk (or short) kernel.
func HashFull(data []byte, domain Domain, seed uint64, key *[32]byte) [32]byte {
	if len(data) >= tachcore.LeafSize {
		h := stream.New(domain, seed, key)
		h.Update(data)
		return h.Finalize()
	}
	return tachcore.Hash(data, domain, seed, key)
}

// Verify reports whether data hashes to expected, using a branch-free,
// data-independent byte comparison for the final equality check (the
// hash computation itself is not constant-time, only this comparison
// is).
func Verify(data []byte, expected [32]byte) bool {
	got := Hash(data)
	return constantTimeEqual(got, expected)
}

// VerifyMAC reports whether data hashes to expected under key, with the
// same constant-time comparison guarantee as Verify.
func VerifyMAC(data []byte, key [32]byte, expected [32]byte) bool {
	got := HashKeyed(data, key)
	return constantTimeEqual(got, expected)
}

// constantTimeEqual XORs every byte difference into one accumulator and
// folds it down to a single 0/1 decision, never branching on the
// comparison's outcome.
func constantTimeEqual(a, b [32]byte) bool {
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// DeriveKey derives a 32-byte key from context, using material as the
// keying input under the key-derivation domain.
func DeriveKey(context []byte, material [32]byte) [32]byte {
	return HashFull(context, DomainKeyDerivation, 0, &material)
}

// Hasher is the public streaming handle: Fresh -> Absorbing* ->
// Finalized, matching stream.Hasher's state machine.
type Hasher struct {
	inner *stream.Hasher
}

// New creates a Hasher for domain, seed, and an optional key.
func New(domain Domain, seed uint64, key *[32]byte) *Hasher {
	return &Hasher{inner: stream.New(domain, seed, key)}
}

// Update absorbs more input. It panics if called after Finalize.
func (h *Hasher) Update(data []byte) {
	h.inner.Update(data)
}

// Finalize returns the digest and marks the Hasher finalized. Calling
// Update or Finalize again afterward panics.
func (h *Hasher) Finalize() [32]byte {
	return h.inner.Finalize()
}

// DebugID returns a UUID unique to this Hasher instance, for telling
// concurrently-created streaming states apart in diagnostics. It plays
// no role in the digest.
func (h *Hasher) DebugID() string {
	return h.inner.DebugID().String()
}
