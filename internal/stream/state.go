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

package stream

import (
	"github.com/google/uuid"

	"github.com/tachyon-project/tachyon/internal/bitops"
	"github.com/tachyon-project/tachyon/internal/tachcore"
)

// Hasher is the streaming driver's state machine: Fresh -> Absorbing* ->
// Finalized. It owns its 256 KiB chunk buffer and 64-slot Merkle stack
// outright; New allocates them and Update and Finalize never grow them.
// The kernel calls Update and Finalize make do allocate short-lived
// temporaries of their own.
type Hasher struct {
	buf    [tachcore.LeafSize]byte
	buflen int
	total  uint64

	domain tachcore.Domain
	seed   uint64
	key    *[32]byte

	stack [tachcore.MerkleSlots][32]byte
	usage [1]uint64

	finalized bool
	debugID   uuid.UUID
}

// New creates a Hasher for domain, seed, and an optional 32-byte key. A
// nil key means unkeyed. New cannot fail: there is no explicit
// allocation here the caller could usefully recover from, so unlike the
// C ABI's pointer-validating constructors, this one returns *Hasher
// directly rather than (*Hasher, error).
func New(domain tachcore.Domain, seed uint64, key *[32]byte) *Hasher {
	return &Hasher{
		domain:  domain,
		seed:    seed,
		key:     key,
		debugID: uuid.New(),
	}
}

// Update absorbs data into the Hasher. It panics if called after
// Finalize, or on a zero-value Hasher that was never built through New.
func (h *Hasher) Update(data []byte) {
	if h.finalized || h.debugID == uuid.Nil {
		panic(ErrFinalized)
	}
	h.total += uint64(len(data))

	for len(data) > 0 {
		n := copy(h.buf[h.buflen:], data)
		h.buflen += n
		data = data[n:]

		if h.buflen == len(h.buf) {
			h.flushLeaf()
		}
	}
}

// flushLeaf hashes the full chunk buffer as a Merkle leaf, pushes the
// result onto the stack, and resets the buffer for more input.
func (h *Hasher) flushLeaf() {
	leaf := tachcore.BulkHash(h.buf[:h.buflen], tachcore.DomainLeaf, h.seed, h.key)
	h.push(leaf)
	h.buflen = 0
}

// push runs the binary-counter carry-propagation merge: while the
// current level is occupied, fold that slot's hash with the new hash
// under the node domain, clear the slot and move up a level; the result
// lands in the first free level.
func (h *Hasher) push(leaf [32]byte) {
	level := 0
	cur := leaf
	for bitops.TestBit(h.usage[:], level) {
		var block [64]byte
		copy(block[0:32], h.stack[level][:])
		copy(block[32:64], cur[:])
		cur = tachcore.BulkHash(block[:], tachcore.DomainNode, h.seed, h.key)
		bitops.ClearBit(h.usage[:], level)
		level++
	}
	h.stack[level] = cur
	bitops.SetBit(h.usage[:], level)
}

// Finalize consumes the Hasher and returns its digest. Calling Update or
// Finalize again afterward panics.
func (h *Hasher) Finalize() [32]byte {
	if h.finalized || h.debugID == uuid.Nil {
		panic(ErrFinalized)
	}
	h.finalized = true

	if h.usage[0] == 0 {
		return tachcore.Hash(h.buf[:h.buflen], h.domain, h.seed, h.key)
	}

	if h.buflen > 0 {
		leaf := tachcore.BulkHash(h.buf[:h.buflen], tachcore.DomainLeaf, h.seed, h.key)
		h.push(leaf)
	}

	root := h.foldStack()

	var commit [48]byte
	copy(commit[0:32], root[:])
	putLE64(commit[32:40], uint64(h.domain))
	putLE64(commit[40:48], h.total)

	return tachcore.BulkHash(commit[:], tachcore.DomainGeneric, h.seed, h.key)
}

// foldStack reduces the occupied Merkle stack slots to a single root,
// merging lower-index (smaller subtree) slots first so the resulting
// tree shape matches whatever a conforming parallel driver produces.
func (h *Hasher) foldStack() [32]byte {
	var root [32]byte
	haveRoot := false

	for level := 0; level < tachcore.MerkleSlots; level++ {
		if !bitops.TestBit(h.usage[:], level) {
			continue
		}
		if !haveRoot {
			root = h.stack[level]
			haveRoot = true
			continue
		}
		var block [64]byte
		copy(block[0:32], h.stack[level][:])
		copy(block[32:64], root[:])
		root = tachcore.BulkHash(block[:], tachcore.DomainNode, h.seed, h.key)
	}
	return root
}

func putLE64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
