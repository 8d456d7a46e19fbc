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

package merkle

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/tachyon-project/tachyon/internal/tachcore"
)

// Tree is the serializable shape of a Merkle stack: the occupied slots
// plus the usage bitfield that says which ones are live. It lets a
// caller running a very large parallel hash job persist a stack's
// contents; no function in this package continues a hash from a loaded
// Tree.
type Tree struct {
	Stack [tachcore.MerkleSlots][32]byte
	Usage uint64
}

// SerializeTree flattens t into a zstd-compressed byte slice. The wire
// layout is the 8-byte little-endian usage bitfield followed by each
// occupied slot's 32 bytes in ascending level order.
func SerializeTree(t Tree) []byte {
	raw := make([]byte, 0, 8+bitsSet(t.Usage)*32)
	raw = appendLE64(raw, t.Usage)
	for level := 0; level < tachcore.MerkleSlots; level++ {
		if t.Usage&(1<<uint(level)) == 0 {
			continue
		}
		raw = append(raw, t.Stack[level][:]...)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		panic(err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil)
}

// LoadTree reverses SerializeTree.
func LoadTree(compressed []byte) (Tree, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return Tree{}, fmt.Errorf("merkle: opening zstd reader: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return Tree{}, fmt.Errorf("merkle: decompressing tree snapshot: %w", err)
	}
	if len(raw) < 8 {
		return Tree{}, fmt.Errorf("merkle: tree snapshot truncated: %d bytes", len(raw))
	}

	var t Tree
	t.Usage = readLE64(raw[:8])
	raw = raw[8:]
	for level := 0; level < tachcore.MerkleSlots; level++ {
		if t.Usage&(1<<uint(level)) == 0 {
			continue
		}
		if len(raw) < 32 {
			return Tree{}, fmt.Errorf("merkle: tree snapshot missing slot %d", level)
		}
		copy(t.Stack[level][:], raw[:32])
		raw = raw[32:]
	}
	return t, nil
}

func bitsSet(v uint64) int {
	n := 0
	for v != 0 {
		n++
		v &= v - 1
	}
	return n
}

func appendLE64(b []byte, v uint64) []byte {
	var tmp [8]byte
	for i := 0; i < 8; i++ {
		tmp[i] = byte(v >> (8 * i))
	}
	return append(b, tmp[:]...)
}

func readLE64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}
