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

// Package tachcore implements the Tachyon hash core: the compression
// kernels, the finalization pipeline and the backend dispatcher. It is
// the bit-exact heart of the hash; callers normally reach it through the
// root tachyon package or through internal/stream for incremental input.
// It is not allocation-free: the batched round operands passed through
// the backend's function values, and treeMerge's per-level slices, are
// heap-allocated.
package tachcore

import "encoding/binary"

// Lane is a 128-bit value manipulated as two 64-bit halves. It is treated
// opaquely by the construction: XOR, 64-bit lane-wise add, the AES round
// transform and carry-less multiply are the only operations ever applied
// to it.
type Lane struct {
	Lo, Hi uint64
}

// Xor returns a ^ b.
func (a Lane) Xor(b Lane) Lane {
	return Lane{a.Lo ^ b.Lo, a.Hi ^ b.Hi}
}

// Add returns a + b with both 64-bit halves added independently (no
// carry between Lo and Hi — this is lane-wise add, not 128-bit add).
func (a Lane) Add(b Lane) Lane {
	return Lane{a.Lo + b.Lo, a.Hi + b.Hi}
}

// Bytes returns the little-endian byte encoding of the lane, low half
// first, matching the byte order every other backend must reproduce.
func (a Lane) Bytes() [16]byte {
	var out [16]byte
	binary.LittleEndian.PutUint64(out[0:8], a.Lo)
	binary.LittleEndian.PutUint64(out[8:16], a.Hi)
	return out
}

// LaneFromBytes reconstructs a Lane from its little-endian encoding.
func LaneFromBytes(b []byte) Lane {
	return Lane{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// Splat builds a lane whose two halves are both v, the shape every
// round-key and bias constant in this package is expressed in.
func Splat(v uint64) Lane { return Lane{v, v} }

// Pair builds a lane from two distinct 64-bit halves.
func Pair(lo, hi uint64) Lane { return Lane{lo, hi} }
