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

// Package bitops holds the small generic integer helpers the Merkle
// stack's occupancy bitfield and the parallel dispatcher's chunk
// arithmetic need.
package bitops

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// TestBit reports whether the k-th bit of in is set.
func TestBit[T, K constraints.Integer](in []T, k K) bool {
	return (in[uintptr(k)/(unsafe.Sizeof(in[0])*8)] & (T(1) << (uintptr(k) % (unsafe.Sizeof(in[0]) * 8)))) != 0
}

// SetBit sets the k-th bit of in — used to mark a Merkle stack slot
// occupied once a subtree hash has been written into it.
func SetBit[T, K constraints.Integer](in []T, k K) {
	in[uintptr(k)/(unsafe.Sizeof(in[0])*8)] |= T(1) << (uintptr(k) % (unsafe.Sizeof(in[0]) * 8))
}

// ClearBit clears the k-th bit of in — used when a Merkle stack slot is
// evacuated during carry-propagation.
func ClearBit[T, K constraints.Integer](in []T, k K) {
	in[uintptr(k)/(unsafe.Sizeof(in[0])*8)] &^= T(1) << (uintptr(k) % (unsafe.Sizeof(in[0]) * 8))
}

// Min returns the smaller of x and y.
func Min[T constraints.Integer](x, y T) T {
	if x <= y {
		return x
	}
	return y
}

// Max returns the greater of x and y.
func Max[T constraints.Integer](x, y T) T {
	if x >= y {
		return x
	}
	return y
}

// Clamp returns x bounded to [lo, hi].
func Clamp[T constraints.Integer](x, lo, hi T) T {
	return Max(lo, Min(x, hi))
}

// ChunkCount returns the number of chunkSize-unit chunks needed to
// cover n units — used to size the leaf array the parallel dispatcher
// hashes into.
func ChunkCount[T constraints.Unsigned](n, chunkSize T) T {
	if n == 0 {
		return 0
	}
	return (n + chunkSize - 1) / chunkSize
}
