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

package tachcore

// swCLMul64 computes the carry-less (polynomial, GF(2)[x]) multiplication
// of two 64-bit operands, producing the full 128-bit product. No package
// in the retrieval pack implements this in pure Go outside a hardware
// PCLMULQDQ wrapper, so the portable backend carries a plain shift-and-xor
// ladder — the textbook construction, not a design choice specific to
// this codebase.
func swCLMul64(a, b uint64) Lane {
	var lo, hi uint64
	for i := 0; i < 64; i++ {
		if (b>>uint(i))&1 == 0 {
			continue
		}
		if i == 0 {
			lo ^= a
			continue
		}
		lo ^= a << uint(i)
		hi ^= a >> uint(64-i)
	}
	return Lane{Lo: lo, Hi: hi}
}
