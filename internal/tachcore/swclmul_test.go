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

import "testing"

func TestSwCLMulZero(t *testing.T) {
	if got := swCLMul64(0, 0x1234); got != (Lane{}) {
		t.Fatalf("0 * x = %+v, want zero", got)
	}
	if got := swCLMul64(0x1234, 0); got != (Lane{}) {
		t.Fatalf("x * 0 = %+v, want zero", got)
	}
}

func TestSwCLMulOneIsIdentity(t *testing.T) {
	a := uint64(0x0123456789abcdef)
	got := swCLMul64(a, 1)
	want := Lane{Lo: a, Hi: 0}
	if got != want {
		t.Fatalf("a * 1 = %+v, want %+v", got, want)
	}
}

func TestSwCLMulCommutative(t *testing.T) {
	a := uint64(0xdeadbeefcafef00d)
	b := uint64(0x0102030405060708)
	if swCLMul64(a, b) != swCLMul64(b, a) {
		t.Fatal("carry-less multiply is not commutative")
	}
}

func TestSwCLMulNoCarry(t *testing.T) {
	// 3 = x+1, so 3*3 in GF(2)[x] is (x+1)^2 = x^2+1 = 5: the cross
	// term's coefficient of 2 vanishes mod 2. Integer 3*3 is 9, so this
	// distinguishes clmul from ordinary multiplication.
	got := swCLMul64(3, 3)
	want := Lane{Lo: 5, Hi: 0}
	if got != want {
		t.Fatalf("clmul(3,3) = %+v, want %+v", got, want)
	}
}
