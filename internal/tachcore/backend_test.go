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

func TestActiveBackendStable(t *testing.T) {
	first := ActiveBackend()
	if first == "" {
		t.Fatal("ActiveBackend returned empty name")
	}
	for i := 0; i < 5; i++ {
		if got := ActiveBackend(); got != first {
			t.Fatalf("backend changed across calls: %q then %q", first, got)
		}
	}
}

func TestPortableOpsSelfConsistent(t *testing.T) {
	ops := portableOps()
	x := Pair(11, 22)
	rk := Pair(33, 44)

	want := ops.AESRound(x, rk)
	var xs, rks [4]Lane
	for i := range xs {
		xs[i], rks[i] = x, rk
	}
	got := ops.AESRound4(&xs, &rks)
	for i := range got {
		if got[i] != want {
			t.Fatalf("AESRound4[%d] = %+v, want %+v (same as scalar AESRound)", i, got[i], want)
		}
	}
}
