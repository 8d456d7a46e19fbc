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

package bitops

import "testing"

func TestSetClearTestBit(t *testing.T) {
	var usage [1]uint64
	for bit := 0; bit < 64; bit++ {
		if TestBit(usage[:], bit) {
			t.Fatalf("bit %d set before SetBit", bit)
		}
		SetBit(usage[:], bit)
		if !TestBit(usage[:], bit) {
			t.Fatalf("bit %d not set after SetBit", bit)
		}
		ClearBit(usage[:], bit)
		if TestBit(usage[:], bit) {
			t.Fatalf("bit %d still set after ClearBit", bit)
		}
	}
}

func TestClampBounds(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("Clamp(5,0,10) = %d, want 5", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Fatalf("Clamp(-1,0,10) = %d, want 0", got)
	}
	if got := Clamp(99, 0, 10); got != 10 {
		t.Fatalf("Clamp(99,0,10) = %d, want 10", got)
	}
}

func TestChunkCount(t *testing.T) {
	cases := []struct{ n, size, want uint64 }{
		{0, 256, 0},
		{1, 256, 1},
		{256, 256, 1},
		{257, 256, 2},
		{512, 256, 2},
	}
	for _, c := range cases {
		if got := ChunkCount(c.n, c.size); got != c.want {
			t.Errorf("ChunkCount(%d,%d) = %d, want %d", c.n, c.size, got, c.want)
		}
	}
}
