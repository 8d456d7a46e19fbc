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
	"testing"

	"github.com/tachyon-project/tachyon/internal/stream"
	"github.com/tachyon-project/tachyon/internal/tachcore"
)

func fillBytes(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i) + seed
	}
	return b
}

func TestHashParallelBelowLeafMatchesOneShot(t *testing.T) {
	data := fillBytes(1000, 1)
	got := HashParallel(data, tachcore.DomainGeneric, 0, nil, 4)
	want := tachcore.Hash(data, tachcore.DomainGeneric, 0, nil)
	if got != want {
		t.Fatalf("HashParallel below leaf size = %x, want %x", got, want)
	}
}

func TestHashParallelMatchesSerialStreaming(t *testing.T) {
	data := fillBytes(tachcore.LeafSize*3+500, 2)

	h := stream.New(tachcore.DomainGeneric, 0, nil)
	h.Update(data)
	want := h.Finalize()

	for _, workers := range []int{1, 2, 5, 16} {
		got := HashParallel(data, tachcore.DomainGeneric, 0, nil, workers)
		if got != want {
			t.Fatalf("workers=%d: HashParallel = %x, want serial streaming digest %x", workers, got, want)
		}
	}
}

func TestHashParallelExactMultipleOfLeaf(t *testing.T) {
	data := fillBytes(tachcore.LeafSize*2, 3)

	h := stream.New(tachcore.DomainGeneric, 0, nil)
	h.Update(data)
	want := h.Finalize()

	got := HashParallel(data, tachcore.DomainGeneric, 0, nil, 3)
	if got != want {
		t.Fatalf("exact-multiple-of-leaf input: got %x, want %x", got, want)
	}
}

func TestShardForStaysInRange(t *testing.T) {
	for workers := 1; workers <= 8; workers++ {
		for i := 0; i < 50; i++ {
			w := shardFor(i, workers)
			if w < 0 || w >= workers {
				t.Fatalf("shardFor(%d, %d) = %d, out of range", i, workers, w)
			}
		}
	}
}
