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

func fillBytes(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i) + seed
	}
	return b
}

func TestBulkHashDeterministic(t *testing.T) {
	data := fillBytes(1500, 0)
	a := BulkHash(data, DomainGeneric, 0, nil)
	b := BulkHash(data, DomainGeneric, 0, nil)
	if a != b {
		t.Fatalf("BulkHash not deterministic: %x vs %x", a, b)
	}
}

func TestBulkHashSeedSeparation(t *testing.T) {
	data := fillBytes(100, 1)
	a := BulkHash(data, DomainGeneric, 0, nil)
	b := BulkHash(data, DomainGeneric, 1, nil)
	if a == b {
		t.Fatal("different seeds produced identical digest")
	}
}

func TestBulkHashKeySeparation(t *testing.T) {
	data := fillBytes(100, 2)
	var k1, k2 [32]byte
	k2[0] = 1
	a := BulkHash(data, DomainGeneric, 0, &k1)
	b := BulkHash(data, DomainGeneric, 0, &k2)
	if a == b {
		t.Fatal("different keys produced identical digest")
	}
	c := BulkHash(data, DomainGeneric, 0, nil)
	if a == c {
		t.Fatal("keyed and unkeyed hashes of the same input collided")
	}
}

func TestBulkHashBlockBoundaries(t *testing.T) {
	// 511, 512, 513 bytes exercise the remainder-chunk path, the
	// exact-multiple-of-BlockSize path, and crossing into a second
	// block by one byte, respectively. None should collide and none
	// should panic.
	lens := []int{0, 1, 63, 64, 511, 512, 513, 1023, 1024, 4096}
	seen := make(map[[32]byte]int)
	for _, n := range lens {
		h := BulkHash(fillBytes(n, 5), DomainGeneric, 0, nil)
		if prev, ok := seen[h]; ok {
			t.Fatalf("length %d collided with length %d", n, prev)
		}
		seen[h] = n
	}
}

func TestBulkHashMultiBlockVsSingleBlock(t *testing.T) {
	a := BulkHash(fillBytes(BlockSize, 9), DomainGeneric, 0, nil)
	b := BulkHash(fillBytes(BlockSize*3, 9), DomainGeneric, 0, nil)
	if a == b {
		t.Fatal("one block and three blocks of related data collided")
	}
}

func TestBulkInitKeyChangesState(t *testing.T) {
	var key [32]byte
	key[0] = 0xff
	withKey := bulkInit(0, &key)
	withoutKey := bulkInit(0, nil)
	if withKey == withoutKey {
		t.Fatal("keyed bulk init equals unkeyed bulk init")
	}
}
