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

// Package merkle provides an optional, external parallel dispatcher for
// hashing large inputs: it computes the same Merkle tree a sequential
// stream.Hasher would, but fans the leaf hashing out across a worker
// pool first.
package merkle

import (
	"encoding/binary"
	"sync"

	"github.com/dchest/siphash"

	"github.com/tachyon-project/tachyon/internal/bitops"
	"github.com/tachyon-project/tachyon/internal/tachcore"
)

// shardFor picks which worker in [0, workers) drains chunk i, using the
// same siphash-bucket-selection technique ion/zion uses to pick a
// symbol's bucket: hash the index, reduce it modulo the worker count.
// The assignment is static and decided up front — chunk i's hash always
// lands at leaves[i] regardless of which worker computed it, so the
// assignment has no effect on the resulting digest.
func shardFor(i, workers int) int {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i))
	h := siphash.Hash(0, uint64(workers), buf[:])
	return int(h % uint64(workers))
}

// HashParallel hashes data the way stream.Hasher would, but computes
// the 256 KiB leaf hashes concurrently across workers goroutines before
// folding them into the same Merkle tree shape the serial driver
// produces. workers <= 1 runs all leaf hashing on one spawned goroutine.
func HashParallel(data []byte, domain tachcore.Domain, seed uint64, key *[32]byte, workers int) [32]byte {
	if len(data) < tachcore.LeafSize {
		return tachcore.Hash(data, domain, seed, key)
	}
	workers = bitops.Max(workers, 1)

	nChunks := int(bitops.ChunkCount(uint64(len(data)), uint64(tachcore.LeafSize)))

	leaves := make([][32]byte, nChunks)
	assignment := make([][]int, workers)
	for i := 0; i < nChunks; i++ {
		w := shardFor(i, workers)
		assignment[w] = append(assignment[w], i)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		if len(assignment[w]) == 0 {
			continue
		}
		wg.Add(1)
		go func(indices []int) {
			defer wg.Done()
			for _, i := range indices {
				start := i * tachcore.LeafSize
				end := bitops.Min(start+tachcore.LeafSize, len(data))
				leaves[i] = tachcore.BulkHash(data[start:end], tachcore.DomainLeaf, seed, key)
			}
		}(assignment[w])
	}
	wg.Wait()

	root := foldLeaves(leaves, seed, key)

	var commit [48]byte
	copy(commit[0:32], root[:])
	putLE64(commit[32:40], uint64(domain))
	putLE64(commit[40:48], uint64(len(data)))

	return tachcore.BulkHash(commit[:], tachcore.DomainGeneric, seed, key)
}

// foldLeaves reproduces stream.Hasher's binary-counter push/fold
// exactly, so a parallel hash of the same input with the same leaf
// boundaries always equals the serial streaming digest.
func foldLeaves(leaves [][32]byte, seed uint64, key *[32]byte) [32]byte {
	var stack [tachcore.MerkleSlots][32]byte
	var usage [1]uint64

	push := func(leaf [32]byte) {
		level := 0
		cur := leaf
		for bitops.TestBit(usage[:], level) {
			var block [64]byte
			copy(block[0:32], stack[level][:])
			copy(block[32:64], cur[:])
			cur = tachcore.BulkHash(block[:], tachcore.DomainNode, seed, key)
			bitops.ClearBit(usage[:], level)
			level++
		}
		stack[level] = cur
		bitops.SetBit(usage[:], level)
	}

	for _, leaf := range leaves {
		push(leaf)
	}

	var root [32]byte
	haveRoot := false
	for level := 0; level < tachcore.MerkleSlots; level++ {
		if !bitops.TestBit(usage[:], level) {
			continue
		}
		if !haveRoot {
			root = stack[level]
			haveRoot = true
			continue
		}
		var block [64]byte
		copy(block[0:32], stack[level][:])
		copy(block[32:64], root[:])
		root = tachcore.BulkHash(block[:], tachcore.DomainNode, seed, key)
	}
	return root
}

func putLE64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
