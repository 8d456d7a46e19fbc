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

// BulkFinalize drains a 0..511-byte tail (full 64-byte remainder chunks
// then a final padded block), tree-merges the 32-lane accumulator down
// to 4 lanes, hardens it with quadratic CLMUL, commits the total length
// and domain, optionally re-absorbs the key, and reduces to 32 bytes.
func BulkFinalize(acc BulkState, tail []byte, total uint64, domain Domain, key *[32]byte) [32]byte {
	ops := ensureBackend()
	whiten := Pair(Whitening[0], Whitening[1])

	chunkIndex := 0
	for len(tail) >= 64 {
		chunk := tail[:64]
		tail = tail[64:]
		base := chunkIndex * 4

		var xs, rks [4]Lane
		for j := 0; j < 4; j++ {
			xs[j] = LaneFromBytes(chunk[j*16 : j*16+16])
			rks[j] = whiten
		}
		d := ops.AESRound4(&xs, &rks)

		miniCompress(acc[base:base+4], d, base)
		chunkIndex++
	}

	var padded [64]byte
	copy(padded[:], tail)
	padded[len(tail)] = 0x80

	var dpad [4]Lane
	{
		var xs, rks [4]Lane
		for j := 0; j < 4; j++ {
			xs[j] = LaneFromBytes(padded[j*16 : j*16+16])
			rks[j] = whiten
		}
		out := ops.AESRound4(&xs, &rks)
		copy(dpad[:], out[:])
	}

	four := treeMerge(acc)
	four = clmulHarden(four)
	four = finalBlockCommit(four, dpad, total, domain)
	if key != nil {
		four = keyReabsorb(four, key)
	}
	return reduce4to256(four)
}

// miniCompress runs the 10-round mini-compression for a single 64-byte
// remainder chunk, in place over the 4-lane segment of the bulk
// accumulator the chunk's index selects.
func miniCompress(seg []Lane, data [4]Lane, base int) {
	ops := ensureBackend()

	var pre, acc [4]Lane
	copy(pre[:], seg)
	acc = pre
	d := data

	for r := 0; r < 10; r++ {
		var rks [4]Lane
		for i := 0; i < 4; i++ {
			rks[i] = d[i].Add(RoundKey[r]).Add(LaneOffset[base+i])
		}
		acc = ops.AESRound4(&acc, &rks)

		if r%2 == 1 {
			d[0] = d[0].Xor(acc[1])
			d[1] = d[1].Xor(acc[2])
			d[2] = d[2].Xor(acc[3])
			d[3] = d[3].Xor(acc[0])
		}

		acc = [4]Lane{acc[1], acc[2], acc[3], acc[0]}
	}

	for i := 0; i < 4; i++ {
		acc[i] = acc[i].Xor(pre[i])
	}
	copy(seg, acc[:])
}

// treeMerge folds the 32-lane accumulator down to 4 lanes across three
// levels (32->16, 16->8, 8->4), each with its own constant.
func treeMerge(acc BulkState) [4]Lane {
	cur := acc[:]
	cur = mergeLevel(cur, 16, Splat(InitBase[5]))
	cur = mergeLevel(cur, 8, Splat(InitBase[6]))
	cur = mergeLevel(cur, 4, Splat(InitBase[7]))
	var four [4]Lane
	copy(four[:], cur)
	return four
}

func mergeLevel(in []Lane, n int, m Lane) []Lane {
	ops := ensureBackend()
	out := make([]Lane, n)
	for i := 0; i < n; i += 4 {
		var xs, rks [4]Lane
		for j := 0; j < 4; j++ {
			xs[j] = in[i+j]
			rks[j] = in[i+j+n].Xor(m)
		}
		step1 := ops.AESRound4(&xs, &rks)

		var rks2 [4]Lane
		for j := 0; j < 4; j++ {
			rks2[j] = step1[j].Xor(m)
		}
		step2 := ops.AESRound4(&step1, &rks2)
		copy(out[i:i+4], step2[:])
	}
	return out
}

// clmulHarden applies the quadratic CLMUL nonlinear hardening step to
// each of the 4 surviving lanes independently.
func clmulHarden(four [4]Lane) [4]Lane {
	ops := ensureBackend()
	for i := 0; i < 4; i++ {
		cl1 := ops.CLMul(four[i].Lo, ClmulConst[0]).Xor(ops.CLMul(four[i].Hi, ClmulConst[1]))
		mid := ops.AESRound(four[i], cl1)
		cl2 := ops.CLMul(mid.Lo, mid.Hi)
		four[i] = ops.AESRound(four[i], cl1.Xor(cl2))
	}
	return four
}

// finalBlockCommit folds the padded final block and the total
// length/domain commitment into the 4 surviving lanes.
func finalBlockCommit(four, dpad [4]Lane, total uint64, domain Domain) [4]Lane {
	ops := ensureBackend()
	domU := uint64(domain)
	meta := [4]Lane{
		Pair(domU^total, Phi),
		Pair(total, domU),
		Pair(Phi, total),
		Pair(domU, Phi),
	}

	saveFinal := four
	for i := 0; i < 4; i++ {
		four[i] = four[i].Xor(meta[i]).Xor(dpad[i])
	}

	d := dpad
	for r := 0; r < 10; r++ {
		var rks [4]Lane
		for i := 0; i < 4; i++ {
			rks[i] = d[i].Add(RoundKey[r])
		}
		four = ops.AESRound4(&four, &rks)
		four = [4]Lane{four[1], four[2], four[3], four[0]}

		if r%2 == 1 {
			d[0] = d[0].Xor(four[1])
			d[1] = d[1].Xor(four[2])
			d[2] = d[2].Xor(four[3])
			d[3] = d[3].Xor(four[0])
		}
	}

	for i := 0; i < 4; i++ {
		four[i] = four[i].Xor(saveFinal[i])
	}
	return four
}

// keyReabsorb applies four key-dependent AES rounds, one per permuted
// pairing of the two key halves, fired only when a key was supplied.
func keyReabsorb(four [4]Lane, key *[32]byte) [4]Lane {
	ops := ensureBackend()
	k0 := LaneFromBytes(key[0:16])
	k1 := LaneFromBytes(key[16:32])

	patterns := [4][4]Lane{
		{k0, k1, k1, k0},
		{k1, k0, k0, k1},
		{k0, k1, k0, k1},
		{k0, k0, k1, k1},
	}
	for _, rks := range patterns {
		rks := rks
		four = ops.AESRound4(&four, &rks)
	}
	return four
}
