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

// ShortHash computes the digest of an input shorter than ShortMax bytes
// using the short compression kernel. Callers must only invoke this when
// seed is 0 and no key is present — the dispatcher is responsible for
// routing seeded/keyed short inputs through the bulk path instead.
func ShortHash(data []byte, domain Domain) [32]byte {
	ops := ensureBackend()

	var block [64]byte
	copy(block[:], data)
	block[len(data)] = 0x80

	var d [4]Lane
	whiten := Pair(Whitening[0], Whitening[1])
	for i := 0; i < 4; i++ {
		d[i] = LaneFromBytes(block[i*16 : i*16+16])
	}
	d = ops.AESRound4(&d, &[4]Lane{whiten, whiten, whiten, whiten})

	L := uint64(len(data))
	domU := uint64(domain)
	meta := [4]Lane{
		Pair(domU^L, Phi),
		Pair(L, domU),
		Pair(Phi, L),
		Pair(domU, Phi),
	}

	var acc [4]Lane
	for i := 0; i < 4; i++ {
		acc[i] = ShortInit[i].Xor(meta[i]).Xor(d[i])
	}
	pre := acc

	for r := 0; r < 10; r++ {
		var rks [4]Lane
		for i := 0; i < 4; i++ {
			rks[i] = d[i].Add(RoundKey[r]).Add(LaneOffset[i])
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

	return reduce4to256(acc)
}
