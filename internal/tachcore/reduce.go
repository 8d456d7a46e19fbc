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

// reduce4to256 runs the shared five-round asymmetric AES permutation
// cascade that turns the 4 surviving lanes (from either the short
// kernel or the bulk finalizer) into the final 32-byte digest: e[0]
// then e[1]; e[2] and e[3] are computed but not output.
func reduce4to256(acc [4]Lane) [32]byte {
	ops := ensureBackend()

	bias := [4]Lane{
		{0, 0},
		Splat(InitBase[7]),
		Splat(InitBase[6]),
		Splat(InitBase[5]),
	}
	partner := [4]int{1, 0, 3, 2}

	a := ops.AESRound4(&acc, &acc)

	xs2 := a
	rks2 := [4]Lane{a[2], a[3], a[0], a[1]}
	b := ops.AESRound4(&xs2, &rks2)

	xs3 := b
	var rks3 [4]Lane
	for i := 0; i < 4; i++ {
		rks3[i] = b[partner[i]].Xor(bias[i])
	}
	c := ops.AESRound4(&xs3, &rks3)

	xs4 := c
	rks4 := [4]Lane{c[2], c[3], c[0], c[1]}
	fd := ops.AESRound4(&xs4, &rks4)

	xs5 := fd
	var rks5 [4]Lane
	for i := 0; i < 4; i++ {
		rks5[i] = fd[partner[i]].Xor(bias[i])
	}
	e := ops.AESRound4(&xs5, &rks5)

	var out [32]byte
	e0 := e[0].Bytes()
	e1 := e[1].Bytes()
	copy(out[0:16], e0[:])
	copy(out[16:32], e1[:])
	return out
}
