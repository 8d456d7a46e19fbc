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

// bulkInit builds the 32-lane initial accumulator for the bulk kernel
// from an optional seed and optional 32-byte key.
func bulkInit(seed uint64, key *[32]byte) BulkState {
	ops := ensureBackend()

	var acc BulkState
	for lane := 0; lane < 8; lane++ {
		base := InitBase[lane]
		for k := 0; k < 4; k++ {
			acc[lane*4+k] = Pair(base+2*uint64(k), base+2*uint64(k)+1)
		}
	}

	s := seed
	if s == 0 {
		s = InitBase[5]
	}
	seedRK := Pair(s, s)
	for i := 0; i < 32; i += 4 {
		var xs, rks [4]Lane
		copy(xs[:], acc[i:i+4])
		for j := 0; j < 4; j++ {
			rks[j] = seedRK
		}
		out := ops.AESRound4(&xs, &rks)
		copy(acc[i:i+4], out[:])
	}

	if key != nil {
		k0 := LaneFromBytes(key[0:16])
		k1 := LaneFromBytes(key[16:32])
		phiLane := Splat(Phi)
		k2 := k0.Xor(phiLane)
		k3 := k1.Xor(phiLane)
		keys := [4]Lane{k0, k1, k2, k3}

		for lane := 0; lane < 8; lane++ {
			var xs, rks1, rks2 [4]Lane
			copy(xs[:], acc[lane*4:lane*4+4])
			for j := 0; j < 4; j++ {
				rks1[j] = keys[j].Add(LaneOffset[lane])
				rks2[j] = keys[j]
			}
			mid := ops.AESRound4(&xs, &rks1)
			out := ops.AESRound4(&mid, &rks2)
			copy(acc[lane*4:lane*4+4], out[:])
		}
	}

	return acc
}

func rotateLanesLeft(acc *BulkState) {
	var rotated BulkState
	for lane := 0; lane < 8; lane++ {
		src := (lane + 1) % 8
		copy(rotated[lane*4:lane*4+4], acc[src*4:src*4+4])
	}
	*acc = rotated
}

func crossLaneFeedback(d *[32]Lane, acc *BulkState, stride int) {
	for lane := 0; lane < 8; lane++ {
		src := (lane + stride) % 8
		for elem := 0; elem < 4; elem++ {
			d[lane*4+elem] = d[lane*4+elem].Xor(acc[src*4+elem])
		}
	}
}

// bulkRoundPhase runs the five rounds of one phase (direct mapping for
// phase 1, offset-by-4 mapping for phase 2): per-element AES round
// against the round-key chain, cross-lane feedback at stride 3, then a
// one-step left lane rotation.
func bulkRoundPhase(acc *BulkState, d *[32]Lane, rounds [5]int, laneOffsetForData int, blockIndex uint64) {
	ops := ensureBackend()
	bLane := Splat(blockIndex)

	for _, r := range rounds {
		for lane := 0; lane < 8; lane++ {
			dataLane := (lane + laneOffsetForData) % 8
			var xs, rks [4]Lane
			copy(xs[:], acc[lane*4:lane*4+4])
			for elem := 0; elem < 4; elem++ {
				i := lane*4 + elem
				rks[elem] = d[dataLane*4+elem].Add(RoundKey[r]).Add(LaneOffset[i]).Add(bLane)
			}
			out := ops.AESRound4(&xs, &rks)
			copy(acc[lane*4:lane*4+4], out[:])
		}

		crossLaneFeedback(d, acc, 3)
		rotateLanesLeft(acc)
	}
}

func midBlockMix(acc *BulkState) {
	var rotated BulkState
	for lane := 0; lane < 8; lane++ {
		for elem := 0; elem < 4; elem++ {
			rotated[lane*4+elem] = acc[lane*4+(elem+1)%4]
		}
	}
	*acc = rotated

	for l := 0; l < 4; l++ {
		for i := 0; i < 4; i++ {
			lo := acc[i*4+l]
			hi := acc[(i+4)*4+l]
			acc[i*4+l] = lo.Xor(hi)
			acc[(i+4)*4+l] = hi.Add(lo)
		}
	}

	pairs := [4][2]int{{0, 2}, {1, 3}, {4, 6}, {5, 7}}
	for _, pr := range pairs {
		p, q := pr[0], pr[1]
		for l := 0; l < 4; l++ {
			lo := acc[p*4+l]
			hi := acc[q*4+l]
			acc[p*4+l] = lo.Xor(hi)
			acc[q*4+l] = hi.Add(lo)
		}
	}
}

func finalElementRotate(acc *BulkState) {
	var rotated BulkState
	for lane := 0; lane < 8; lane++ {
		for elem := 0; elem < 4; elem++ {
			rotated[lane*4+elem] = acc[lane*4+(elem+1)%4]
		}
	}
	*acc = rotated
}

// bulkCompressBlock absorbs exactly one 512-byte block into acc, mixing
// blockIndex into the round keys so identical blocks at different
// offsets compress differently.
func bulkCompressBlock(acc *BulkState, block []byte, blockIndex uint64) {
	ops := ensureBackend()

	var d [32]Lane
	whiten := Pair(Whitening[0], Whitening[1])
	for i := 0; i < 32; i += 4 {
		var xs, rks [4]Lane
		for j := 0; j < 4; j++ {
			xs[j] = LaneFromBytes(block[(i+j)*16 : (i+j)*16+16])
			rks[j] = whiten
		}
		out := ops.AESRound4(&xs, &rks)
		copy(d[i:i+4], out[:])
	}

	saves := *acc

	bulkRoundPhase(acc, &d, [5]int{0, 1, 2, 3, 4}, 0, blockIndex)
	midBlockMix(acc)
	bulkRoundPhase(acc, &d, [5]int{5, 6, 7, 8, 9}, 4, blockIndex)

	finalElementRotate(acc)
	for i := range acc {
		acc[i] = acc[i].Xor(saves[i])
	}
}
