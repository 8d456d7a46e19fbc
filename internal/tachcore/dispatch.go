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

// BulkHash runs the full bulk kernel over data: init, one
// bulkCompressBlock per full 512-byte block, then BulkFinalize over
// whatever is left (0..511 bytes). The Merkle tree split for large
// inputs lives in the stream package, which calls this helper once per
// leaf, once per interior node and once for the final commit block.
func BulkHash(data []byte, domain Domain, seed uint64, key *[32]byte) [32]byte {
	acc := bulkInit(seed, key)

	nblocks := len(data) / BlockSize
	for b := 0; b < nblocks; b++ {
		bulkCompressBlock(&acc, data[b*BlockSize:(b+1)*BlockSize], uint64(b))
	}

	tail := data[nblocks*BlockSize:]
	return BulkFinalize(acc, tail, uint64(len(data)), domain, key)
}

// Hash selects between the short and bulk kernels: inputs under
// ShortMax bytes with the default seed and no key take the short path,
// everything else goes through the bulk kernel. It does not perform
// the Merkle-tree split for inputs at or above LeafSize — that split
// lives one layer up, in the streaming driver, since it needs to
// reason about chunk boundaries this package has no notion of.
func Hash(data []byte, domain Domain, seed uint64, key *[32]byte) [32]byte {
	if len(data) < ShortMax && seed == 0 && key == nil {
		return ShortHash(data, domain)
	}
	return BulkHash(data, domain, seed, key)
}
