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

// BulkState is the 32-lane accumulator the bulk kernel operates on,
// indexed acc[lane*4+elem] with lane in [0,8) and elem in [0,4).
type BulkState [32]Lane

// ShortState is the 4-lane accumulator the short kernel operates on.
type ShortState [4]Lane

// BlockSize is the size in bytes of one bulk-kernel compression block.
const BlockSize = 512

// ShortMax is the input length at which the short kernel stops being
// used: it accepts at most ShortMax-1 bytes.
const ShortMax = 64

// LeafSize is the streaming driver's Merkle leaf chunk size.
const LeafSize = 256 * 1024

// MerkleSlots is the fixed capacity of the streaming driver's Merkle
// stack; 64 slots cover any leaf count reachable at 256 KiB granularity
// (2^64 leaves would require exbibytes of input many times over).
const MerkleSlots = 64
