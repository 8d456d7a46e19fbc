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

// Package stream implements the Tachyon streaming driver: a
// buffer-until-chunk, Merkle-stack state machine that lets a caller feed
// arbitrarily large input in pieces and converges on the same digest the
// one-shot bulk kernel would produce.
package stream

import (
	"errors"

	"github.com/google/uuid"
)

// ErrFinalized is the value Update and Finalize panic with once a Hasher
// has already been finalized; the zero value also triggers it, since a
// Hasher that was never constructed through New behaves as if already
// finalized.
var ErrFinalized = errors.New("tachyon: hasher already finalized")

// DebugID returns the UUID New tagged this Hasher with. It exists purely
// to let tests and diagnostics tell concurrently created streaming
// states apart in failure output; it plays no role in the digest.
func (h *Hasher) DebugID() uuid.UUID {
	return h.debugID
}
