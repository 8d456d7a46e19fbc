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

import "sync"

// kernelOps is the capability set every backend must supply: the AES
// round transform (scalar and batched-by-4), and the 64x64->128 CLMUL.
// All three concrete backends (portable, AES-NI single-width, AVX-512
// VAES wide) must produce byte-identical output through this interface.
// Selection happens once per process (memoized below) rather than per
// call — the kernel code calls through ensureBackend() and never branches
// on CPU features itself, matching the standard one-shot CPU dispatch
// idiom (see vm/avx512level.go's one-shot setavx512level).
type kernelOps struct {
	Name      string
	AESRound  func(x, rk Lane) Lane
	AESRound4 func(xs, rks *[4]Lane) [4]Lane
	CLMul     func(a, b uint64) Lane
}

var (
	backendOnce sync.Once
	activeOps   kernelOps
)

func portableOps() kernelOps {
	return kernelOps{
		Name:      "portable",
		AESRound:  swAESRound,
		AESRound4: scalarAESRound4(swAESRound),
		CLMul:     swCLMul64,
	}
}

func ensureBackend() kernelOps {
	backendOnce.Do(func() {
		activeOps = selectBackend()
	})
	return activeOps
}

// ActiveBackend reports the name of the backend the dispatcher selected.
// It forces backend selection if it has not happened yet. Intended for
// diagnostics and conformance tests, not for any decision the hash
// computation itself makes.
func ActiveBackend() string {
	return ensureBackend().Name
}
