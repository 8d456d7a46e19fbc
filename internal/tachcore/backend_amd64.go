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

//go:build amd64
// +build amd64

package tachcore

import "golang.org/x/sys/cpu"

// selectBackend picks, in order of preference, the AVX-512 VAES wide
// backend, the single-width AES-NI backend, then the portable fallback.
// golang.org/x/sys/cpu clears the AVX512 feature bits when the OS has
// not opted into saving the wider register state (it validates XCR0 via
// XGETBV before publishing cpu.X86.HasAVX512F), so gating on those
// fields alone is enough to confirm the OS has opted into the wider
// register state, without Tachyon re-parsing XCR0 itself.
func selectBackend() kernelOps {
	if cpu.X86.HasAVX512VAES && cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VPCLMULQDQ {
		return kernelOps{
			Name:      "avx512-wide",
			AESRound:  wideAESRoundScalar,
			AESRound4: wideAESRound4,
			CLMul:     wideCLMul,
		}
	}
	if cpu.X86.HasAES && cpu.X86.HasPCLMULQDQ {
		return kernelOps{
			Name:      "aesni",
			AESRound:  aesniRound,
			AESRound4: scalarAESRound4(aesniRound),
			CLMul:     aesniCLMul,
		}
	}
	return portableOps()
}

//go:noescape
//go:nosplit
func aesniRoundAsm(out, x, rk *[16]byte)

//go:noescape
//go:nosplit
func clmulAsm(out *[16]byte, a, b uint64)

//go:noescape
//go:nosplit
func vaesRound4Asm(out, xs, rks *[64]byte)

func aesniRound(x, rk Lane) Lane {
	xb := x.Bytes()
	rkb := rk.Bytes()
	var outb [16]byte
	aesniRoundAsm(&outb, &xb, &rkb)
	return LaneFromBytes(outb[:])
}

func aesniCLMul(a, b uint64) Lane {
	var outb [16]byte
	clmulAsm(&outb, a, b)
	return LaneFromBytes(outb[:])
}

// wideCLMul reuses the single-width PCLMULQDQ path: the construction
// only ever CLMULs scalar 64-bit operands one pair at a time during
// finalization (section 4.4), so there is no 4-wide batch to exploit —
// only the AES round in the bulk kernel's hot loop benefits from VAES.
func wideCLMul(a, b uint64) Lane {
	return aesniCLMul(a, b)
}

func wideAESRoundScalar(x, rk Lane) Lane {
	var xs, rks [4]Lane
	xs[0] = x
	rks[0] = rk
	out := wideAESRound4(&xs, &rks)
	return out[0]
}

// wideAESRound4 applies the AES round transform to four independent
// (state, key) pairs with a single 512-bit VAESENC. The bulk kernel
// groups its 32 lanes into 8 such quads, one per outer lane, so this
// is the natural batch width for the wide backend.
func wideAESRound4(xs, rks *[4]Lane) [4]Lane {
	var xb, rkb, outb [64]byte
	for i := 0; i < 4; i++ {
		copy(xb[i*16:i*16+16], sliceOf(xs[i].Bytes()))
		copy(rkb[i*16:i*16+16], sliceOf(rks[i].Bytes()))
	}
	vaesRound4Asm(&outb, &xb, &rkb)
	var out [4]Lane
	for i := 0; i < 4; i++ {
		out[i] = LaneFromBytes(outb[i*16 : i*16+16])
	}
	return out
}

func sliceOf(b [16]byte) []byte { return b[:] }
