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

package tachyon

import (
	"testing"

	"github.com/tachyon-project/tachyon/merkle"
)

func fillBytes(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i) + seed
	}
	return b
}

func TestHashDeterministic(t *testing.T) {
	data := []byte("Tachyon")
	if Hash(data) != Hash(data) {
		t.Fatal("Hash is not deterministic")
	}
}

func TestHashSeededDiffersFromHash(t *testing.T) {
	data := []byte("Tachyon")
	if Hash(data) == HashSeeded(data, 42) {
		t.Fatal("HashSeeded(42) matched unseeded Hash")
	}
}

func TestHashWithDomainDiffersFromGeneric(t *testing.T) {
	data := []byte("Tachyon")
	if Hash(data) == HashWithDomain(data, DomainFileChecksum) {
		t.Fatal("HashWithDomain matched the generic-domain hash")
	}
}

func TestHashKeyedDiffersFromUnkeyed(t *testing.T) {
	data := []byte("Tachyon")
	var key [32]byte
	key[0] = 0x42
	if Hash(data) == HashKeyed(data, key) {
		t.Fatal("HashKeyed matched the unkeyed hash")
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	data := []byte("Tachyon payload")
	digest := Hash(data)
	if !Verify(data, digest) {
		t.Fatal("Verify rejected a correct digest")
	}
	digest[0] ^= 0xff
	if Verify(data, digest) {
		t.Fatal("Verify accepted a corrupted digest")
	}
}

func TestVerifyMACRoundTrip(t *testing.T) {
	data := []byte("Tachyon payload")
	var key [32]byte
	key[1] = 7
	digest := HashKeyed(data, key)
	if !VerifyMAC(data, key, digest) {
		t.Fatal("VerifyMAC rejected a correct MAC")
	}

	var wrongKey [32]byte
	wrongKey[1] = 8
	if VerifyMAC(data, wrongKey, digest) {
		t.Fatal("VerifyMAC accepted a MAC under the wrong key")
	}
}

func TestDeriveKeyDeterministicAndSensitive(t *testing.T) {
	var material [32]byte
	material[0] = 1

	a := DeriveKey([]byte("session-a"), material)
	b := DeriveKey([]byte("session-a"), material)
	if a != b {
		t.Fatal("DeriveKey is not deterministic")
	}

	c := DeriveKey([]byte("session-b"), material)
	if a == c {
		t.Fatal("DeriveKey ignored the context argument")
	}
}

func TestStreamingHasherMatchesOneShot(t *testing.T) {
	data := fillBytes(10000, 5)
	h := New(DomainGeneric, 0, nil)
	h.Update(data[:4000])
	h.Update(data[4000:])
	got := h.Finalize()

	want := HashFull(data, DomainGeneric, 0, nil)
	if got != want {
		t.Fatalf("streaming Hasher digest %x, want one-shot %x", got, want)
	}
}

func TestLargeInputMatchesParallelDispatcher(t *testing.T) {
	data := fillBytes(600000, 11)
	want := HashFull(data, DomainGeneric, 0, nil)
	got := merkle.HashParallel(data, DomainGeneric, 0, nil, 4)
	if got != want {
		t.Fatalf("HashFull (streaming) = %x, merkle.HashParallel = %x", want, got)
	}
}

func TestUserDomainRejectsOutOfRange(t *testing.T) {
	if _, err := UserDomain(1 << 20); err == nil {
		t.Fatal("expected an error for an out-of-range user domain id")
	}
}

func TestActiveBackendNonEmpty(t *testing.T) {
	if ActiveBackend() == "" {
		t.Fatal("ActiveBackend returned an empty string")
	}
}
