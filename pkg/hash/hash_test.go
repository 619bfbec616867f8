package hash

import (
	"crypto/rand"
	"errors"
	"fmt"
	"testing"

	"github.com/alecthomas/unsafeslice"
)

var hashTypes = []int{Murmur3, Metro, Highway, Blake3, XXH3}

func makeSalt() ([]byte, error) {
	var s = make([]byte, SaltLength)

	if n, err := rand.Read(s); err != nil {
		return nil, err
	} else if n != SaltLength {
		return nil, fmt.Errorf("requested %d rand bytes and got %d", SaltLength, n)
	} else {
		return s, nil
	}
}

func TestModHasher(t *testing.T) {
	modTests := []struct {
		m, key, want uint64
	}{
		{13, 24, 11},
		{13, 13, 0},
		{11, 144, 1},
		{1, 987654321, 0},
		{17, 0, 0},
		{13, ^uint64(0), ^uint64(0) % 13},
	}

	for _, tt := range modTests {
		h, err := NewModHasher(tt.m)
		if err != nil {
			t.Fatalf("NewModHasher(%d): %v", tt.m, err)
		}
		if h.Modulus() != tt.m {
			t.Errorf("Modulus: want: %d, got: %d", tt.m, h.Modulus())
		}
		if got := h.Hash(tt.key); got != tt.want {
			t.Errorf("Mod(%d).Hash(%d): want: %d, got: %d", tt.m, tt.key, tt.want, got)
		}
	}
}

func TestZeroModulus(t *testing.T) {
	if _, err := NewModHasher(0); !errors.Is(err, ErrZeroModulus) {
		t.Fatalf("NewModHasher(0) should fail with ErrZeroModulus, got %v", err)
	}
}

func TestUnknownHasher(t *testing.T) {
	s, _ := makeSalt()
	h, err := New(666, s)
	if err != ErrUnknownHash {
		t.Fatalf("requested impossible hasher and got %v", h)
	}
}

func TestSaltLengthMismatch(t *testing.T) {
	for _, typ := range hashTypes {
		if _, err := New(typ, make([]byte, SaltLength-1)); err != ErrSaltLengthMismatch {
			t.Errorf("hasher type %d accepted a short salt, err: %v", typ, err)
		}
	}
}

func TestDeterministic(t *testing.T) {
	s, err := makeSalt()
	if err != nil {
		t.Fatal(err)
	}

	for _, typ := range hashTypes {
		h1, err := New(typ, s)
		if err != nil {
			t.Fatalf("New(%d): %v", typ, err)
		}
		h2, _ := New(typ, s)

		for key := uint64(0); key < 1000; key++ {
			a, b := h1.Hash(key), h1.Hash(key)
			if a != b {
				t.Fatalf("hasher type %d is not deterministic for key %d: %d != %d", typ, key, a, b)
			}
			if c := h2.Hash(key); a != c {
				t.Fatalf("two hashers of type %d with the same salt disagree on key %d", typ, key)
			}
		}
	}
}

func TestSaltChangesOutput(t *testing.T) {
	s1, _ := makeSalt()
	s2 := make([]byte, SaltLength)
	copy(s2, s1)
	s2[0] ^= 0xff
	// xxh3 only seeds with the first 8 bytes, flipping byte 0 covers it too

	for _, typ := range hashTypes {
		h1, _ := New(typ, s1)
		h2, _ := New(typ, s2)
		same := 0
		for key := uint64(0); key < 64; key++ {
			if h1.Hash(key) == h2.Hash(key) {
				same++
			}
		}
		if same == 64 {
			t.Errorf("hasher type %d ignores its salt", typ)
		}
	}
}

func TestByName(t *testing.T) {
	s, _ := makeSalt()

	h, err := ByName("mod", 13, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := h.Hash(24); got != 11 {
		t.Errorf("ByName(mod, 13).Hash(24): want: 11, got: %d", got)
	}

	for name := range names {
		if _, err := ByName(name, 0, s); err != nil {
			t.Errorf("ByName(%s): %v", name, err)
		}
	}

	if _, err := ByName("crc32", 0, s); !errors.Is(err, ErrUnknownHash) {
		t.Errorf("ByName(crc32) should fail with ErrUnknownHash, got %v", err)
	}
	if _, err := ByName("mod", 0, nil); !errors.Is(err, ErrZeroModulus) {
		t.Errorf("ByName(mod, 0) should fail with ErrZeroModulus, got %v", err)
	}
}

func TestFunc(t *testing.T) {
	var h Hasher = Func(func(key uint64) uint64 { return key * 2 })
	if got := h.Hash(21); got != 42 {
		t.Errorf("Func.Hash(21): want: 42, got: %d", got)
	}
}

func TestKeyBytes(t *testing.T) {
	const key = 0x0102030405060708
	b := KeyBytes(key)
	if len(b) != 8 {
		t.Fatalf("KeyBytes should return 8 bytes, got %d", len(b))
	}
	// native byte order, reading the bytes back as a uint64 yields key
	if u := unsafeslice.Uint64SliceFromByteSlice(b); len(u) != 1 || u[0] != key {
		t.Errorf("KeyBytes(%#x) does not read back as the key: %v", uint64(key), u)
	}
}

func BenchmarkMod(b *testing.B) {
	h, _ := NewModHasher(13)
	for i := 0; i < b.N; i++ {
		h.Hash(uint64(i))
	}
}

func BenchmarkMurmur3(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewMurmur3Hasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash(uint64(i))
	}
}

func BenchmarkMetro(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewMetroHasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash(uint64(i))
	}
}

func BenchmarkHighway(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewHighwayHasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash(uint64(i))
	}
}

func BenchmarkBlake3(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewBlake3Hasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash(uint64(i))
	}
}

func BenchmarkXXH3(b *testing.B) {
	s, _ := makeSalt()
	h, _ := NewXXH3Hasher(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Hash(uint64(i))
	}
}
