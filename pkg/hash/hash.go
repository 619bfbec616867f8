package hash

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/alecthomas/unsafeslice"
	"github.com/minio/highwayhash"
	"github.com/shivakar/metrohash"
	"github.com/twmb/murmur3"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

const (
	SaltLength = 32

	Murmur3 = iota
	Metro
	Highway
	Blake3
	XXH3
)

var (
	ErrUnknownHash        = fmt.Errorf("cannot create a hasher of unknown hash type")
	ErrSaltLengthMismatch = fmt.Errorf("provided salt is not %d length", SaltLength)
	ErrZeroModulus        = errors.New("modulus must be positive")
)

// Hasher maps a key to a position hint. Implementations must be
// deterministic; the caller reduces the result modulo its table size.
type Hasher interface {
	Hash(key uint64) uint64
}

// New creates a salted hasher of type t
func New(t int, salt []byte) (Hasher, error) {
	switch t {
	case Murmur3:
		return NewMurmur3Hasher(salt)
	case Metro:
		return NewMetroHasher(salt)
	case Highway:
		return NewHighwayHasher(salt)
	case Blake3:
		return NewBlake3Hasher(salt)
	case XXH3:
		return NewXXH3Hasher(salt)
	default:
		return nil, ErrUnknownHash
	}
}

// KeyBytes returns the in-memory byte view of key, in the native byte
// order, which is what the byte oriented hashers consume. Salted hash
// values are therefore only stable on machines of the same endianness.
func KeyBytes(key uint64) []byte {
	return unsafeslice.ByteSliceFromUint64Slice([]uint64{key})
}

// Mod is the baseline hasher: key mod modulus.
type Mod struct {
	modulus uint64
}

// NewModHasher returns a modulo hasher. The modulus has to be positive.
func NewModHasher(m uint64) (Mod, error) {
	if m == 0 {
		return Mod{}, ErrZeroModulus
	}

	return Mod{modulus: m}, nil
}

func (h Mod) Hash(key uint64) uint64 {
	return key % h.modulus
}

// Modulus returns the configured modulus
func (h Mod) Modulus() uint64 {
	return h.modulus
}

// Murmur3 implementation of Hasher
type murmur64 struct {
	salt []byte
}

// NewMurmur3Hasher returns a Murmur3 hasher that uses salt as a prefix to the
// bytes being summed
func NewMurmur3Hasher(salt []byte) (murmur64, error) {
	if len(salt) != SaltLength {
		return murmur64{}, ErrSaltLengthMismatch
	}

	return murmur64{salt: salt}, nil
}

func (t murmur64) Hash(key uint64) uint64 {
	// prepend the salt and then Sum
	p := make([]byte, 0, SaltLength+8)
	p = append(p, t.salt...)
	return murmur3.Sum64(append(p, KeyBytes(key)...))
}

// Metro Hash implementation of Hasher
type metro struct {
	salt []byte
}

// NewMetroHasher returns a metro64 hasher that uses salt as a
// prefix to the bytes being summed
func NewMetroHasher(salt []byte) (metro, error) {
	if len(salt) != SaltLength {
		return metro{}, ErrSaltLengthMismatch
	}

	return metro{salt: salt}, nil
}

func (m metro) Hash(key uint64) uint64 {
	h := metrohash.NewMetroHash64()
	h.Write(m.salt)
	h.Write(KeyBytes(key))
	return h.Sum64()
}

// HighwayHash implementation of Hasher, the salt is the 256 bit key
type highway struct {
	key []byte
}

// NewHighwayHasher returns a HighwayHash-64 hasher keyed with salt
func NewHighwayHasher(salt []byte) (highway, error) {
	if len(salt) != SaltLength {
		return highway{}, ErrSaltLengthMismatch
	}

	return highway{key: salt}, nil
}

func (h highway) Hash(key uint64) uint64 {
	return highwayhash.Sum64(KeyBytes(key), h.key)
}

// keyed blake3 implementation of Hasher, truncated to 64 bits
type blake3Hasher struct {
	key []byte
}

// NewBlake3Hasher returns a keyed blake3 hasher
func NewBlake3Hasher(salt []byte) (blake3Hasher, error) {
	if len(salt) != SaltLength {
		return blake3Hasher{}, ErrSaltLengthMismatch
	}
	// validate the key once so that Hash cannot fail
	if _, err := blake3.NewKeyed(salt); err != nil {
		return blake3Hasher{}, err
	}

	return blake3Hasher{key: salt}, nil
}

func (b blake3Hasher) Hash(key uint64) uint64 {
	h, _ := blake3.NewKeyed(b.key)
	h.Write(KeyBytes(key))
	return binary.LittleEndian.Uint64(h.Sum(nil))
}

// xxh3 implementation of Hasher, seeded with the first 8 bytes of salt
type xxh3Hasher struct {
	seed uint64
}

// NewXXH3Hasher returns a seeded xxh3 hasher
func NewXXH3Hasher(salt []byte) (xxh3Hasher, error) {
	if len(salt) != SaltLength {
		return xxh3Hasher{}, ErrSaltLengthMismatch
	}

	return xxh3Hasher{seed: binary.LittleEndian.Uint64(salt)}, nil
}

func (x xxh3Hasher) Hash(key uint64) uint64 {
	return xxh3.HashSeed(KeyBytes(key), x.seed)
}

// Func adapts an ordinary function to the Hasher interface.
type Func func(key uint64) uint64

func (f Func) Hash(key uint64) uint64 {
	return f(key)
}
