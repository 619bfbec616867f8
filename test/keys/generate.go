package keys

import (
	crand "crypto/rand"
	"encoding/binary"
	"log"
	"math/rand"
	"strconv"
)

// Random writes n keys drawn from crypto/rand to a channel and then
// closes it. When bound is positive keys are reduced modulo bound.
func Random(n int, bound uint64) <-chan uint64 {
	out := make(chan uint64)
	go func() {
		defer close(out)
		var b [8]byte
		for i := 0; i < n; i++ {
			if _, err := crand.Read(b[:]); err != nil {
				log.Fatalf("could not generate key #%d: %v", i, err)
			}
			out <- reduce(binary.LittleEndian.Uint64(b[:]), bound)
		}
	}()
	return out
}

// Seeded writes n keys drawn from a math/rand source seeded with seed,
// the same seed always yields the same keys.
func Seeded(seed int64, n int, bound uint64) <-chan uint64 {
	out := make(chan uint64)
	go func() {
		defer close(out)
		r := rand.New(rand.NewSource(seed))
		for i := 0; i < n; i++ {
			out <- reduce(r.Uint64(), bound)
		}
	}()
	return out
}

// Format a key as a base 10 line terminated by \n
func Format(key uint64) []byte {
	return append(strconv.AppendUint(nil, key, 10), '\n')
}

func reduce(key, bound uint64) uint64 {
	if bound == 0 {
		return key
	}
	return key % bound
}
