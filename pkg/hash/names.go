package hash

import "fmt"

var names = map[string]int{
	"murmur3": Murmur3,
	"metro":   Metro,
	"highway": Highway,
	"blake3":  Blake3,
	"xxh3":    XXH3,
}

// ByName returns the hasher registered under name. "mod" builds a modulo
// hasher from m and ignores salt, every other name ignores m.
func ByName(name string, m uint64, salt []byte) (Hasher, error) {
	if name == "mod" {
		return NewModHasher(m)
	}

	t, ok := names[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
	return New(t, salt)
}
