package util

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// SafeReadLine blocks until a whole line can be read or
// r returns an error. The trailing \n (or \r\n) is stripped.
func SafeReadLine(r *bufio.Reader) (line []byte, err error) {
	line, err = r.ReadBytes('\n')
	return bytes.TrimRight(line, "\r\n"), err
}

// Exhaust all the lines in r, at most n of them.
// Blank lines are skipped. A read error other than io.EOF is sent on
// errs once lines has been closed, errs is closed right after.
func Exhaust(n int64, r io.Reader) (lines <-chan []byte, errs <-chan error) {
	// make the output channels
	var (
		out = make(chan []byte)
		ec  = make(chan error, 1)
	)
	// wrap r in a bufio reader
	src := bufio.NewReader(r)
	go func() {
		defer close(ec)
		defer close(out)
		for i := int64(0); i < n; i++ {
			line, err := SafeReadLine(src)
			if len(bytes.TrimSpace(line)) != 0 {
				out <- line
			}
			if err != nil {
				if err != io.EOF {
					ec <- fmt.Errorf("error reading line #%d: %w", i+1, err)
				}
				return
			}
		}
	}()

	return out, ec
}

// ParseKey parses a base 10 unsigned key, surrounding spaces are ignored
func ParseKey(b []byte) (uint64, error) {
	key, err := strconv.ParseUint(string(bytes.TrimSpace(b)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid key %q: %w", b, err)
	}

	return key, nil
}

// ReadKeys reads up to n newline separated keys from r. The lines are
// drained even when a key fails to parse. A read error is returned along
// with the keys read before it, otherwise the first parse error is.
func ReadKeys(n int64, r io.Reader) ([]uint64, error) {
	var (
		keys     = make([]uint64, 0, n)
		firstErr error
	)
	lines, errs := Exhaust(n, r)
	for line := range lines {
		if firstErr != nil {
			continue
		}
		key, err := ParseKey(line)
		if err != nil {
			firstErr = err
			continue
		}
		keys = append(keys, key)
	}

	// keys is truncated on a read error
	if err := <-errs; err != nil {
		return keys, err
	}
	return keys, firstErr
}

// SplitKeys parses a comma separated list of keys such as "1,144,287".
// An empty string yields no keys.
func SplitKeys(s string) ([]uint64, error) {
	var keys []uint64
	for _, field := range bytes.Split([]byte(s), []byte(",")) {
		if len(bytes.TrimSpace(field)) == 0 {
			continue
		}
		key, err := ParseKey(field)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, nil
}
