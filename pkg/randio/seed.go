package randio

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// KeySize is the size of the key derived from a seed.
const KeySize = sha256.Size

// randomSeedSize is the number of random bytes used when no seed is given.
const randomSeedSize = 32

// DeriveKey hashes the canonical byte form of seed.
func DeriveKey(seed any) [KeySize]byte {
	return sha256.Sum256(SeedBytes(seed))
}

// SeedBytes returns the canonical byte form of seed.
//
// Byte slices are used as-is and everything else is hashed through its string form,
// so the integer 123456 and the string "123456" derive the same key.
//
//nolint:cyclop // one case per seed kind
func SeedBytes(seed any) []byte {
	switch s := seed.(type) {
	case []byte:
		return s
	case string:
		return []byte(s)
	case int:
		return strconv.AppendInt(nil, int64(s), 10)
	case int8:
		return strconv.AppendInt(nil, int64(s), 10)
	case int16:
		return strconv.AppendInt(nil, int64(s), 10)
	case int32:
		return strconv.AppendInt(nil, int64(s), 10)
	case int64:
		return strconv.AppendInt(nil, s, 10)
	case uint:
		return strconv.AppendUint(nil, uint64(s), 10)
	case uint8:
		return strconv.AppendUint(nil, uint64(s), 10)
	case uint16:
		return strconv.AppendUint(nil, uint64(s), 10)
	case uint32:
		return strconv.AppendUint(nil, uint64(s), 10)
	case uint64:
		return strconv.AppendUint(nil, s, 10)
	case float32:
		return []byte(formatFloat(float64(s), 32))
	case float64:
		return []byte(formatFloat(s, 64))
	case bool:
		if s {
			return []byte("True")
		}

		return []byte("False")
	case fmt.Stringer:
		return []byte(s.String())
	default:
		return []byte(fmt.Sprint(seed))
	}
}

// formatFloat renders f as the shortest representation that round-trips, using
// positional notation for decimal exponents in [-4, 16) and always keeping a
// fractional part there ("100.0", "1.23456", "1e+16", "1e-05").
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, bitSize)

	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// randomSeed draws seed material from the system's secure random source.
func randomSeed() ([]byte, error) {
	b := make([]byte, randomSeedSize)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generating random seed: %w", err)
	}

	return b, nil
}
