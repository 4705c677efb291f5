// Package seeds parses and loads the seeds streams are generated from.
package seeds

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// HexPrefix marks a textual seed as hex-encoded raw bytes.
const HexPrefix = "hex:"

// ErrInvalidSeed is returned for seeds that cannot be decoded.
var ErrInvalidSeed = errors.New("invalid seed")

// Seed is a seed value together with the text it was parsed from.
type Seed struct {
	// Text is the seed as given by the user
	Text string

	// Value is what the stream key is derived from: a string or raw bytes
	Value any
}

// String returns the seed as given by the user.
func (s Seed) String() string {
	return s.Text
}

// Parse interprets text as a seed. Text starting with "hex:" is decoded into raw bytes,
// anything else is used verbatim.
func Parse(text string) (Seed, error) {
	encoded, ok := strings.CutPrefix(text, HexPrefix)
	if !ok {
		return Seed{Text: text, Value: text}, nil
	}

	b, err := hex.DecodeString(encoded)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %q: %w", ErrInvalidSeed, text, err)
	}

	return Seed{Text: text, Value: b}, nil
}

// ParseAll parses every text in order.
func ParseAll(texts []string) ([]Seed, error) {
	out := make([]Seed, 0, len(texts))

	for _, text := range texts {
		seed, err := Parse(text)
		if err != nil {
			return nil, err
		}

		out = append(out, seed)
	}

	return out, nil
}

// FromBytes wraps raw seed bytes, rendering them with the hex prefix.
func FromBytes(b []byte) Seed {
	return Seed{Text: HexPrefix + hex.EncodeToString(b), Value: b}
}

// Random returns a seed of n random bytes.
func Random(n int) (Seed, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return Seed{}, fmt.Errorf("generating random seed: %w", err)
	}

	return FromBytes(b), nil
}
