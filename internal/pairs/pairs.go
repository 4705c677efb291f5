// Package pairs generates and checks seed/hash pairs: the SHA-256 digest of the stream of a
// seed truncated to a fixed size, recorded so the stream can be verified later without
// storing it.
package pairs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/idelchi/randio/pkg/randio"
)

// DefaultSeedLength is the default number of random bytes per seed.
const DefaultSeedLength = 12

const hashHexLen = 2 * sha256.Size

// ErrMismatch is returned when a recorded hash does not match the regenerated stream.
var ErrMismatch = errors.New("hash mismatch")

// Pair is a seed and the hex-encoded SHA-256 digest of its stream.
type Pair struct {
	Seed []byte
	Hash string
}

// HexSeed returns the seed hex-encoded, as it is recorded.
func (p Pair) HexSeed() string {
	return hex.EncodeToString(p.Seed)
}

// Hash returns the hex-encoded SHA-256 digest of the first size bytes of the stream for seed.
func Hash(seed []byte, size int64) (string, error) {
	stream, err := randio.New(seed)
	if err != nil {
		return "", fmt.Errorf("creating stream: %w", err)
	}

	digest := sha256.New()

	if _, err := stream.Dump(digest, size); err != nil {
		return "", fmt.Errorf("hashing stream: %w", err)
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

// Generate creates a pair for seed.
func Generate(seed []byte, size int64) (Pair, error) {
	hash, err := Hash(seed, size)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Seed: seed, Hash: hash}, nil
}

// Check regenerates the hash of p and compares it with the recorded one.
func Check(p Pair, size int64) error {
	hash, err := Hash(p.Seed, size)
	if err != nil {
		return err
	}

	if hash != p.Hash {
		return fmt.Errorf("%w: seed %s: recorded %s, got %s", ErrMismatch, p.HexSeed(), p.Hash, hash)
	}

	return nil
}
