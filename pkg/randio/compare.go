package randio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrMismatch is returned when data differs from the stream.
var ErrMismatch = errors.New("data differs from stream")

// MismatchError reports the first stream offset at which data differs.
type MismatchError struct {
	Offset int64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v at offset %d", ErrMismatch, e.Offset)
}

// Unwrap makes MismatchError match ErrMismatch.
func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// Compare reads r to its end and checks it against the stream from the current position.
// It returns the number of matching bytes. Data running past the end of a sized
// stream is a mismatch at the end offset.
func (s *Stream) Compare(r io.Reader) (int64, error) {
	bufp, ok := chunkPool.Get().(*[]byte)
	if !ok {
		return 0, errors.New("invalid buffer type from pool") //nolint:err113
	}

	defer chunkPool.Put(bufp)

	data := *bufp
	want := make([]byte, len(data))

	var compared int64

	for {
		n, readErr := io.ReadFull(r, data)
		if n > 0 {
			m, err := s.resolveSize(int64(n))
			if err != nil {
				return compared, err
			}

			start := s.offset
			expected := want[:max(m, 0)]

			s.fill(expected)

			if i := firstDifference(data[:n], expected); i >= 0 {
				return compared + int64(i), &MismatchError{Offset: start + int64(i)}
			}

			compared += int64(n)
		}

		if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
			return compared, nil
		}

		if readErr != nil {
			return compared, fmt.Errorf("reading data: %w", readErr)
		}
	}
}

// firstDifference returns the index of the first byte where got and expected differ,
// or -1. A shorter expected differs at its end.
func firstDifference(got, expected []byte) int {
	if bytes.Equal(got, expected) {
		return -1
	}

	for i := range expected {
		if got[i] != expected[i] {
			return i
		}
	}

	return len(expected)
}
