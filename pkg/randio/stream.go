package randio

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"
	"io"
)

// BlockSize is the cipher block size, and the unit in which the keystream is generated.
const BlockSize = aes.BlockSize

// Stream is a deterministic pseudorandom byte stream keyed by a hashed seed.
type Stream struct {
	// key is derived once from the seed
	key [KeySize]byte

	// block is the AES cipher under key
	block cipher.Block

	// ctr generates keystream; it is always positioned on a block boundary
	ctr cipher.Stream

	// buf holds the block covering offset when offset is not block aligned
	buf    [BlockSize]byte
	bufLen int
	bufPos int

	// offset is the logical read position
	offset int64

	// size bounds the stream when sized is set
	size  int64
	sized bool
}

// Option configures a Stream.
type Option func(*Stream)

// WithSize bounds the stream to n bytes.
// Reads are clamped to the end and seeking relative to the end becomes possible.
func WithSize(n int64) Option {
	return func(s *Stream) {
		s.size = max(0, n)
		s.sized = true
	}
}

// New creates a stream for seed. A nil seed draws a random one.
func New(seed any, opts ...Option) (*Stream, error) {
	if seed == nil {
		random, err := randomSeed()
		if err != nil {
			return nil, err
		}

		seed = random
	}

	return NewFromKey(DeriveKey(seed), opts...)
}

// NewFromKey creates a stream from an already derived key.
func NewFromKey(key [KeySize]byte, opts ...Option) (*Stream, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	s := &Stream{
		key:   key,
		block: block,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.reset(0)

	return s, nil
}

// Key returns the key derived from the seed.
func (s *Stream) Key() [KeySize]byte {
	return s.key
}

// Size returns the stream size and whether it is known.
func (s *Stream) Size() (int64, bool) {
	return s.size, s.sized
}

// Tell returns the current position in the stream.
func (s *Stream) Tell() int64 {
	return s.offset
}

// ReadN returns the next size bytes of the stream.
//
// A negative size reads to the end of the stream, which requires a known stream size.
// Reads never cross the end of a sized stream, so fewer bytes may be returned.
func (s *Stream) ReadN(size int64) ([]byte, error) {
	size, err := s.resolveSize(size)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		return []byte{}, nil
	}

	out := make([]byte, size)
	s.fill(out)

	return out, nil
}

// Read implements io.Reader. It returns io.EOF at the end of a sized stream.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n, _ := s.resolveSize(int64(len(p))) //nolint:errcheck // explicit sizes always resolve
	if n <= 0 {
		return 0, io.EOF
	}

	s.fill(p[:n])

	return int(n), nil
}

// Seek moves the read position. It implements io.Seeker, except that for io.SeekEnd
// offset counts back from the end: Seek(100, io.SeekEnd) lands 100 bytes before it,
// and a negative offset lands past it, where reads return nothing.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += s.offset
	case io.SeekEnd:
		if !s.sized {
			return s.offset, ErrUnknownSize
		}

		offset = s.size - offset
	default:
		return s.offset, fmt.Errorf("%w: unknown whence %d", ErrInvalidArgument, whence)
	}

	if offset < 0 {
		return s.offset, fmt.Errorf("%w: %d", ErrNegativePosition, offset)
	}

	s.reset(offset)

	return offset, nil
}

// resolveSize clamps size to the remainder of a sized stream.
// A negative size stands for "everything that is left".
func (s *Stream) resolveSize(size int64) (int64, error) {
	if s.sized {
		remaining := s.size - s.offset
		if size < 0 || size > remaining {
			size = remaining
		}

		return size, nil
	}

	if size < 0 {
		return 0, ErrSizeRequired
	}

	return size, nil
}

// reset repositions the counter so that the next byte produced is the one at offset.
func (s *Stream) reset(offset int64) {
	s.clearBuffer()

	var iv [BlockSize]byte

	binary.BigEndian.PutUint64(iv[BlockSize-8:], uint64(offset/BlockSize)+1) //nolint:gosec // offset is non-negative

	s.ctr = cipher.NewCTR(s.block, iv[:])

	if rem := int(offset % BlockSize); rem > 0 {
		s.fillBuffer()
		s.seekBuffer(rem)
	}

	s.offset = offset
}

// fill writes the next len(p) bytes of the stream into p and advances the position.
func (s *Stream) fill(p []byte) {
	n := s.readBuffer(p)
	rest := p[n:]

	rem := len(rest) % BlockSize
	raw := len(rest) - rem

	s.readRaw(rest[:raw])

	if rem > 0 {
		s.fillBuffer()
		s.readBuffer(rest[raw:])
	}

	s.offset += int64(len(p))
}

// readRaw overwrites p with keystream. len(p) must be a multiple of BlockSize so that
// the counter stays on a block boundary.
func (s *Stream) readRaw(p []byte) {
	clear(p)
	s.ctr.XORKeyStream(p, p)
}

// fillBuffer replaces the buffer with the next block of keystream.
func (s *Stream) fillBuffer() {
	s.readRaw(s.buf[:])
	s.bufLen = BlockSize
	s.bufPos = 0
}

// readBuffer copies unconsumed buffer bytes into p and returns how many were copied.
// It never refills the buffer.
func (s *Stream) readBuffer(p []byte) int {
	n := copy(p, s.buf[s.bufPos:s.bufLen])
	s.bufPos += n

	return n
}

func (s *Stream) seekBuffer(pos int) {
	s.bufPos = pos
}

func (s *Stream) clearBuffer() {
	s.bufLen = 0
	s.bufPos = 0
}
