package randio

import (
	"errors"
	"fmt"
	"io"

	"github.com/idelchi/randio/internal/fileutil"
)

// FilePerm is the mode of files created by GenFile.
const FilePerm = 0o644

// Dump writes the next size bytes of the stream to w in DumpChunkSize pieces and
// returns the number of bytes written. A negative size dumps the rest of a sized stream.
func (s *Stream) Dump(w io.Writer, size int64) (int64, error) {
	size, err := s.resolveSize(size)
	if err != nil {
		return 0, err
	}

	bufp, ok := chunkPool.Get().(*[]byte)
	if !ok {
		return 0, errors.New("invalid buffer type from pool") //nolint:err113
	}

	defer chunkPool.Put(bufp)

	buf := *bufp

	var written int64

	for written < size {
		chunk := buf[:min(int64(len(buf)), size-written)]

		s.fill(chunk)

		n, err := w.Write(chunk)
		written += int64(n)

		if err != nil {
			return written, fmt.Errorf("writing stream: %w", err)
		}

		if n != len(chunk) {
			return written, fmt.Errorf("writing stream: %w", io.ErrShortWrite)
		}
	}

	return written, nil
}

// WriteTo implements io.WriterTo by dumping the rest of a sized stream.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	return s.Dump(w, -1)
}

// GenFile dumps size bytes into a file and returns its path.
//
// If path is empty or an existing directory, a random hexadecimal file name is
// generated inside it. The file appears only once it is completely written.
func (s *Stream) GenFile(size int64, path string) (string, error) {
	if _, err := s.resolveSize(size); err != nil {
		return "", err
	}

	out, err := fileutil.ResolveOutput(path)
	if err != nil {
		return "", err
	}

	err = fileutil.WriteAtomic(out, FilePerm, func(w io.Writer) error {
		_, err := s.Dump(w, size)

		return err
	})
	if err != nil {
		return "", fmt.Errorf("generating %q: %w", out, err)
	}

	return out, nil
}
