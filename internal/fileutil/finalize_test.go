package fileutil_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/randio/internal/fileutil"
)

func TestRandomName(t *testing.T) {
	t.Parallel()

	a, err := fileutil.RandomName()
	require.NoError(t, err)

	b, err := fileutil.RandomName()
	require.NoError(t, err)

	assert.Len(t, a, 2*fileutil.RandomNameBytes)
	assert.Regexp(t, `^[0-9a-f]+$`, a)
	assert.NotEqual(t, a, b)
}

func TestResolveOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("directory gets a random name", func(t *testing.T) {
		t.Parallel()

		got, err := fileutil.ResolveOutput(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, filepath.Dir(got))
		assert.Len(t, filepath.Base(got), 2*fileutil.RandomNameBytes)
	})

	t.Run("file path is kept", func(t *testing.T) {
		t.Parallel()

		want := filepath.Join(dir, "out.bin")

		got, err := fileutil.ResolveOutput(want)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("empty path is the working directory", func(t *testing.T) {
		t.Parallel()

		got, err := fileutil.ResolveOutput("")
		require.NoError(t, err)
		assert.Equal(t, ".", filepath.Dir(got))
	})
}

func TestTempContext(t *testing.T) {
	t.Parallel()

	t.Run("commit renames onto the output", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "data")

		write := func() (err error) {
			tc, err := fileutil.NewTempContext(out)
			if err != nil {
				return err
			}

			defer tc.CleanupOnError(&err)

			if _, err = tc.TmpFile.WriteString("payload"); err != nil {
				return err
			}

			return tc.Commit(0o600)
		}

		require.NoError(t, write())

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))

		size, err := fileutil.Size(out)
		require.NoError(t, err)
		assert.EqualValues(t, len("payload"), size)
	})

	t.Run("error removes the temp file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		out := filepath.Join(dir, "data")
		failure := errors.New("boom")

		write := func() (err error) {
			tc, err := fileutil.NewTempContext(out)
			if err != nil {
				return err
			}

			defer tc.CleanupOnError(&err)

			return failure
		}

		require.ErrorIs(t, write(), failure)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

// partialWriter writes its first call through and fails afterwards.
type partialWriter struct {
	w      io.Writer
	err    error
	writes int
}

func (p *partialWriter) Write(b []byte) (int, error) {
	p.writes++

	if p.writes > 1 {
		return 0, p.err
	}

	return p.w.Write(b)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "data")

		err := fileutil.WriteAtomic(out, 0o644, func(w io.Writer) error {
			_, err := io.WriteString(w, "payload")

			return err
		})
		require.NoError(t, err)

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.EqualValues(t, len("payload"), info.Size())
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("failure after partial write leaves nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		failure := errors.New("device full")

		err := fileutil.WriteAtomic(filepath.Join(dir, "data"), 0o644, func(w io.Writer) error {
			pw := &partialWriter{w: w, err: failure}

			if _, err := pw.Write(make([]byte, 4096)); err != nil {
				return err
			}

			_, err := pw.Write(make([]byte, 4096))

			return err
		})
		require.ErrorIs(t, err, failure)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
