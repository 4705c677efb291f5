package logic_test

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/randio/internal/config"
	"github.com/idelchi/randio/internal/logic"
	"github.com/idelchi/randio/internal/pairs"
	"github.com/idelchi/randio/pkg/randio"
)

func newConsole() (*logic.Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errs bytes.Buffer

	return &logic.Console{Out: &out, Err: &errs}, &out, &errs
}

func streamBytes(t *testing.T, seed any, offset, n int64) []byte {
	t.Helper()

	s, err := randio.New(seed)
	require.NoError(t, err)

	_, err = s.Seek(offset, io.SeekStart)
	require.NoError(t, err)

	b, err := s.ReadN(n)
	require.NoError(t, err)

	return b
}

func TestRunGenSingleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.bin")
	con, out, _ := newConsole()

	cfg := &config.Gen{
		Common: config.Common{Parallel: 1},
		Seeds:  []string{"seed1"},
		Count:  1,
		Size:   "1KiB",
		Path:   path,
	}

	require.NoError(t, logic.RunGen(cfg, con))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, streamBytes(t, "seed1", 0, 1024), got)
	assert.Equal(t, `Generated "`+path+`" (seed1)`+"\n", out.String())
}

func TestRunGenSeveralSeeds(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	seedsFile := filepath.Join(t.TempDir(), "seeds.jsonc")
	require.NoError(t, os.WriteFile(seedsFile, []byte(`[
		// from a file
		"third",
	]`), 0o600))

	con, out, _ := newConsole()

	cfg := &config.Gen{
		Common:    config.Common{Parallel: 2},
		Seeds:     []string{"first", "hex:00ff"},
		SeedsFrom: seedsFile,
		Count:     1,
		Size:      "100",
		Path:      dir,
	}

	require.NoError(t, logic.RunGen(cfg, con))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for _, e := range entries {
		assert.Len(t, e.Name(), 2*16)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	for _, line := range lines {
		if !strings.HasSuffix(line, "(hex:00ff)") {
			continue
		}

		path := strings.Split(line, `"`)[1]

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, streamBytes(t, []byte{0x00, 0xff}, 0, 100), got)
	}
}

func TestRunGenRandomSeeds(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	con, _, _ := newConsole()

	cfg := &config.Gen{
		Common: config.Common{Parallel: 4, Stats: true},
		Count:  3,
		Size:   "64",
		Path:   dir,
	}

	require.NoError(t, logic.RunGen(cfg, con))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRunGenStats(t *testing.T) {
	t.Parallel()

	con, _, errs := newConsole()

	cfg := &config.Gen{
		Common: config.Common{Parallel: 1, Stats: true},
		Seeds:  []string{"a"},
		Count:  1,
		Size:   "2KiB",
		Path:   t.TempDir(),
	}

	require.NoError(t, logic.RunGen(cfg, con))
	assert.Contains(t, errs.String(), "Processed: 1")
	assert.Contains(t, errs.String(), "Size:      2.0 KiB")
}

func TestRunGenSeveralSeedsIntoFile(t *testing.T) {
	t.Parallel()

	con, _, _ := newConsole()

	cfg := &config.Gen{
		Common: config.Common{Parallel: 1},
		Seeds:  []string{"a", "b"},
		Count:  1,
		Size:   "1",
		Path:   filepath.Join(t.TempDir(), "file"),
	}

	require.ErrorIs(t, logic.RunGen(cfg, con), logic.ErrNotDirectory)
}

func TestRunGenInvalidSeed(t *testing.T) {
	t.Parallel()

	con, _, _ := newConsole()

	cfg := &config.Gen{
		Common: config.Common{Parallel: 1},
		Seeds:  []string{"hex:zz"},
		Count:  1,
		Size:   "1",
		Path:   t.TempDir(),
	}

	require.ErrorContains(t, logic.RunGen(cfg, con), "invalid seed")
}

func TestRunDump(t *testing.T) {
	t.Parallel()

	con, out, _ := newConsole()

	cfg := &config.Dump{
		Common: config.Common{Parallel: 1},
		Seed:   "seed1",
		Size:   "16",
		Offset: "8",
	}

	require.NoError(t, logic.RunDump(cfg, con))

	want, err := hex.DecodeString("178a39c6213b5e361dad6ab4236e1d2f")
	require.NoError(t, err)
	assert.Equal(t, want, out.Bytes())
}

func TestRunDumpRandomSeed(t *testing.T) {
	t.Parallel()

	con, out, errs := newConsole()

	cfg := &config.Dump{Common: config.Common{Parallel: 1}, Size: "1000"}

	require.NoError(t, logic.RunDump(cfg, con))
	assert.Len(t, out.Bytes(), 1000)

	text, ok := strings.CutPrefix(strings.TrimSpace(errs.String()), "Using random seed hex:")
	require.True(t, ok, errs.String())

	seed, err := hex.DecodeString(text)
	require.NoError(t, err)
	assert.Equal(t, streamBytes(t, seed, 0, 1000), out.Bytes())
}

func TestRunDumpToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dump.bin")
	con, out, _ := newConsole()

	cfg := &config.Dump{
		Common: config.Common{Parallel: 1},
		Seed:   "seed string",
		Size:   "10000",
		Offset: "1048573",
		Output: path,
	}

	require.NoError(t, logic.RunDump(cfg, con))
	assert.Empty(t, out.String())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, streamBytes(t, "seed string", 1048573, 10000), got)
}

func TestRunVerify(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good")
	bad := filepath.Join(dir, "bad")

	data := streamBytes(t, "seed1", 512, 200_000)
	require.NoError(t, os.WriteFile(good, data, 0o600))

	tampered := bytes.Clone(data)
	tampered[70_000] ^= 0x01
	require.NoError(t, os.WriteFile(bad, tampered, 0o600))

	con, out, errs := newConsole()

	cfg := &config.Verify{
		Common: config.Common{Parallel: 2},
		Seed:   "seed1",
		Offset: "512",
		Files:  []string{good},
	}

	require.NoError(t, logic.RunVerify(cfg, con))
	assert.Contains(t, out.String(), `Verified "`+good+`"`)
	assert.Empty(t, errs.String())

	cfg.Files = []string{good, bad}

	err := logic.RunVerify(cfg, con)
	require.ErrorIs(t, err, randio.ErrMismatch)
	assert.Contains(t, errs.String(), "at offset 70512")
}

func TestRunVerifyMissingFile(t *testing.T) {
	t.Parallel()

	con, _, _ := newConsole()

	cfg := &config.Verify{
		Common: config.Common{Parallel: 1},
		Seed:   "seed1",
		Files:  []string{filepath.Join(t.TempDir(), "missing")},
	}

	require.ErrorIs(t, logic.RunVerify(cfg, con), os.ErrNotExist)
}

func TestRunPairs(t *testing.T) {
	t.Parallel()

	for _, redis := range []bool{false, true} {
		t.Run(map[bool]string{false: "text", true: "redis"}[redis], func(t *testing.T) {
			t.Parallel()

			output := filepath.Join(t.TempDir(), "pairs.out")
			con, out, _ := newConsole()

			gen := &config.PairGen{
				Common:  config.Common{Parallel: 3},
				Size:    "4KiB",
				Length:  pairs.DefaultSeedLength,
				Pairs:   5,
				Output:  output,
				Redis:   redis,
				Verbose: true,
			}

			require.NoError(t, logic.RunPairGen(gen, con))
			assert.Contains(t, out.String(), "Pair 4: Generating hash for 4.0 KiB file with seed ")
			assert.Contains(t, out.String(), `Wrote 5 pairs to "`+output+`"`)

			f, err := os.Open(output)
			require.NoError(t, err)

			list, err := pairs.Read(f)
			require.NoError(t, f.Close())
			require.NoError(t, err)
			require.Len(t, list, 5)

			for _, p := range list {
				assert.Len(t, p.Seed, pairs.DefaultSeedLength)
			}

			check := &config.PairCheck{Common: config.Common{Parallel: 2}, Size: "4KiB", Input: output}
			require.NoError(t, logic.RunPairCheck(check, con))

			check.Size = "4000"
			require.ErrorIs(t, logic.RunPairCheck(check, con), pairs.ErrMismatch)
		})
	}
}

func TestRunPairCheckTampered(t *testing.T) {
	t.Parallel()

	pair, err := pairs.Generate([]byte("0123456789ab"), 1024)
	require.NoError(t, err)

	other, err := pairs.Generate([]byte("ba9876543210"), 1024)
	require.NoError(t, err)

	other.Hash = pair.Hash

	input := filepath.Join(t.TempDir(), "pairs.out")
	require.NoError(t, os.WriteFile(input,
		[]byte(pairs.Encode(pair, pairs.FormatText)+pairs.Encode(other, pairs.FormatText)), 0o600))

	con, out, errs := newConsole()

	check := &config.PairCheck{Common: config.Common{Parallel: 1}, Size: "1KiB", Input: input}

	require.ErrorIs(t, logic.RunPairCheck(check, con), pairs.ErrMismatch)
	assert.Contains(t, out.String(), "Pair 0: OK")
	assert.Contains(t, errs.String(), "Error checking pair 1")
}
