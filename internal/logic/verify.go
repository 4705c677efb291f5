package logic

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/idelchi/randio/internal/config"
	"github.com/idelchi/randio/internal/seeds"
	"github.com/idelchi/randio/pkg/randio"
)

// RunVerify checks that every file holds the stream of cfg.Seed from cfg.Offset on.
func RunVerify(cfg *config.Verify, con *Console) error {
	start := time.Now()

	offset, err := config.ParseSize(cfg.Offset)
	if err != nil {
		return err
	}

	seed, err := seeds.Parse(cfg.Seed)
	if err != nil {
		return err
	}

	sum, err := process(len(cfg.Files), cfg.Parallel,
		func(i int) result {
			size, err := verifyFile(cfg.Files[i], seed, offset)

			return result{input: cfg.Files[i], size: size, err: err}
		},
		func(res result) {
			if res.err != nil {
				con.Errorf("Error verifying %q: %v\n", res.input, res.err)

				return
			}

			con.Printf("Verified %q (%s)\n", res.input, bytesize(res.size))
		})

	if cfg.Stats {
		printStats(con, sum, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("verifying files: %w", err)
	}

	return nil
}

// verifyFile compares a file with the stream of seed, starting at offset.
func verifyFile(path string, seed seeds.Seed, offset int64) (size int64, err error) {
	f, err := os.Open(path) //nolint:gosec // path is from user-supplied arguments
	if err != nil {
		return 0, fmt.Errorf("opening file: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", cerr)
		}
	}()

	stream, err := randio.New(seed.Value)
	if err != nil {
		return 0, fmt.Errorf("creating stream: %w", err)
	}

	if _, err := stream.Seek(offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seeking to %d: %w", offset, err)
	}

	n, err := stream.Compare(f)
	if err != nil {
		return n, fmt.Errorf("comparing with stream: %w", err)
	}

	return n, nil
}
