package logic

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/idelchi/randio/internal/config"
	"github.com/idelchi/randio/internal/fileutil"
	"github.com/idelchi/randio/internal/pairs"
	"github.com/idelchi/randio/pkg/randio"
)

// RunPairGen generates seed/hash pairs and writes them, in order, to cfg.Output.
func RunPairGen(cfg *config.PairGen, con *Console) error {
	start := time.Now()

	size, err := config.ParseSize(cfg.Size)
	if err != nil {
		return err
	}

	list := make([]pairs.Pair, cfg.Pairs)

	sum, err := process(cfg.Pairs, cfg.Parallel,
		func(i int) result {
			seed := make([]byte, cfg.Length)
			if _, err := rand.Read(seed); err != nil {
				return result{err: fmt.Errorf("generating seed: %w", err)}
			}

			input := pairs.Pair{Seed: seed}.HexSeed()

			if cfg.Verbose {
				con.Printf("Pair %d: Generating hash for %s file with seed %s...\n", i, bytesize(size), input)
			}

			pair, err := pairs.Generate(seed, size)
			if err != nil {
				return result{input: input, err: err}
			}

			list[i] = pair

			return result{input: input, output: pair.Hash, size: size}
		},
		func(res result) {
			if res.err != nil {
				con.Errorf("Error generating pair %d: %v\n", res.index, res.err)

				return
			}

			if cfg.Verbose {
				con.Printf("Pair %d: %s\n", res.index, res.output)
			}
		})

	if cfg.Stats {
		printStats(con, sum, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("generating pairs: %w", err)
	}

	format := pairs.FormatText
	if cfg.Redis {
		format = pairs.FormatRedis
	}

	if err := writePairs(cfg.Output, list, format); err != nil {
		return err
	}

	con.Printf("Wrote %d pairs to %q\n", len(list), cfg.Output)

	return nil
}

// writePairs atomically replaces path with the encoded pairs.
func writePairs(path string, list []pairs.Pair, format pairs.Format) error {
	err := fileutil.WriteAtomic(path, randio.FilePerm, func(w io.Writer) error {
		return pairs.Write(w, list, format)
	})
	if err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	return nil
}

// RunPairCheck re-derives the hash of every pair in cfg.Input.
func RunPairCheck(cfg *config.PairCheck, con *Console) error {
	start := time.Now()

	size, err := config.ParseSize(cfg.Size)
	if err != nil {
		return err
	}

	list, err := readPairs(cfg.Input)
	if err != nil {
		return err
	}

	sum, err := process(len(list), cfg.Parallel,
		func(i int) result {
			return result{input: list[i].HexSeed(), size: size, err: pairs.Check(list[i], size)}
		},
		func(res result) {
			if res.err != nil {
				con.Errorf("Error checking pair %d: %v\n", res.index, res.err)

				return
			}

			con.Printf("Pair %d: OK (%s)\n", res.index, res.input)
		})

	if cfg.Stats {
		printStats(con, sum, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("checking pairs: %w", err)
	}

	return nil
}

func readPairs(path string) (list []pairs.Pair, err error) {
	f, err := os.Open(path) //nolint:gosec // path is from user-supplied arguments
	if err != nil {
		return nil, fmt.Errorf("opening pairs file: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing pairs file: %w", cerr)
		}
	}()

	list, err = pairs.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	return list, nil
}
