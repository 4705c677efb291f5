package logic

import (
	"fmt"
	"os"
	"time"

	"github.com/idelchi/randio/internal/config"
	"github.com/idelchi/randio/internal/fileutil"
	"github.com/idelchi/randio/internal/seeds"
	"github.com/idelchi/randio/pkg/randio"
)

// RandomSeedLength is the number of bytes drawn for a seed when none is given.
const RandomSeedLength = 32

// RunGen generates one file per seed.
func RunGen(cfg *config.Gen, con *Console) error {
	start := time.Now()

	size, err := config.ParseSize(cfg.Size)
	if err != nil {
		return err
	}

	list, err := collectSeeds(cfg)
	if err != nil {
		return fmt.Errorf("collecting seeds: %w", err)
	}

	if len(list) > 1 && cfg.Path != "" {
		if info, err := os.Stat(cfg.Path); err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %q", ErrNotDirectory, cfg.Path)
		}
	}

	sum, err := process(len(list), cfg.Parallel,
		func(i int) result {
			out, written, err := genFile(list[i], size, cfg.Path)

			return result{input: list[i].String(), output: out, size: written, err: err}
		},
		func(res result) {
			if res.err != nil {
				con.Errorf("Error generating from seed %q: %v\n", res.input, res.err)

				return
			}

			con.Printf("Generated %q (%s)\n", res.output, res.input)
		})

	if cfg.Stats {
		printStats(con, sum, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("generating files: %w", err)
	}

	return nil
}

// collectSeeds gathers the seeds from flags and the seeds file, falling back to
// cfg.Count random seeds when neither gives any.
func collectSeeds(cfg *config.Gen) ([]seeds.Seed, error) {
	list, err := seeds.ParseAll(cfg.Seeds)
	if err != nil {
		return nil, err
	}

	if cfg.SeedsFrom != "" {
		loaded, err := seeds.Load(cfg.SeedsFrom)
		if err != nil {
			return nil, err
		}

		list = append(list, loaded...)
	}

	if len(list) > 0 {
		return list, nil
	}

	for range cfg.Count {
		seed, err := seeds.Random(RandomSeedLength)
		if err != nil {
			return nil, err
		}

		list = append(list, seed)
	}

	return list, nil
}

// genFile writes the stream of seed to a file and returns its path and size on disk.
func genFile(seed seeds.Seed, size int64, path string) (string, int64, error) {
	stream, err := randio.New(seed.Value)
	if err != nil {
		return "", 0, fmt.Errorf("creating stream: %w", err)
	}

	out, err := stream.GenFile(size, path)
	if err != nil {
		return "", 0, err
	}

	written, err := fileutil.Size(out)
	if err != nil {
		return out, 0, err
	}

	return out, written, nil
}
