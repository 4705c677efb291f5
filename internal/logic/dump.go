package logic

import (
	"fmt"
	"io"
	"time"

	"github.com/idelchi/randio/internal/config"
	"github.com/idelchi/randio/internal/seeds"
	"github.com/idelchi/randio/pkg/randio"
)

// RunDump writes a section of a stream to a file or to con.Out.
func RunDump(cfg *config.Dump, con *Console) error {
	start := time.Now()

	size, err := config.ParseSize(cfg.Size)
	if err != nil {
		return err
	}

	offset, err := config.ParseSize(cfg.Offset)
	if err != nil {
		return err
	}

	seed, err := dumpSeed(cfg.Seed, con)
	if err != nil {
		return err
	}

	stream, err := randio.New(seed.Value)
	if err != nil {
		return fmt.Errorf("creating stream: %w", err)
	}

	if _, err := stream.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to %d: %w", offset, err)
	}

	sum := summary{processed: 1, totalSize: size}

	if cfg.Output != "" {
		out, err := stream.GenFile(size, cfg.Output)
		if err != nil {
			return err
		}

		con.Notef("Generated %q (%s)\n", out, seed)
	} else {
		if !cfg.Force && isTerminal(con.Out) {
			return ErrTerminal
		}

		if _, err := stream.Dump(con.Out, size); err != nil {
			return fmt.Errorf("dumping stream: %w", err)
		}
	}

	if cfg.Stats {
		printStats(con, sum, time.Since(start))
	}

	return nil
}

// dumpSeed parses text, or draws a random seed and reports it so the output can be reproduced.
func dumpSeed(text string, con *Console) (seeds.Seed, error) {
	if text != "" {
		return seeds.Parse(text)
	}

	seed, err := seeds.Random(RandomSeedLength)
	if err != nil {
		return seeds.Seed{}, err
	}

	con.Notef("Using random seed %s\n", seed)

	return seed, nil
}
