package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/randio/internal/config"
	"github.com/idelchi/randio/internal/logic"
	"github.com/idelchi/randio/internal/pairs"
)

// NewGenCommand creates a new cobra command for the gen subcommand.
func NewGenCommand() *cobra.Command {
	cfg := &config.Gen{}

	cmd := &cobra.Command{
		Use:     "gen [flags] [path]",
		Aliases: []string{"generate"},
		Short:   "Generate files from seeds",
		Long: `Generate one file of --size bytes per seed.
Without seeds, --count files are generated from random seeds.
The path is a directory receiving files with random names or, for a single seed, the file name.
Seeds prefixed with "hex:" are decoded into raw bytes.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: preRun(cfg, func(args []string) {
			if len(args) > 0 {
				cfg.Path = args[0]
			}
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunGen(cfg, console(cmd, cfg.Quiet))
		},
	}

	cmd.Flags().StringArray("seed", nil, "Seed to generate a file from, can be repeated")
	cmd.Flags().String("seeds-from", "", "Path to a JSONC file holding an array of seeds")
	cmd.Flags().IntP("count", "n", 1, "Number of files to generate from random seeds when no seed is given")
	cmd.Flags().StringP("size", "s", "", "Size of each file, e.g. 512, 64KiB or 1GB")

	return cmd
}

// NewDumpCommand creates a new cobra command for the dump subcommand.
func NewDumpCommand() *cobra.Command {
	cfg := &config.Dump{}

	cmd := &cobra.Command{
		Use:   "dump [flags]",
		Short: "Write a section of a stream to stdout or a file",
		Long: `Write --size bytes of the stream of --seed, starting at --offset.
Without a seed, a random one is drawn and reported on stderr.`,
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, nil),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunDump(cfg, console(cmd, cfg.Quiet))
		},
	}

	cmd.Flags().String("seed", "", "Seed of the stream")
	cmd.Flags().StringP("size", "s", "", "Number of bytes to write, e.g. 512, 64KiB or 1GB")
	cmd.Flags().String("offset", "", "Stream position to start at")
	cmd.Flags().StringP("output", "o", "", "File or directory to write to instead of stdout")
	cmd.Flags().BoolP("force", "f", false, "Write to stdout even if it is a terminal")

	return cmd
}

// NewVerifyCommand creates a new cobra command for the verify subcommand.
func NewVerifyCommand() *cobra.Command {
	cfg := &config.Verify{}

	cmd := &cobra.Command{
		Use:   "verify [flags] files...",
		Short: "Verify that files hold the stream of a seed",
		Long: `Compare each file byte for byte with the stream of --seed from --offset on.
The first differing stream offset is reported for each mismatching file.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg, func(args []string) {
			cfg.Files = args
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunVerify(cfg, console(cmd, cfg.Quiet))
		},
	}

	cmd.Flags().String("seed", "", "Seed of the stream")
	cmd.Flags().String("offset", "", "Stream position the files start at")

	return cmd
}

// NewPairGenCommand creates a new cobra command for the pairgen subcommand.
func NewPairGenCommand() *cobra.Command {
	cfg := &config.PairGen{}

	cmd := &cobra.Command{
		Use:   "pairgen [flags] size",
		Short: "Generate seed/hash pairs",
		Long: `Generate random seeds and the SHA-256 of the first size bytes of their streams.
Pairs are written in index order as "<hexseed> <hash>" lines, or with --redis
as Redis SET commands for mass insertion with redis-cli --pipe.`,
		Args: cobra.ExactArgs(1),
		PreRunE: preRun(cfg, func(args []string) {
			cfg.Size = args[0]
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunPairGen(cfg, console(cmd, cfg.Quiet))
		},
	}

	cmd.Flags().IntP("length", "l", pairs.DefaultSeedLength, "Number of random bytes per seed")
	cmd.Flags().IntP("pairs", "p", 1, "Number of pairs to generate")
	cmd.Flags().StringP("output", "o", "pairs.out", "File to write the pairs to")
	cmd.Flags().BoolP("redis", "r", false, "Write the Redis mass insertion protocol")
	cmd.Flags().BoolP("verbose", "v", false, "Report every pair")

	return cmd
}

// NewPairCheckCommand creates a new cobra command for the paircheck subcommand.
func NewPairCheckCommand() *cobra.Command {
	cfg := &config.PairCheck{}

	cmd := &cobra.Command{
		Use:   "paircheck [flags] size pairs-file",
		Short: "Check seed/hash pairs",
		Long:  `Regenerate the hash of every pair in a pairs file, failing on any mismatch.`,
		Args:  cobra.ExactArgs(2), //nolint:mnd // size and pairs file
		PreRunE: preRun(cfg, func(args []string) {
			cfg.Size = args[0]
			cfg.Input = args[1]
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunPairCheck(cfg, console(cmd, cfg.Quiet))
		},
	}

	return cmd
}
