package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "randio [flags] command [flags]"
	root.Short = "Deterministic, seekable random data"
	root.Long = `Generates reproducible pseudorandom data from a seed.
The stream for a seed is the AES-256 counter mode keystream under the SHA-256 of the seed,
so any section of it can be regenerated and verified later without storing it.

Every flag can also be set through an environment variable prefixed with RANDIO_,
with dashes replaced by underscores (e.g. RANDIO_SEEDS_FROM).`

	root.Flags().Bool("show", false, "Show the configuration and exit")

	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("stats", false, "Print a summary after the run")

	root.AddCommand(
		NewGenCommand(),
		NewDumpCommand(),
		NewVerifyCommand(),
		NewPairGenCommand(),
		NewPairCheckCommand(),
	)

	return root
}

// Execute runs the randio command line. Showing the configuration is not an error.
func Execute(version string) error {
	switch err := NewRootCommand(version).Execute(); {
	case errors.Is(err, cobraext.ErrExitGracefully):
		return nil
	case err != nil:
		return fmt.Errorf("executing command: %w", err)
	default:
		return nil
	}
}
