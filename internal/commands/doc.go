// Package commands provides the command-line interface for the randio tool.
//
// It implements commands for:
//   - generating files from seeds
//   - dumping a section of a stream
//   - verifying files against a seed
//   - generating and checking seed/hash pairs
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/randio/internal/logic"
)

// preRun returns a PreRunE handler that lets args fill the positional fields of cfg,
// then unmarshals the bound flags and RANDIO_* environment variables into it and validates it.
func preRun(cfg cobraext.Validator, args func([]string)) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, positional []string) error {
		if args != nil {
			args(positional)
		}

		return cobraext.Validate(cfg, cfg)
	}
}

// console reports to the output streams of cmd.
func console(cmd *cobra.Command, quiet bool) *logic.Console {
	return &logic.Console{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr(), Quiet: quiet}
}
