// Package config defines the configuration of each randio command.
//
// Values are bound from flags and RANDIO_* environment variables, then validated
// against the struct tags below.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/gogen/pkg/validator"
)

// ErrUsage indicates an error in command-line usage or configuration.
var ErrUsage = errors.New("usage error")

// Common holds flags shared by all commands.
type Common struct {
	// Show prints the configuration and exits
	Show bool

	// Quiet suppresses non-error output
	Quiet bool

	// Stats prints a summary after the run
	Stats bool

	// Parallel is the number of concurrent workers
	Parallel int `validate:"min=1"`
}

// Gen configures the gen command.
type Gen struct {
	Common `mapstructure:",squash"`

	// Seeds given on the command line
	Seeds []string `mapstructure:"seed"`

	// SeedsFrom is a JSONC file holding an array of seeds
	SeedsFrom string `mapstructure:"seeds-from" validate:"omitempty,file"`

	// Count is the number of files to generate from random seeds when no seed is given
	Count int `validate:"min=1"`

	// Size of each file, in human-readable units
	Size string `validate:"required,bytesize"`

	// Path is a directory or, for a single file, the file name
	Path string `mapstructure:"-"`
}

// Dump configures the dump command.
type Dump struct {
	Common `mapstructure:",squash"`

	// Seed of the stream; a random one is drawn when empty
	Seed string

	// Size is the number of bytes to write
	Size string `validate:"required,bytesize"`

	// Offset is the stream position to start at
	Offset string `validate:"omitempty,bytesize"`

	// Output is a file or directory; stdout when empty
	Output string

	// Force allows writing binary data to a terminal
	Force bool
}

// Verify configures the verify command.
type Verify struct {
	Common `mapstructure:",squash"`

	// Seed of the stream the files are expected to hold
	Seed string `validate:"required"`

	// Offset is the stream position the files start at
	Offset string `validate:"omitempty,bytesize"`

	// Files to verify
	Files []string `mapstructure:"-" validate:"min=1,dive,required"`
}

// PairGen configures the pairgen command.
type PairGen struct {
	Common `mapstructure:",squash"`

	// Size of the stream hashed for each pair
	Size string `mapstructure:"-" validate:"required,bytesize"`

	// Length is the number of random bytes per seed
	Length int `validate:"min=1"`

	// Pairs is the number of pairs to generate
	Pairs int `validate:"min=1"`

	// Output is the file the pairs are written to
	Output string `validate:"required"`

	// Redis writes the Redis mass insertion protocol instead of text
	Redis bool

	// Verbose reports every pair as it is generated
	Verbose bool
}

// PairCheck configures the paircheck command.
type PairCheck struct {
	Common `mapstructure:",squash"`

	// Size of the stream hashed for each pair
	Size string `mapstructure:"-" validate:"required,bytesize"`

	// Input is the pairs file to check
	Input string `mapstructure:"-" validate:"required,file"`
}

// Display returns the value of the Show field.
func (c Common) Display() bool {
	return c.Show
}

// Validate validates config, one of the command configurations, against its struct tags.
// It returns a wrapped ErrUsage if any validation rules are violated.
func (c Common) Validate(config any) error {
	validator := validator.NewValidator()

	if err := registerByteSize(validator); err != nil {
		return fmt.Errorf("registering bytesize: %w", err)
	}

	registerTagNames(validator)

	errs := validator.Validate(config)

	switch {
	case errs == nil:
		return nil
	case len(errs) == 1:
		return fmt.Errorf("%w: %w", ErrUsage, errs[0])
	default:
		return fmt.Errorf("%ws:\n%w", ErrUsage, errors.Join(errs...))
	}
}

// ParseSize parses a byte count with optional units, such as "512", "64KiB" or "1.5GB".
// An empty string is zero.
func ParseSize(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("parsing size %q: %w", s, err)
	}

	if n > math.MaxInt64 {
		return 0, fmt.Errorf("parsing size %q: too large", s)
	}

	return int64(n), nil
}
