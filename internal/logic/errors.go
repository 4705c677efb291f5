package logic

import "errors"

var (
	// ErrTerminal is returned when binary output would be written to a terminal.
	ErrTerminal = errors.New("refusing to write binary data to a terminal, use --force or --output")

	// ErrNotDirectory is returned when several files are to be generated into a path that is
	// not a directory.
	ErrNotDirectory = errors.New("path must be an existing directory when generating several files")
)
