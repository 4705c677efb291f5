package randio

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for arguments the stream cannot act on.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidOperation is returned for operations the stream cannot perform in its current configuration.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrSizeRequired is returned when neither a read size nor a stream size is known.
	ErrSizeRequired = fmt.Errorf("%w: stream size must be specified if bytes to read is not", ErrInvalidArgument)
	// ErrUnknownSize is returned when seeking from the end of a stream of unknown size.
	ErrUnknownSize = fmt.Errorf("%w: cannot seek from end of stream if size is unknown", ErrInvalidOperation)
	// ErrNegativePosition is returned when a seek resolves before the start of the stream.
	ErrNegativePosition = fmt.Errorf("%w: negative position", ErrInvalidArgument)
)
