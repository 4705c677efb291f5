package randio

import (
	"sync"
)

// DumpChunkSize is the number of bytes generated and written per step by Dump.
const DumpChunkSize = 64 * 1024

// chunkPool provides reusable chunk buffers for Dump.
//
//nolint:gochecknoglobals
var chunkPool = sync.Pool{
	New: func() any {
		b := make([]byte, DumpChunkSize)

		return &b
	},
}
