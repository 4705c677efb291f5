// Package randio produces a deterministic, seekable pseudorandom byte stream from a seed.
//
// The stream is the AES-256 counter-mode keystream under key SHA-256(seed), with the
// 128-bit big-endian counter starting at 1. Byte p of the stream is byte p%16 of the
// block produced for counter 1+p/16, so any offset can be reproduced without generating
// the prefix, and streams match byte-for-byte across implementations.
//
// A Stream is not safe for concurrent use. Streams built from the same seed share no state.
package randio
