package pairs

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format is the encoding of a pairs file.
type Format int

const (
	// FormatText writes one "<hexseed> <hash>" line per pair.
	FormatText Format = iota
	// FormatRedis writes one Redis SET command per pair, for redis-cli --pipe mass insertion.
	FormatRedis
)

// ErrMalformed is returned when a pairs file cannot be parsed.
var ErrMalformed = errors.New("malformed pairs file")

// Encode renders p in format f.
func Encode(p Pair, f Format) string {
	key := p.HexSeed()

	if f == FormatRedis {
		return fmt.Sprintf("*3\r\n$3\r\nSET\r\n$%d\r\n%s\r\n$%d\r\n%s\r\n", len(key), key, len(p.Hash), p.Hash)
	}

	return key + " " + p.Hash + "\n"
}

// Write encodes every pair to w in order.
func Write(w io.Writer, pairs []Pair, f Format) error {
	bw := bufio.NewWriter(w)

	for _, p := range pairs {
		if _, err := bw.WriteString(Encode(p, f)); err != nil {
			return fmt.Errorf("writing pair: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing pairs: %w", err)
	}

	return nil
}

// Read parses pairs in either format. Redis input is recognized by its leading '*'.
func Read(r io.Reader) ([]Pair, error) {
	br := bufio.NewReader(r)

	first, err := br.Peek(1)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading pairs: %w", err)
	}

	if first[0] == '*' {
		return readRedis(br)
	}

	return readText(br)
}

func readText(r io.Reader) ([]Pair, error) {
	var pairs []Pair

	scanner := bufio.NewScanner(r)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 { //nolint:mnd // seed and hash
			return nil, fmt.Errorf("%w: line %d: expected \"<seed> <hash>\"", ErrMalformed, line)
		}

		p, err := newPair(fields[0], fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		pairs = append(pairs, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading pairs: %w", err)
	}

	return pairs, nil
}

func readRedis(r *bufio.Reader) ([]Pair, error) {
	var pairs []Pair

	for {
		header, err := readLine(r)
		if errors.Is(err, io.EOF) {
			return pairs, nil
		}

		if err != nil {
			return nil, err
		}

		if header != "*3" {
			return nil, fmt.Errorf("%w: command %d: expected *3, got %q", ErrMalformed, len(pairs)+1, header)
		}

		args := make([]string, 3) //nolint:mnd // SET key value

		for i := range args {
			if args[i], err = readBulk(r); err != nil {
				return nil, fmt.Errorf("command %d: %w", len(pairs)+1, err)
			}
		}

		if args[0] != "SET" {
			return nil, fmt.Errorf("%w: command %d: expected SET, got %q", ErrMalformed, len(pairs)+1, args[0])
		}

		p, err := newPair(args[1], args[2])
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", len(pairs)+1, err)
		}

		pairs = append(pairs, p)
	}
}

// readBulk reads one "$<len>\r\n<data>\r\n" bulk string.
func readBulk(r *bufio.Reader) (string, error) {
	header, err := readLine(r)
	if err != nil {
		return "", unexpectedEOF(err)
	}

	n, err := strconv.Atoi(strings.TrimPrefix(header, "$"))
	if !strings.HasPrefix(header, "$") || err != nil || n < 0 {
		return "", fmt.Errorf("%w: bad bulk header %q", ErrMalformed, header)
	}

	data, err := readLine(r)
	if err != nil {
		return "", unexpectedEOF(err)
	}

	if len(data) != n {
		return "", fmt.Errorf("%w: bulk length %d, got %d bytes", ErrMalformed, n, len(data))
	}

	return data, nil
}

// readLine reads a CRLF (or LF) terminated line without its terminator.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return "", fmt.Errorf("%w: truncated line %q", ErrMalformed, line)
		}

		return "", err //nolint:wrapcheck // io.EOF is matched by callers
	}

	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrMalformed, io.ErrUnexpectedEOF)
	}

	return err
}

func newPair(hexSeed, hash string) (Pair, error) {
	seed, err := hex.DecodeString(hexSeed)
	if err != nil {
		return Pair{}, fmt.Errorf("%w: seed %q: %w", ErrMalformed, hexSeed, err)
	}

	if _, err := hex.DecodeString(hash); err != nil || len(hash) != hashHexLen {
		return Pair{}, fmt.Errorf("%w: hash %q is not a hex SHA-256 digest", ErrMalformed, hash)
	}

	return Pair{Seed: seed, Hash: strings.ToLower(hash)}, nil
}
