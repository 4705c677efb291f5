// Package logic implements the randio commands on top of the stream engine.
package logic

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Console is where commands report progress. It is safe for concurrent use.
type Console struct {
	mu sync.Mutex

	// Out receives results, and generated data for dump
	Out io.Writer

	// Err receives errors, notes and statistics
	Err io.Writer

	// Quiet suppresses non-error output
	Quiet bool
}

// Printf writes a result line to Out unless quiet.
func (c *Console) Printf(format string, args ...any) {
	if c.Quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.Out, format, args...)
}

// Notef writes an informational line to Err unless quiet.
func (c *Console) Notef(format string, args ...any) {
	if c.Quiet {
		return
	}

	c.Errorf(format, args...)
}

// Errorf writes an error line to Err.
func (c *Console) Errorf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.Err, format, args...)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// result is the outcome of processing a single item.
type result struct {
	// index of the item
	index int

	// input names the item: a seed or a file
	input string

	// output is the produced file, if any
	output string

	// size in bytes of what was generated or checked
	size int64

	// any error that occurred during processing
	err error
}

// summary counts the outcomes of a run.
type summary struct {
	processed int
	errored   int
	totalSize int64
}

// process runs work for items 0..n-1 on at most parallel workers.
// A single printer goroutine hands every result to report, in completion order.
func process(n, parallel int, work func(i int) result, report func(result)) (summary, error) {
	results := make(chan result, n)

	group := errgroup.Group{}
	group.SetLimit(parallel)

	done := make(chan struct{})

	var sum summary

	go func() {
		defer close(done)

		for res := range results {
			if res.err != nil {
				sum.errored++
			} else {
				sum.processed++

				sum.totalSize += res.size
			}

			report(res)
		}
	}()

	for i := range n {
		group.Go(func() error {
			res := work(i)
			res.index = i

			results <- res

			return res.err
		})
	}

	err := group.Wait()

	close(results)

	<-done // Wait for printer to finish

	return sum, err
}

func printStats(con *Console, sum summary, duration time.Duration) {
	con.Errorf("\nStats\n")
	con.Errorf("  Processed: %d\n", sum.processed)
	con.Errorf("  Errors:    %d\n", sum.errored)
	//nolint:gosec // totalSize is always non-negative (sum of sizes)
	con.Errorf("  Size:      %s\n", humanize.IBytes(uint64(max(0, sum.totalSize))))
	con.Errorf("  Duration:  %s\n", duration.Round(time.Millisecond))
}

// bytesize renders n in binary units.
func bytesize(n int64) string {
	return humanize.IBytes(uint64(max(0, n))) //nolint:gosec // clamped to non-negative
}
