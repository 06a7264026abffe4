// Package harness drives the variant binaries over a range of thread counts
// and collects their execution times into a CSV table.
package harness

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// ErrNoTimings is returned when a variant's output lacks one of the two
// [main] timing lines.
var ErrNoTimings = errors.New("harness: missing timing line")

var (
	insertedRe  = regexp.MustCompile(`^\[main\] Inserted (\d+) keys in ([0-9.eE+-]+) seconds`)
	retrievedRe = regexp.MustCompile(`^\[main\] Retrieved (\d+)/(\d+) keys in ([0-9.eE+-]+) seconds`)
)

// Timings is what one variant run reports.
type Timings struct {
	Inserted        int
	Found           int
	Total           int
	InsertSeconds   float64
	RetrieveSeconds float64
}

// Seconds is the execution time of the run: both phases together.
func (t Timings) Seconds() float64 {
	return t.InsertSeconds + t.RetrieveSeconds
}

// Lost is how many keys the retrieval phase did not find.
func (t Timings) Lost() int {
	return t.Total - t.Found
}

// ParseTimings reads a variant's stdout and extracts the insert and retrieve
// lines. Every other line is ignored.
func ParseTimings(r io.Reader) (Timings, error) {
	var t Timings
	var sawInsert, sawRetrieve bool
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if m := insertedRe.FindStringSubmatch(line); m != nil {
			t.Inserted, _ = strconv.Atoi(m[1])
			secs, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				return t, fmt.Errorf("harness: parse %q: %w", line, err)
			}
			t.InsertSeconds = secs
			sawInsert = true
		} else if m := retrievedRe.FindStringSubmatch(line); m != nil {
			t.Found, _ = strconv.Atoi(m[1])
			t.Total, _ = strconv.Atoi(m[2])
			secs, err := strconv.ParseFloat(m[3], 64)
			if err != nil {
				return t, fmt.Errorf("harness: parse %q: %w", line, err)
			}
			t.RetrieveSeconds = secs
			sawRetrieve = true
		}
	}
	if err := sc.Err(); err != nil {
		return t, fmt.Errorf("harness: read output: %w", err)
	}
	if !sawInsert {
		return t, fmt.Errorf("%w: Inserted", ErrNoTimings)
	}
	if !sawRetrieve {
		return t, fmt.Errorf("%w: Retrieved", ErrNoTimings)
	}
	return t, nil
}
