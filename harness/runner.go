package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// A Runner runs one variant with a thread count and returns what it reported.
type Runner interface {
	Run(ctx context.Context, program string, threads int) (Timings, error)
}

// ExecRunner runs variants as subprocesses: <BinDir>/<program> <threads>.
type ExecRunner struct {
	BinDir string
	// Stderr receives the variant's diagnostics. Defaults to os.Stderr.
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, program string, threads int) (Timings, error) {
	path := program
	if !filepath.IsAbs(program) {
		path = filepath.Join(r.BinDir, program)
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, path, strconv.Itoa(threads))
	cmd.Stdout = &stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return Timings{}, fmt.Errorf("harness: run %s %d: %w", path, threads, err)
	}
	t, err := ParseTimings(&stdout)
	if err != nil {
		return t, fmt.Errorf("%s %d: %w", path, threads, err)
	}
	return t, nil
}
