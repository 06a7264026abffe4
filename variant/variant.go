// Package variant is the command-line front end shared by the hash-table
// variant binaries. Each binary differs only in the protocol and lock kind it
// benchmarks and accepts exactly one argument, the number of threads.
package variant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"parallel_hashtable/bench"
	"parallel_hashtable/config"
	"parallel_hashtable/keys"
	"parallel_hashtable/locks"
	"parallel_hashtable/logutil"
	"parallel_hashtable/sharded_hashmap"
)

// ErrUsage reports a missing or malformed thread count.
var ErrUsage = errors.New("usage error")

// Spec identifies a variant.
type Spec struct {
	Name     string
	Protocol sharded_hashmap.Protocol
	Lock     locks.Kind
}

// App returns the CLI application for s. Report lines go to stdout.
func App(s Spec, cfg config.Variant, stdout io.Writer, log *zap.Logger) *cli.App {
	return &cli.App{
		Name:            s.Name,
		Usage:           fmt.Sprintf("insert and retrieve %d keys in a %v table over %v locks", cfg.Keys, s.Protocol, s.Lock),
		ArgsUsage:       "<num_threads>",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       os.Stderr,
		Action: func(c *cli.Context) error {
			threads, err := parseThreads(s.Name, c.Args().Slice())
			if err != nil {
				return err
			}
			return run(c.Context, s, cfg, threads, stdout, log)
		},
	}
}

func parseThreads(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: usage: ./%s <num_threads>", ErrUsage, name)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: must enter a valid number of threads to run, got %q", ErrUsage, args[0])
	}
	return n, nil
}

func run(ctx context.Context, s Spec, cfg config.Variant, threads int, stdout io.Writer, log *zap.Logger) error {
	ks := keys.Generate(cfg.Keys, cfg.Seed)
	log.Debug("keys generated", zap.Int("keys", len(ks)), zap.Uint64("seed", cfg.Seed))

	_, err := bench.Run(ctx, bench.Options{
		Table:   sharded_hashmap.New(s.Protocol, s.Lock),
		Keys:    ks,
		Threads: threads,
		Out:     stdout,
		Logger:  log.Named(s.Name),
	})
	return err
}

// Main runs the variant against the process arguments and exits. Every fatal
// condition ends here.
func Main(s Spec) {
	log := logutil.Must("warn")
	cfg, err := config.LoadVariant()
	if err != nil {
		logutil.Fatal(log, "load config", zap.Error(err))
	}
	log = logutil.Must(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = App(s, cfg, os.Stdout, log).RunContext(ctx, os.Args)
	stop()
	if err != nil {
		logutil.Fatal(log, err.Error())
	}
	_ = log.Sync()
}
