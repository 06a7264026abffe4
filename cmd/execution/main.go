// Command execution runs every hash-table variant at every configured thread
// count, prints a Program,Threads,Execution_Time table as it goes and saves
// the same table to a CSV file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"parallel_hashtable/config"
	"parallel_hashtable/harness"
	"parallel_hashtable/logutil"
)

func main() {
	log := logutil.Must("info")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		logutil.Fatal(log, "execution failed", zap.Error(err))
	}
}

func app() *cli.App {
	return &cli.App{
		Name:  "execution",
		Usage: "benchmark the hash-table variants over a range of thread counts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file with programs, threads, trials, output and bin_dir",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "CSV file to write (overrides config)",
			},
			&cli.StringFlag{
				Name:  "bin-dir",
				Usage: "directory holding the variant binaries (overrides config)",
			},
			&cli.IntFlag{
				Name:  "trials",
				Usage: "runs per program and thread count (overrides config)",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadHarness(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("bin-dir") {
		cfg.BinDir = c.String("bin-dir")
	}
	if c.IsSet("trials") {
		cfg.Trials = c.Int("trials")
	}
	if err := cfg.Verify(); err != nil {
		return err
	}

	log, err := logutil.New(cfg.LogLevel, nil)
	if err != nil {
		return err
	}
	defer log.Sync()

	s := &harness.Sweep{
		Runner: harness.ExecRunner{BinDir: cfg.BinDir},
		Config: cfg,
		Out:    os.Stdout,
		Log:    log,
	}
	records, err := s.Run(c.Context)
	if err != nil {
		return err
	}
	if err := harness.WriteCSVFile(cfg.Output, records); err != nil {
		// the table has already been printed; losing the file is not fatal
		log.Error("save results", zap.Error(err))
		return nil
	}
	log.Info("results saved", zap.String("output", cfg.Output), zap.Int("rows", len(records)))
	return nil
}
