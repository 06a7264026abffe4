package harness

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"parallel_hashtable/config"
)

// csvHeader is the header of both the progress table and the CSV file.
var csvHeader = []string{"Program", "Threads", "Execution_Time"}

// A Record is the execution time of one program at one thread count.
type Record struct {
	Program string
	Threads int
	Seconds float64
}

func (r Record) row() []string {
	return []string{r.Program, strconv.Itoa(r.Threads), strconv.FormatFloat(r.Seconds, 'f', 6, 64)}
}

// Sweep runs every configured program at every configured thread count.
type Sweep struct {
	Runner Runner
	Config config.Harness
	// Out receives the table as it is produced. Defaults to io.Discard.
	Out io.Writer
	Log *zap.Logger
}

// Run executes the sweep in order, program by program. The first failing run
// ends the sweep.
func (s *Sweep) Run(ctx context.Context) ([]Record, error) {
	out := s.Out
	if out == nil {
		out = io.Discard
	}
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	trials := s.Config.Trials
	if trials <= 0 {
		trials = 1
	}

	progress := csv.NewWriter(out)
	if err := progress.Write(csvHeader); err != nil {
		return nil, err
	}
	progress.Flush()

	var records []Record
	for _, program := range s.Config.Programs {
		for _, threads := range s.Config.Threads {
			var total float64
			for trial := 0; trial < trials; trial++ {
				t, err := s.Runner.Run(ctx, program, threads)
				if err != nil {
					return records, err
				}
				if t.Lost() != 0 {
					log.Warn("keys lost",
						zap.String("program", program),
						zap.Int("threads", threads),
						zap.Int("lost", t.Lost()))
				}
				total += t.Seconds()
			}
			rec := Record{
				Program: filepath.Base(program),
				Threads: threads,
				Seconds: total / float64(trials),
			}
			log.Debug("run complete", zap.String("program", rec.Program), zap.Int("threads", threads))
			records = append(records, rec)

			if err := progress.Write(rec.row()); err != nil {
				return records, err
			}
			progress.Flush()
			if err := progress.Error(); err != nil {
				return records, err
			}
		}
	}
	return records, nil
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records to path, replacing it.
func WriteCSVFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("harness: could not write to %s: %w", path, err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return fmt.Errorf("harness: write %s: %w", path, err)
	}
	return f.Close()
}
