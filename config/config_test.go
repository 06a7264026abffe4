package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadVariantDefaults(t *testing.T) {
	cfg, err := LoadVariant()
	require.NoError(t, err)
	assert.Equal(t, DefaultVariant(), cfg)
	assert.Equal(t, 100000, cfg.Keys)
}

func TestLoadVariantEnv(t *testing.T) {
	t.Setenv("HASHTABLE_KEYS", "20")
	t.Setenv("HASHTABLE_SEED", "7")
	t.Setenv("HASHTABLE_LOG_LEVEL", "debug")

	cfg, err := LoadVariant()
	require.NoError(t, err)
	assert.Equal(t, Variant{Keys: 20, Seed: 7, LogLevel: "debug"}, cfg)
}

func TestLoadVariantInvalid(t *testing.T) {
	t.Setenv("HASHTABLE_KEYS", "0")
	_, err := LoadVariant()
	assert.Error(t, err)
}

func TestLoadHarnessFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "execution.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
programs:
  - parallel_mutex
  - parallel_spin
threads: [1, 2, 4]
trials: 3
bin_dir: ./bin
`), 0o600))
	t.Setenv("EXECUTION_OUTPUT", "out.csv")
	t.Setenv("EXECUTION_THREADS", "2,8")

	cfg, err := LoadHarness(path)
	require.NoError(t, err)
	assert.Equal(t, Harness{
		Programs: []string{"parallel_mutex", "parallel_spin"},
		Threads:  []int{2, 8},
		Trials:   3,
		Output:   "out.csv",
		BinDir:   "./bin",
		LogLevel: "info",
	}, cfg)
}

func TestLoadHarnessDefaults(t *testing.T) {
	cfg, err := LoadHarness("")
	require.NoError(t, err)
	assert.Equal(t, DefaultHarness(), cfg)
}

func TestLoadHarnessMissingFile(t *testing.T) {
	_, err := LoadHarness(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHarnessVerify(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Harness)
	}{
		{"no programs", func(c *Harness) { c.Programs = nil }},
		{"no threads", func(c *Harness) { c.Threads = nil }},
		{"zero threads", func(c *Harness) { c.Threads = []int{1, 0} }},
		{"zero trials", func(c *Harness) { c.Trials = 0 }},
		{"no output", func(c *Harness) { c.Output = "" }},
	}
	for _, test := range tests {
		cfg := DefaultHarness()
		test.mutate(&cfg)
		assert.Error(t, cfg.Verify(), test.name)
	}
	cfg := DefaultHarness()
	assert.NoError(t, cfg.Verify())
}
