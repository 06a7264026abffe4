// Package config loads the configuration of the variant binaries and the
// execution harness.
//
// Sources are applied in increasing priority: the struct defaults, an
// optional YAML file, then environment variables under a per-binary prefix.
// Environment keys are the lowercased variable name without the prefix, so
// HASHTABLE_LOG_LEVEL sets log_level.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"parallel_hashtable/keys"
)

const (
	VariantEnvPrefix = "HASHTABLE_"
	HarnessEnvPrefix = "EXECUTION_"
)

// Variant configures one run of a hash-table variant. The thread count is
// not part of it: it is the binary's single positional argument.
type Variant struct {
	// Keys is the size of the synthetic key universe.
	Keys int `koanf:"keys"`
	// Seed seeds the key generator; 0 seeds from the clock.
	Seed     uint64 `koanf:"seed"`
	LogLevel string `koanf:"log_level"`
}

func variantDefaults() map[string]any {
	return map[string]any{
		"keys":      keys.DefaultCount,
		"seed":      0,
		"log_level": "warn",
	}
}

func DefaultVariant() Variant {
	return Variant{
		Keys:     keys.DefaultCount,
		Seed:     0,
		LogLevel: "warn",
	}
}

func (c *Variant) Verify() error {
	if c.Keys <= 0 {
		return fmt.Errorf("config: keys must be positive, got %d", c.Keys)
	}
	return nil
}

// Harness configures a sweep of variants over thread counts.
type Harness struct {
	Programs []string `koanf:"programs"`
	Threads  []int    `koanf:"threads"`
	// Trials is how many times each (program, threads) pair runs; the
	// recorded time is the mean.
	Trials   int    `koanf:"trials"`
	Output   string `koanf:"output"`
	BinDir   string `koanf:"bin_dir"`
	LogLevel string `koanf:"log_level"`
}

func harnessDefaults() map[string]any {
	d := DefaultHarness()
	return map[string]any{
		"programs":  d.Programs,
		"threads":   d.Threads,
		"trials":    d.Trials,
		"output":    d.Output,
		"bin_dir":   d.BinDir,
		"log_level": d.LogLevel,
	}
}

func DefaultHarness() Harness {
	return Harness{
		Programs: []string{"parallel_mutex", "parallel_mutex_opt", "parallel_spin"},
		Threads:  []int{1, 2, 3, 4, 5, 6, 7, 8, 12, 16},
		Trials:   1,
		Output:   "execution_times.csv",
		BinDir:   ".",
		LogLevel: "info",
	}
}

func (c *Harness) Verify() error {
	if len(c.Programs) == 0 {
		return errors.New("config: programs must not be empty")
	}
	if len(c.Threads) == 0 {
		return errors.New("config: threads must not be empty")
	}
	for _, n := range c.Threads {
		if n <= 0 {
			return fmt.Errorf("config: thread count must be positive, got %d", n)
		}
	}
	if c.Trials <= 0 {
		return fmt.Errorf("config: trials must be positive, got %d", c.Trials)
	}
	if c.Output == "" {
		return errors.New("config: output is required")
	}
	return nil
}

// Loader reads configuration from a YAML file and the environment.
type Loader struct {
	k         *koanf.Koanf
	defaults  map[string]any
	envPrefix string
	filePath  string
}

// Option configures a Loader.
type Option func(*Loader)

func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithDefaults sets the lowest-priority values.
func WithDefaults(defaults map[string]any) Option {
	return func(l *Loader) {
		l.defaults = defaults
	}
}

func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{k: koanf.New(".")}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fills target from every configured source. target should be the
// zero value: slices already in it are overwritten element by element, not
// replaced.
func (l *Loader) Load(target any) error {
	if l.defaults != nil {
		if err := l.k.Load(mapProvider(l.defaults), nil); err != nil {
			return fmt.Errorf("load defaults: %w", err)
		}
	}
	if l.filePath != "" {
		if err := l.k.Load(file.Provider(l.filePath), yaml.Parser()); err != nil {
			return fmt.Errorf("load config file %s: %w", l.filePath, err)
		}
	}
	if l.envPrefix != "" {
		prefix := l.envPrefix
		// list values are comma separated: EXECUTION_THREADS=1,2,4
		provider := env.ProviderWithValue(prefix, ".", func(k string, v string) (string, any) {
			k = strings.ToLower(strings.TrimPrefix(k, prefix))
			if strings.Contains(v, ",") {
				return k, strings.Split(v, ",")
			}
			return k, v
		})
		if err := l.k.Load(provider, nil); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
	}
	if err := l.k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// LoadVariant returns the variant configuration from the environment.
func LoadVariant() (Variant, error) {
	var cfg Variant
	l := NewLoader(WithDefaults(variantDefaults()), WithEnvPrefix(VariantEnvPrefix))
	if err := l.Load(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Verify()
}

// LoadHarness returns the harness configuration from path (if not empty)
// and the environment.
func LoadHarness(path string) (Harness, error) {
	var cfg Harness
	l := NewLoader(WithDefaults(harnessDefaults()), WithConfigFile(path), WithEnvPrefix(HarnessEnvPrefix))
	if err := l.Load(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Verify()
}
