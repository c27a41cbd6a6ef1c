package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Name of the configuration file discovered by walking up from the
// working directory.
const defaultConfigPath = ".checkpy.toml"

type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	*d = Duration(duration)
	return err
}

// CheckerConfig overrides a built-in checker definition.
type CheckerConfig struct {
	// Command template. {path}, {ignore} and {rcfile} are interpolated.
	Command string `toml:"command"`
	// Where to obtain the checker when it is not installed.
	InstallFrom string `toml:"install_from"`
}

// Config for checkpy.
//
// This is loaded from a TOML file given with --config, or from the
// nearest .checkpy.toml above the working directory.
type Config struct {
	// Extra warning codes to suppress, merged into the default set.
	Ignore map[string]string `toml:"ignore"`
	// Cancel a checker that has not completed within this duration.
	// Zero waits forever.
	Deadline Duration `toml:"deadline"`
	Debug    bool     `toml:"debug"`
	// Per-checker overrides, e.g. [checker.pylint].
	Checker map[string]CheckerConfig `toml:"checker"`
}

// readConfig reads configuration from a reader, rejecting keys it does
// not know about.
func readConfig(r io.Reader) (*Config, error) {
	config := &Config{}
	md, err := toml.NewDecoder(r).Decode(config)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := []string{}
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("unknown keys %s", strings.Join(keys, ","))
	}
	return config, nil
}

func readConfigString(s string) (*Config, error) {
	return readConfig(strings.NewReader(s))
}

func readConfigFile(filename string) (*Config, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readConfig(r)
}

// findDefaultConfigFile looks for .checkpy.toml in the working
// directory and its ancestors. The nearest one wins.
func findDefaultConfigFile() (string, bool, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(wd, defaultConfigPath)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", false, nil
		}
		wd = parent
	}
}

func loadConfig(path string) (*Config, error) {
	if path != "" {
		return readConfigFile(path)
	}
	found, ok, err := findDefaultConfigFile()
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Config{}, nil
	}
	return readConfigFile(found)
}

// registryFromConfig builds the suppression registry: the default set
// plus any extra codes from the config. TOML tables do not preserve
// key order, so config extras are appended in sorted order.
func registryFromConfig(conf *Config) *Registry {
	registry := defaultRegistry()
	codes := make([]string, 0, len(conf.Ignore))
	for code := range conf.Ignore {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		registry.Add(code, conf.Ignore[code])
	}
	return registry
}
