// Package config loads doccheck configuration.
//
// Values come from, in increasing precedence: built-in defaults, a
// doccheck.yaml file, DOCCHECK_* environment variables and command-line
// flags. A .env file next to the configuration file is loaded into the
// environment first.
package config

import "github.com/leapstack-labs/doccheck/pkg/core"

// Config holds all CLI configuration options.
type Config struct {
	Tree         string      `koanf:"tree"`
	SourceRoot   string      `koanf:"source_root"`
	BuildRoot    string      `koanf:"build_root"`
	Installed    string      `koanf:"installed"`
	Log          string      `koanf:"log"`
	Ignore       string      `koanf:"ignore"`
	CheckIgnored bool        `koanf:"check_ignored"`
	Jobs         int         `koanf:"jobs"`
	Quiet        bool        `koanf:"quiet"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Lint         *LintConfig `koanf:"lint"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// LintConfig selects rules and adjusts their severity.
type LintConfig struct {
	Disabled []string                 `koanf:"disabled"`
	Severity map[string]core.Severity `koanf:"severity"`
}

// Default configuration values.
const (
	DefaultSourceRoot = "."
	DefaultOutput     = "auto" // TTY=text, otherwise markdown
	DefaultJobs       = 0      // GOMAXPROCS
)

// ConfigFileNames are searched for, in order, in each directory.
var ConfigFileNames = []string{"doccheck.yaml", "doccheck.yml"}

// Default returns the configuration used when nothing has been loaded.
func Default() *Config {
	return &Config{
		SourceRoot:   DefaultSourceRoot,
		Jobs:         DefaultJobs,
		OutputFormat: DefaultOutput,
	}
}
