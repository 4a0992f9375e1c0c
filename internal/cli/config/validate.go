package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/leapstack-labs/doccheck/internal/cli/output"
)

// ErrNoTree is returned when a check is requested without a tree file.
var ErrNoTree = errors.New("no tree file given (pass it as an argument or set 'tree' in doccheck.yaml)")

// Validate checks values that do not depend on the command being run.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if c.Quiet && c.Verbose {
		return errors.New("quiet and verbose cannot both be set")
	}
	return nil
}

// ValidateForCheck checks that the inputs of a check run exist.
func (c *Config) ValidateForCheck() error {
	if c.Tree == "" {
		return ErrNoTree
	}
	inputs := []struct{ name, path string }{
		{"tree file", c.Tree},
		{"source root", c.SourceRoot},
		{"installed file list", c.Installed},
		{"ignore file", c.Ignore},
	}
	for _, in := range inputs {
		if in.path == "" {
			continue
		}
		if _, err := os.Stat(in.path); err != nil {
			return fmt.Errorf("%s does not exist: %s", in.name, in.path)
		}
	}
	return nil
}
