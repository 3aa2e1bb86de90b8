// Package config loads the optional fitchcheck.yaml configuration file.
package config

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"
)

// DefaultPath is where Load looks when no -config flag is given. A missing
// file at this path is not an error; the defaults apply.
const DefaultPath = "fitchcheck.yaml"

// defaultVariables is the conventional set of quantifier variable names.
var defaultVariables = []string{"x", "y", "z", "u", "v", "w"}

type Config struct {
	Version string `yaml:"version"`
	// Variables is the set of identifiers quantifiers may bind.
	Variables []string `yaml:"variables,omitempty"`
	// Unicode selects unicode connectives in rendered formulas and
	// formatter output; ASCII when false.
	Unicode *bool `yaml:"unicode,omitempty"`
	// Pretty makes the human-readable reporter the default.
	Pretty bool `yaml:"pretty,omitempty"`
	// MarkdownLanguages lists the fenced-code-block info strings that are
	// treated as proofs when checking a markdown file.
	MarkdownLanguages []string `yaml:"markdown_languages,omitempty"`
}

func Default() *Config {
	return &Config{
		Version:           "1.0",
		Variables:         defaultVariables,
		MarkdownLanguages: []string{"fitch", "proof"},
	}
}

// Load reads and validates a config file. When path is DefaultPath and the
// file does not exist, the defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	config, err := ParseFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func ParseFromBytes(data []byte) (*Config, error) {
	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s", c.Version)
	}
	if len(c.Variables) == 0 {
		c.Variables = defaultVariables
	}
	for _, v := range c.Variables {
		if v == "" || !isLowerWord(v) {
			return fmt.Errorf("invalid variable name: %q", v)
		}
	}
	if len(c.MarkdownLanguages) == 0 {
		c.MarkdownLanguages = []string{"fitch", "proof"}
	}
	return nil
}

// UseUnicode reports the rendering preference, defaulting to unicode.
func (c *Config) UseUnicode() bool {
	return c.Unicode == nil || *c.Unicode
}

// VariableSet returns the allowed variable names as a lookup set.
func (c *Config) VariableSet() map[string]bool {
	set := make(map[string]bool, len(c.Variables))
	for _, v := range c.Variables {
		set[v] = true
	}
	return set
}

// PrintAsYAML dumps the effective configuration.
func (c *Config) PrintAsYAML() {
	out, err := yaml.Marshal(c)
	if err != nil {
		fmt.Printf("error marshaling config: %v\n", err)
		return
	}
	fmt.Println(strings.TrimRight(string(out), "\n"))
}

func isLowerWord(s string) bool {
	for i, r := range s {
		if i == 0 && !unicode.IsLower(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
