package tidy

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the lint configuration file clang-tidy picks up from the
// project directory.
const FileName = ".clang-tidy"

// Config is the subset of the .clang-tidy schema fixcpp writes.
type Config struct {
	Checks            string   `yaml:"Checks"`
	WarningsAsErrors  string   `yaml:"WarningsAsErrors"`
	HeaderFilterRegex string   `yaml:"HeaderFilterRegex"`
	FormatStyle       string   `yaml:"FormatStyle"`
	User              string   `yaml:"User"`
	ExtraArgs         []string `yaml:"ExtraArgs"`
	ExtraArgsBefore   []string `yaml:"ExtraArgsBefore"`
}

// ForCheck returns a config that disables all checks, then enables check.
func ForCheck(check string) Config {
	return Config{
		Checks:          "-*," + check,
		FormatStyle:     "none",
		ExtraArgs:       []string{},
		ExtraArgsBefore: []string{},
	}
}

// SingleCheck reports the check selected by a config of the ForCheck form
// ("-*,<check>"), as left behind by an interrupted run.
func (c Config) SingleCheck() (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(c.Checks), "-*,")
	if !ok || rest == "" || strings.Contains(rest, ",") {
		return "", false
	}
	return rest, true
}

// Marshal renders c as .clang-tidy YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", FileName, err)
	}
	return data, nil
}

// Parse reads a .clang-tidy document.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", FileName, err)
	}
	return c, nil
}
