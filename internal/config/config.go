// Package config loads wordmerge settings from an optional YAML file and the
// environment.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/takaryo1010/wordmerge/internal/errors"
	"github.com/takaryo1010/wordmerge/internal/logger"
	"github.com/takaryo1010/wordmerge/internal/record"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "wordmerge.yaml"

const (
	LogFormatText = "text"
	LogFormatJSON = "json"

	ReportMarkdown = "markdown"
	ReportHTML     = "html"
)

// Config holds the tunable settings. The data file paths are fixed and are
// not read from the file.
type Config struct {
	OriginalPath   string `yaml:"-"`
	TranslatedPath string `yaml:"-"`
	OutputPath     string `yaml:"-"`

	Indent    int          `yaml:"indent"`
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"`
	DryRun    bool         `yaml:"dry_run"`
	Report    ReportConfig `yaml:"report"`
}

// ReportConfig enables the merge report when Path is set.
type ReportConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Indent:    record.DefaultIndent,
		LogLevel:  "info",
		LogFormat: LogFormatText,
		Report:    ReportConfig{Format: ReportMarkdown},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// WORDMERGE_LOG_LEVEL and WORDMERGE_LOG_FORMAT. An empty path means
// DefaultFile, which may be absent; an explicit path must exist. The result
// is not validated so that command-line flags can still override it.
func Load(path string) (*Config, error) {
	cfg := Default()

	optional := path == ""
	if optional {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapConfig("failed to parse "+path, err)
		}
	case optional && os.IsNotExist(err):
	default:
		return nil, errors.WrapConfig("failed to read "+path, err)
	}

	if v := os.Getenv("WORDMERGE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("WORDMERGE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize lowercases enumerated settings and fills empty ones.
func (c *Config) Normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.Report.Format = strings.ToLower(strings.TrimSpace(c.Report.Format))
	if c.Report.Format == "md" {
		c.Report.Format = ReportMarkdown
	}
	if c.Report.Format == "" {
		c.Report.Format = ReportMarkdown
	}
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if c.Indent < 0 {
		return errors.WrapConfig("indent must not be negative", nil)
	}
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return errors.WrapConfig("unknown log level "+c.LogLevel, nil)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return errors.WrapConfig("unknown log format "+c.LogFormat, nil)
	}
	switch c.Report.Format {
	case ReportMarkdown, ReportHTML:
	default:
		return errors.WrapConfig("unknown report format "+c.Report.Format, nil)
	}
	return nil
}
