// Package config loads the pipeline configuration file.
//
// Configuration is YAML on disk, validated against an embedded CUE
// schema before it is decoded, so a typoed key or missing required
// field fails at startup with a positioned message instead of
// surfacing as a confusing runtime error.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/matchload/internal/match"
)

//go:embed schema.cue
var schemaCUE string

// Config holds the pipeline settings.
type Config struct {
	// Database is the SQLite database path (canonical + audit tables).
	Database string `yaml:"database"`

	// StagingDir is the holding area listed for feed files.
	StagingDir string `yaml:"staging_dir"`

	// Pattern filters staged files by base name.
	Pattern string `yaml:"pattern"`
}

// Default returns a config with defaults applied and no locations set.
func Default() *Config {
	return &Config{Pattern: match.DefaultFilePattern}
}

// Load reads, validates and decodes a YAML config file.
// The file must satisfy the embedded schema; validation failures carry
// the offending field in the message.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if cfg.Pattern == "" {
		cfg.Pattern = match.DefaultFilePattern
	}
	return cfg, nil
}

// validate unifies the decoded document with the #Config definition.
func validate(raw map[string]any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup #Config: %w", err)
	}

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s", cueerrors.Details(err, nil))
	}
	return nil
}
