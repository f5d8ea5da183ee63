// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads commitgate settings from defaults, an optional YAML
// file, and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bartekus/commitgate/internal/rules"
)

// DefaultFile is read when present and no explicit path is given.
const DefaultFile = ".commitgate.yaml"

// EnvPrefix namespaces commitgate's own environment overrides.
const EnvPrefix = "COMMITGATE_"

// CI variables understood without the commitgate prefix.
var ciEnv = map[string]string{
	"COMMIT_BASE_REF":       "base.override",
	"GITHUB_BASE_REF":       "base.host_branch",
	"GITHUB_DEFAULT_BRANCH": "base.default_branch",
}

type Config struct {
	Base    Base    `koanf:"base"`
	History History `koanf:"history"`
	Rules   Rules   `koanf:"rules"`
	Output  Output  `koanf:"output"`
	Logging Logging `koanf:"logging"`
}

// Base controls which ref the current branch is compared against.
type Base struct {
	Override      string `koanf:"override"`
	HostBranch    string `koanf:"host_branch"`
	DefaultBranch string `koanf:"default_branch" validate:"required"`
	Remote        string `koanf:"remote" validate:"required"`
}

type History struct {
	Backend  string `koanf:"backend" validate:"oneof=git gogit"`
	RepoPath string `koanf:"repo_path" validate:"required"`
}

type Rules struct {
	MaxSubjectLength  int      `koanf:"max_subject_length" validate:"gt=0"`
	MaxBodyLineLength int      `koanf:"max_body_line_length" validate:"gt=0"`
	ImperativeHints   []string `koanf:"imperative_hints" validate:"min=1,dive,required"`
}

type Output struct {
	Format     string `koanf:"format" validate:"oneof=text json yaml"`
	Convention string `koanf:"convention"`
	ReportFile string `koanf:"report_file"`
}

type Logging struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn warning error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// Defaults returns a Config with the stock conventions.
func Defaults() *Config {
	ro := rules.DefaultOptions()
	return &Config{
		Base: Base{
			DefaultBranch: "main",
			Remote:        "origin",
		},
		History: History{
			Backend:  "git",
			RepoPath: ".",
		},
		Rules: Rules{
			MaxSubjectLength:  ro.MaxSubjectLength,
			MaxBodyLineLength: ro.MaxBodyLineLength,
			ImperativeHints:   ro.ImperativeHints,
		},
		Output: Output{
			Format:     "text",
			Convention: "SE-EDU",
		},
		Logging: Logging{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads configuration from YAML file + environment variables.
// Loading order: defaults → YAML file → env vars (later overrides earlier).
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	cfg := Defaults()

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	} else if _, err := os.Stat(DefaultFile); err == nil {
		if err := k.Load(file.Provider(DefaultFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", DefaultFile, err)
		}
	}

	// Empty values are skipped so an exported-but-blank variable never
	// clobbers a default.
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return EnvKey(key), value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Slices decode in place, so a shorter list from the file would leave
	// default entries behind.
	hints := cfg.Rules.ImperativeHints
	cfg.Rules.ImperativeHints = nil

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if len(cfg.Rules.ImperativeHints) == 0 {
		cfg.Rules.ImperativeHints = hints
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnvKey maps an environment variable name to a config key, or "" when the
// variable is not ours.
// COMMITGATE_RULES__MAX_SUBJECT_LENGTH → rules.max_subject_length
// Double underscore (__) separates nesting levels.
func EnvKey(name string) string {
	if key, ok := ciEnv[name]; ok {
		return key
	}
	if !strings.HasPrefix(name, EnvPrefix) {
		return ""
	}
	s := strings.TrimPrefix(name, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

var validate = validator.New()

// Validate checks field constraints and reports the first offending key.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config: %s fails %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// RuleOptions converts the rules section for rules.Registry.
func (c *Config) RuleOptions() rules.Options {
	return rules.Options{
		MaxSubjectLength:  c.Rules.MaxSubjectLength,
		MaxBodyLineLength: c.Rules.MaxBodyLineLength,
		ImperativeHints:   c.Rules.ImperativeHints,
	}
}
