// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/walteh/rtlmigrate/pkg/convert"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultFilenames are searched, in order, when no config path is given
var DefaultFilenames = []string{
	".rtlmigrate.yaml",
	".rtlmigrate.yml",
	".rtlmigrate.json",
	".rtlmigrate.hcl",
}

// DefaultConcurrency is used when the config leaves concurrency unset
const DefaultConcurrency = 4

// DefaultInclude returns the globs used when the config lists none
func DefaultInclude() []string {
	return []string{
		"**/*.test.{js,jsx,ts,tsx}",
		"**/*.spec.{js,jsx,ts,tsx}",
	}
}

// DefaultExclude returns the globs used when the config lists none
func DefaultExclude() []string {
	return []string{
		"**/node_modules/**",
	}
}

// 🧩 CustomRule is a user supplied pattern rule. Replace is expanded as a
// regexp template against the whole file, so $1 and ${name} refer to capture
// groups and anchors behave as they did when matching.
type CustomRule struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Pattern     string `json:"pattern" yaml:"pattern" validate:"required,go_regexp"`
	Replace     string `json:"replace" yaml:"replace"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Include     []string     `json:"include,omitempty" yaml:"include,omitempty" validate:"dive,required,glob"`
	Exclude     []string     `json:"exclude,omitempty" yaml:"exclude,omitempty" validate:"dive,required,glob"`
	Concurrency int          `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"min=0,max=256"`
	Disable     []string     `json:"disable,omitempty" yaml:"disable,omitempty" validate:"dive,rule_name"`
	Rules       []CustomRule `json:"rules,omitempty" yaml:"rules,omitempty" validate:"dive"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Find returns the first default config file in dir, or "" when there is none
func Find(dir string) (string, error) {
	for _, name := range DefaultFilenames {
		path := filepath.Join(dir, name)
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !os.IsNotExist(err) {
			return "", errors.Errorf("checking %s: %w", path, err)
		}
	}
	return "", nil
}

// LoadOrDefault loads path if set, otherwise the first default file in dir,
// otherwise the built-in defaults
func LoadOrDefault(ctx context.Context, path, dir string) (*Config, error) {
	if path == "" {
		found, err := Find(dir)
		if err != nil {
			return nil, errors.Errorf("finding config: %w", err)
		}
		if found == "" {
			zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")
			return Default(), nil
		}
		path = found
	}
	return Load(ctx, path)
}

func (cfg *Config) setDefaults() {
	if len(cfg.Include) == 0 {
		cfg.Include = DefaultInclude()
	}
	if len(cfg.Exclude) == 0 {
		cfg.Exclude = DefaultExclude()
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
}

// 🔍 Validate fills defaults and checks the configuration
func (cfg *Config) Validate() error {
	cfg.setDefaults()

	v := validator.New()
	if err := v.RegisterValidation("glob", validateGlob); err != nil {
		return errors.Errorf("registering glob validation: %w", err)
	}
	if err := v.RegisterValidation("rule_name", validateRuleName); err != nil {
		return errors.Errorf("registering rule_name validation: %w", err)
	}
	if err := v.RegisterValidation("go_regexp", validateRegexp); err != nil {
		return errors.Errorf("registering go_regexp validation: %w", err)
	}

	if err := v.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	seen := map[string]bool{}
	for _, name := range convert.DefaultRuleNames() {
		seen[name] = true
	}
	for _, r := range cfg.Rules {
		if seen[r.Name] {
			return errors.Errorf("rule %q: name already in use", r.Name)
		}
		seen[r.Name] = true
	}

	return nil
}

func validateGlob(fl validator.FieldLevel) bool {
	return doublestar.ValidatePattern(fl.Field().String())
}

func validateRuleName(fl validator.FieldLevel) bool {
	return slices.Contains(convert.DefaultRuleNames(), fl.Field().String())
}

func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

// formatValidationError turns validator errors into one readable message
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Errorf("validating config: %w", err)
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Namespace()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", e.Namespace(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", e.Namespace(), e.Param()))
		case "glob":
			messages = append(messages, fmt.Sprintf("%s is not a valid glob: %v", e.Namespace(), e.Value()))
		case "rule_name":
			messages = append(messages, fmt.Sprintf("%s names an unknown rule: %v", e.Namespace(), e.Value()))
		case "go_regexp":
			messages = append(messages, fmt.Sprintf("%s is not a valid regular expression: %v", e.Namespace(), e.Value()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed validation: %s", e.Namespace(), e.Tag()))
		}
	}
	return errors.Errorf("invalid config: %s", strings.Join(messages, "; "))
}

// 🔧 PatternRule builds the engine rule for a custom rule
func (r CustomRule) PatternRule() (convert.PatternRule, error) {
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return convert.PatternRule{}, errors.Errorf("compiling rule %q: %w", r.Name, err)
	}

	desc := r.Description
	if desc == "" {
		desc = r.Name
	}

	rule := convert.PatternRule{
		Name:        r.Name,
		Pattern:     re,
		Template:    r.Replace,
		Description: desc,
	}
	// an empty template deletes the match
	if r.Replace == "" {
		rule.Rewrite = func(string, []string) (string, error) {
			return "", nil
		}
	}
	return rule, nil
}

// ConverterOptions maps the config onto converter options
func (cfg *Config) ConverterOptions() ([]convert.Option, error) {
	opts := []convert.Option{convert.WithDisabled(cfg.Disable...)}
	for _, r := range cfg.Rules {
		rule, err := r.PatternRule()
		if err != nil {
			return nil, err
		}
		opts = append(opts, convert.WithPatterns(rule))
	}
	return opts, nil
}

// NewConverter builds a converter with this config's rules applied
func (cfg *Config) NewConverter() (*convert.Converter, error) {
	opts, err := cfg.ConverterOptions()
	if err != nil {
		return nil, errors.Errorf("building converter options: %w", err)
	}
	return convert.New(opts...), nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("include=%v exclude=%v concurrency=%d disabled=%d custom=%d",
		cfg.Include, cfg.Exclude, cfg.Concurrency, len(cfg.Disable), len(cfg.Rules))
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}
