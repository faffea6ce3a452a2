// Package config loads and validates twgroup.json.
//
// The file is optional. Every field falls back to the rewrite package
// defaults, so an empty object is a valid configuration.
package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"

	"github.com/aledsdavies/twgroup/core/errors"
	"github.com/aledsdavies/twgroup/runtime/rewrite"
)

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = "twgroup.json"

// CurrentVersion is the config format version written by this release.
const CurrentVersion = "v1"

// Config mirrors twgroup.json
type Config struct {
	Version    string   `json:"version,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
	Dialects   []string `json:"dialects,omitempty"`
	Strict     bool     `json:"strict,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:    CurrentVersion,
		Extensions: rewrite.DefaultExtensions(),
		Dialects:   rewrite.DialectNames(),
	}
}

// Load reads the config at path. An empty path means DefaultFileName, and a
// missing default file yields Default(). A missing explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, errors.NewInputError(fmt.Sprintf("failed to read config %s", path), err)
	}

	cfg, err := Parse(data)
	if err != nil {
		var ge *errors.GroupError
		if stderrors.As(err, &ge) {
			ge.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse validates data against the config schema and returns the config
// with defaults filled in.
func Parse(data []byte) (*Config, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.NewConfigError("config is not valid JSON", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, errors.NewConfigError("config does not match schema", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("config could not be decoded", err)
	}
	if err := cfg.validateDialects(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// RewriteOptions converts the config into rewrite options.
func (c *Config) RewriteOptions() []rewrite.Option {
	return []rewrite.Option{
		rewrite.WithDialects(c.Dialects...),
		rewrite.WithExtensions(c.Extensions...),
		rewrite.WithStrict(c.Strict),
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if len(c.Extensions) == 0 {
		c.Extensions = d.Extensions
	}
	if len(c.Dialects) == 0 {
		c.Dialects = d.Dialects
	}
}

func (c *Config) validateDialects() error {
	known := rewrite.DialectNames()
	for _, name := range c.Dialects {
		if _, ok := rewrite.LookupDialect(name); ok {
			continue
		}
		msg := fmt.Sprintf("unknown dialect %q (known: %s)", name, strings.Join(known, ", "))
		if match := findClosestMatch(name, known); match != "" {
			msg += fmt.Sprintf("; did you mean %q?", match)
		}
		return errors.New(errors.ErrConfigInvalid, msg).WithContext("dialect", name)
	}
	return nil
}

// findClosestMatch finds the closest string match using fuzzy matching
func findClosestMatch(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}

// compileSchema compiles the embedded schema with the semver format enabled
func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if compiler.Formats == nil {
		compiler.Formats = make(map[string]func(any) bool)
	}
	compiler.Formats["semver"] = func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return true
		}
		return semver.IsValid(s)
	}

	url := "schema://twgroup.json"
	if err := compiler.AddResource(url, strings.NewReader(configSchema)); err != nil {
		return nil, errors.NewConfigError("config schema is invalid", err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, errors.NewConfigError("config schema is invalid", err)
	}
	return schema, nil
}
