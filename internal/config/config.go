// Package config loads the optional sharpglue.hcl configuration file.
//
//	trusted {
//	  core   = "GodotSharp"
//	  editor = "GodotSharpEditor"
//	}
//	project {
//	  sdk_version      = default_sdk
//	  target_framework = "net8.0"
//	}
//	journal = ".sharpglue/journal.db"
//
// Every setting is optional. The variables default_sdk and default_framework
// can be referenced from expressions.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/roach88/sharpglue/internal/origin"
	"github.com/roach88/sharpglue/internal/project"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "sharpglue.hcl"

// DefaultJournal is the journal path used when none is configured.
const DefaultJournal = ".sharpglue/journal.db"

// Config is the decoded configuration.
type Config struct {
	Trusted *Trusted `hcl:"trusted,block"`
	Project *Project `hcl:"project,block"`
	Journal string   `hcl:"journal,optional"`
}

// Trusted names the two trusted owning modules.
type Trusted struct {
	Core   string `hcl:"core,optional"`
	Editor string `hcl:"editor,optional"`
}

// Project holds descriptor template settings.
type Project struct {
	SDKVersion      string `hcl:"sdk_version,optional"`
	TargetFramework string `hcl:"target_framework,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Journal: DefaultJournal}
}

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_sdk":       cty.StringVal(project.DefaultSDKVersion),
			"default_framework": cty.StringVal(project.DefaultTargetFramework),
		},
	}
}

// Load reads the config file at path. If path is DefaultFile and does not
// exist, the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultFile {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(path, src)
}

// Parse decodes HCL source. filename is used in diagnostics.
func Parse(filename string, src []byte) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, diags)
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, evalContext(), &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", filename, diags)
	}

	if cfg.Journal == "" {
		cfg.Journal = DefaultJournal
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	core, editor := c.TrustedModules()
	if core == editor {
		return fmt.Errorf("trusted core and editor modules must differ (both %q)", core)
	}
	return nil
}

// TrustedModules returns the configured trusted module names, falling back to
// the built-in ones.
func (c *Config) TrustedModules() (core, editor string) {
	core, editor = origin.CoreModule, origin.EditorModule
	if c.Trusted != nil {
		if c.Trusted.Core != "" {
			core = c.Trusted.Core
		}
		if c.Trusted.Editor != "" {
			editor = c.Trusted.Editor
		}
	}
	return core, editor
}

// ClassifierOptions returns the origin options for the configured modules.
func (c *Config) ClassifierOptions() []origin.Option {
	core, editor := c.TrustedModules()
	return []origin.Option{origin.WithTrustedModules(core, editor)}
}

// Generator returns a project generator using the configured template values.
func (c *Config) Generator(overwrite bool) *project.Generator {
	g := &project.Generator{Overwrite: overwrite}
	if c.Project != nil {
		g.SDKVersion = c.Project.SDKVersion
		g.TargetFramework = c.Project.TargetFramework
	}
	return g
}
