// Package config reads and writes the bindgen.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardanlabs/bindgen/binding"
	"github.com/ardanlabs/bindgen/binding/alc"
	"github.com/ardanlabs/bindgen/binding/cl"
	"github.com/ardanlabs/bindgen/generator"
)

const (
	// DefaultFile is the project file looked up in the working directory.
	DefaultFile = "bindgen.yaml"

	// DefaultOutput is the directory generated packages are written under.
	DefaultOutput = "gen"
)

// Config is the project configuration.
type Config struct {
	// Output is the directory every target is generated under.
	Output string `yaml:"output"`

	// Runtime is the import path of the runtime support package used by
	// generated code.
	Runtime string `yaml:"runtime,omitempty"`

	Targets []*Target `yaml:"targets"`

	path string
}

// Target selects a binding and adjusts the classes generated for it.
type Target struct {
	// Binding is the registered binding name, ALC or CL.
	Binding string `yaml:"binding"`

	// Output is the subdirectory of Config.Output. It defaults to the
	// binding's package name.
	Output string `yaml:"output,omitempty"`

	// Templates lists YAML template files added to the built-in classes.
	// Relative paths are resolved against the config file.
	Templates []string `yaml:"templates,omitempty"`

	// Exclude lists built-in template names that are not generated.
	Exclude []string `yaml:"exclude,omitempty"`
}

// Default returns a configuration generating both built-in bindings.
func Default() *Config {
	return &Config{
		Output:  DefaultOutput,
		Runtime: generator.DefaultRuntime,
		Targets: []*Target{
			{Binding: alc.Binding.Name()},
			{Binding: cl.Binding.Name()},
		},
	}
}

// Load reads the configuration stored at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.path = path

	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Runtime == "" {
		cfg.Runtime = generator.DefaultRuntime
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	c.path = path

	return nil
}

// Path returns the file the configuration was loaded from, or "" for a
// default configuration.
func (c *Config) Path() string {
	return c.path
}

// Validate reports every problem found in the configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.Output == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if len(c.Targets) == 0 {
		errs = append(errs, errors.New("no targets"))
	}

	dirs := make(map[string]string)
	for i, t := range c.Targets {
		if t == nil {
			errs = append(errs, fmt.Errorf("target %d: empty", i))
			continue
		}
		b, err := binding.Lookup(t.Binding)
		if err != nil {
			errs = append(errs, fmt.Errorf("target %d: %w", i, err))
			continue
		}
		dir := c.Dir(t, b)
		if prev, dup := dirs[dir]; dup {
			errs = append(errs, fmt.Errorf("target %d: %s and %s both write to %s", i, prev, t.Binding, dir))
		}
		dirs[dir] = t.Binding
		for _, tmpl := range t.Templates {
			if !strings.HasSuffix(tmpl, ".yaml") && !strings.HasSuffix(tmpl, ".yml") {
				errs = append(errs, fmt.Errorf("target %d: template %s is not a YAML file", i, tmpl))
			}
		}
	}

	return errors.Join(errs...)
}

// Dir returns the directory target t of binding b is generated into.
func (c *Config) Dir(t *Target, b binding.Binding) string {
	sub := t.Output
	if sub == "" {
		sub = b.Package()
	}
	return filepath.Join(c.Output, sub)
}

// TemplatePath resolves a template file named by a target.
func (c *Config) TemplatePath(name string) string {
	if filepath.IsAbs(name) || c.path == "" {
		return name
	}
	return filepath.Join(filepath.Dir(c.path), name)
}
