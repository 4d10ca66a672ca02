package commands

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/ardanlabs/bindgen/binding"
	"github.com/ardanlabs/bindgen/config"
	"github.com/ardanlabs/bindgen/templates"
)

// buildTarget assembles the classes generated for t: the built-in classes
// of its binding minus the excluded ones, plus the YAML templates it names.
func buildTarget(cfg *config.Config, t *config.Target) (*templates.Target, error) {
	b, err := binding.Lookup(t.Binding)
	if err != nil {
		return nil, err
	}

	target, ok := templates.Builtin()[b.Name()]
	if !ok {
		target = &templates.Target{Binding: b}
	}

	for _, name := range t.Exclude {
		if target.Class(name) == nil {
			slog.Warn("excluded template not found", "binding", b.Name(), "template", name)
		}
	}
	target.Exclude(t.Exclude...)

	for _, name := range t.Templates {
		c, err := templates.LoadFile(cfg.TemplatePath(name), target.Types)
		if err != nil {
			return nil, fmt.Errorf("loading template: %w", err)
		}
		if err := target.Add(c); err != nil {
			return nil, err
		}
		slog.Debug("template loaded", "binding", b.Name(), "template", c.TemplateName, "file", name)
	}

	return target, nil
}

// selectTargets returns the configured targets, restricted to names when
// any are given.
func selectTargets(cfg *config.Config, names []string) ([]*config.Target, error) {
	if len(names) == 0 {
		return cfg.Targets, nil
	}

	var out []*config.Target
	for _, name := range names {
		i := slices.IndexFunc(cfg.Targets, func(t *config.Target) bool { return t.Binding == name })
		if i < 0 {
			return nil, fmt.Errorf("binding %s is not configured", name)
		}
		out = append(out, cfg.Targets[i])
	}
	return out, nil
}
