package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Konsultn-Engineering/enquery/builder"
	"github.com/Konsultn-Engineering/enquery/classifier"
	"github.com/Konsultn-Engineering/enquery/connector"
	"github.com/Konsultn-Engineering/enquery/custom"
	"github.com/Konsultn-Engineering/enquery/engine"
	"gopkg.in/yaml.v3"
)

// AppConfig is the enquery configuration file.
type AppConfig struct {
	Database     connector.Config `yaml:"database"`
	Classifier   string           `yaml:"classifier"`
	PrefixFilter int              `yaml:"prefix_filter"`
	Templates    []TemplateConfig `yaml:"templates"`
}

// TemplateConfig binds a custom query pattern to SQL. Wildcards are bound to
// :arg1, :arg2, ... in the order they appear in the pattern.
type TemplateConfig struct {
	Pattern string `yaml:"pattern"`
	SQL     string `yaml:"sql"`
}

func loadAppConfig(path string) (*AppConfig, error) {
	cfg := &AppConfig{Database: connector.DefaultConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	for i, t := range cfg.Templates {
		if t.Pattern == "" || t.SQL == "" {
			return nil, fmt.Errorf("template %d: pattern and sql are required", i)
		}
	}
	return cfg, nil
}

// newEngine connects using cfg and registers its templates.
func newEngine(ctx context.Context, cfg *AppConfig) (*engine.Engine, error) {
	cl, err := classifier.New(cfg.Classifier)
	if err != nil {
		return nil, err
	}

	registry := custom.NewRegistry(
		custom.WithPrefixFilter(cfg.PrefixFilter),
		custom.WithLogger(logger),
	)
	e := engine.New(
		engine.WithLogger(logger),
		engine.WithClassifier(cl),
		engine.WithRegistry(registry),
	)
	if err := e.Setup(ctx, cfg.Database); err != nil {
		return nil, err
	}

	for _, t := range cfg.Templates {
		if _, err := e.Build(t.Pattern, sqlHandler(e, t.SQL)); err != nil {
			_ = e.Close()
			return nil, fmt.Errorf("template %q: %w", t.Pattern, err)
		}
	}
	return e, nil
}

// sqlHandler runs query with the wildcard arguments bound as :argN.
func sqlHandler(e *engine.Engine, query string) custom.Handler {
	return custom.HandlerFunc(func(ctx context.Context, args []string) (any, error) {
		named := make(map[string]any, len(args))
		for i, a := range args {
			named["arg"+strconv.Itoa(i+1)] = a
		}
		return e.Query(ctx, builder.Options{
			Action:       builder.ActionCustom,
			Custom:       query,
			Placeholders: named,
		})
	})
}
