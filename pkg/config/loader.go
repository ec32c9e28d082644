package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/loopworks/reactor/pkg/engine"
)

// Load reads a YAML file at path, expands environment variables,
// merges it over the built-in Defaults, validates the result, and
// returns a ready-to-use engine.Config.
//
// A missing file is not an error — it is treated as an empty user
// override, so callers get the built-in defaults back.
func Load(path string) (engine.Config, error) {
	log := slog.With("config_path", path)

	user, err := loadYAMLFile(path)
	if err != nil {
		return engine.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	merged, err := mergeOverDefaults(user)
	if err != nil {
		return engine.Config{}, fmt.Errorf("failed to merge configuration: %w", err)
	}

	if err := Validate(merged); err != nil {
		return engine.Config{}, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	log.Info("configuration loaded",
		"max_iterations", merged.MaxIterations,
		"context_window_tokens", merged.ContextWindowTokens)

	return toEngineConfig(merged), nil
}

// Default returns the built-in ReActConfig with no YAML override — used
// by callers that don't need a config file at all.
func Default() engine.Config {
	defaults := Defaults()
	return toEngineConfig(&defaults)
}

func loadYAMLFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, NewLoadError(path, err)
	}

	data = ExpandEnv(data)

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, NewLoadError(path, fmt.Errorf("%w: %v", ErrInvalidYAML, err))
	}
	return &cfg, nil
}

func toEngineConfig(cfg *YAMLConfig) engine.Config {
	return engine.Config{
		MaxIterations:           cfg.MaxIterations,
		SessionTimeout:          time.Duration(cfg.SessionTimeoutSecs) * time.Second,
		IterationTimeout:        time.Duration(cfg.IterationTimeoutSecs) * time.Second,
		ToolTimeout:             time.Duration(cfg.ToolTimeoutSecs) * time.Second,
		ContextWindowTokens:     cfg.ContextWindowTokens,
		ParallelToolExecution:   *cfg.ParallelToolExecution,
		IncludeHistoryInContext: *cfg.IncludeHistoryInContext,
		MaxObservationTokens:    cfg.MaxObservationTokens,
	}
}
