package config

import "fmt"

// Validate checks a fully-merged YAMLConfig against the bounds spec.md
// §3/§4.1/§4.6 place on it, before it's converted to an engine.Config.
func Validate(cfg *YAMLConfig) error {
	if cfg.MaxIterations < 1 {
		return newValidationError("max_iterations", fmt.Errorf("must be at least 1, got %d", cfg.MaxIterations))
	}
	if cfg.MaxIterations > HardMaxIterationsCeiling {
		return newValidationError("max_iterations", fmt.Errorf("exceeds hard ceiling %d, got %d", HardMaxIterationsCeiling, cfg.MaxIterations))
	}
	if cfg.SessionTimeoutSecs < 1 {
		return newValidationError("session_timeout_secs", fmt.Errorf("must be positive, got %d", cfg.SessionTimeoutSecs))
	}
	if cfg.IterationTimeoutSecs < 1 {
		return newValidationError("iteration_timeout_secs", fmt.Errorf("must be positive, got %d", cfg.IterationTimeoutSecs))
	}
	if cfg.ToolTimeoutSecs < 1 {
		return newValidationError("tool_timeout_secs", fmt.Errorf("must be positive, got %d", cfg.ToolTimeoutSecs))
	}
	if cfg.ContextWindowTokens < 1 {
		return newValidationError("context_window_tokens", fmt.Errorf("must be positive, got %d", cfg.ContextWindowTokens))
	}
	if cfg.MaxObservationTokens < 1 {
		return newValidationError("max_observation_tokens", fmt.Errorf("must be positive, got %d", cfg.MaxObservationTokens))
	}
	return nil
}
