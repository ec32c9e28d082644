package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *YAMLConfig {
	cfg := Defaults()
	return &cfg
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, Validate(validConfig()))
}

func TestValidateRejectsZeroMaxIterations(t *testing.T) {
	cfg := validConfig()
	cfg.MaxIterations = 0
	err := Validate(cfg)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "max_iterations", ve.Field)
}

func TestValidateRejectsMaxIterationsAboveHardCeiling(t *testing.T) {
	cfg := validConfig()
	cfg.MaxIterations = HardMaxIterationsCeiling + 1
	require.Error(t, Validate(cfg))
}

func TestValidateAcceptsMaxIterationsAtHardCeiling(t *testing.T) {
	cfg := validConfig()
	cfg.MaxIterations = HardMaxIterationsCeiling
	require.NoError(t, Validate(cfg))
}

func TestValidateRejectsNonPositiveTimeouts(t *testing.T) {
	for _, mutate := range []func(*YAMLConfig){
		func(c *YAMLConfig) { c.SessionTimeoutSecs = 0 },
		func(c *YAMLConfig) { c.IterationTimeoutSecs = -1 },
		func(c *YAMLConfig) { c.ToolTimeoutSecs = 0 },
	} {
		cfg := validConfig()
		mutate(cfg)
		require.Error(t, Validate(cfg))
	}
}

func TestValidateRejectsNonPositiveTokenBudgets(t *testing.T) {
	cfg := validConfig()
	cfg.ContextWindowTokens = 0
	require.Error(t, Validate(cfg))

	cfg = validConfig()
	cfg.MaxObservationTokens = 0
	require.Error(t, Validate(cfg))
}
