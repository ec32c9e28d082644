package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeOverDefaultsNilUserReturnsDefaults(t *testing.T) {
	merged, err := mergeOverDefaults(nil)
	require.NoError(t, err)
	defaults := Defaults()
	require.Equal(t, defaults.MaxIterations, merged.MaxIterations)
	require.Equal(t, *defaults.ParallelToolExecution, *merged.ParallelToolExecution)
}

func TestMergeOverDefaultsOverridesOnlySetFields(t *testing.T) {
	user := &YAMLConfig{MaxIterations: 5}
	merged, err := mergeOverDefaults(user)
	require.NoError(t, err)

	require.Equal(t, 5, merged.MaxIterations)
	require.Equal(t, Defaults().ContextWindowTokens, merged.ContextWindowTokens)
	require.True(t, *merged.ParallelToolExecution)
}

func TestMergeOverDefaultsCanDisableBooleanDefault(t *testing.T) {
	user := &YAMLConfig{ParallelToolExecution: boolPtr(false)}
	merged, err := mergeOverDefaults(user)
	require.NoError(t, err)
	require.False(t, *merged.ParallelToolExecution)
}
