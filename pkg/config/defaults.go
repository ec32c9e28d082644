package config

// HardMaxIterationsCeiling mirrors session.HardMaxIterationsCeiling — kept
// as a local constant so this package doesn't have to import pkg/session
// just for one number, and so validation can reject an over-ceiling YAML
// value before it ever reaches the session.
const HardMaxIterationsCeiling = 20

// Defaults returns the built-in ReActConfig defaults (spec.md §4.6),
// expressed the same shape a user YAML file would be.
func Defaults() YAMLConfig {
	return YAMLConfig{
		MaxIterations:           10,
		SessionTimeoutSecs:      300,
		IterationTimeoutSecs:    60,
		ToolTimeoutSecs:         30,
		ContextWindowTokens:     4096,
		ParallelToolExecution:   boolPtr(true),
		IncludeHistoryInContext: boolPtr(true),
		MaxObservationTokens:    500,
	}
}

func boolPtr(v bool) *bool { return &v }
