// Package config loads the ReAct engine's configuration from a YAML file,
// applying defaults and environment-variable expansion the way the rest
// of this codebase's configuration layer does.
package config

// YAMLConfig mirrors engine.Config field-for-field. Numeric fields use
// their zero value to mean "not set by the user" (valid values are
// always positive, so mergo's WithOverride zero-value skip is exactly
// the semantics wanted). The two booleans use pointers and are resolved
// by hand after the mergo pass — mergo's "empty value" rule treats a
// literal `false` the same as "unset", which would make it impossible
// for a user file to ever turn `parallel_tool_execution` off.
type YAMLConfig struct {
	MaxIterations int `yaml:"max_iterations,omitempty"`

	SessionTimeoutSecs   int `yaml:"session_timeout_secs,omitempty"`
	IterationTimeoutSecs int `yaml:"iteration_timeout_secs,omitempty"`
	ToolTimeoutSecs      int `yaml:"tool_timeout_secs,omitempty"`

	ContextWindowTokens int `yaml:"context_window_tokens,omitempty"`

	ParallelToolExecution   *bool `yaml:"parallel_tool_execution,omitempty"`
	IncludeHistoryInContext *bool `yaml:"include_history_in_context,omitempty"`

	MaxObservationTokens int `yaml:"max_observation_tokens,omitempty"`
}
