package config

import "dario.cat/mergo"

// mergeOverDefaults merges user into a copy of the built-in Defaults:
// non-zero numeric fields override via mergo (the same
// mergo.Merge(dst, src, mergo.WithOverride) shape used elsewhere in this
// codebase's config layer), and the two boolean flags are resolved by
// hand since mergo's empty-value rule can't distinguish "unset" from
// "explicitly false" on a bare bool.
func mergeOverDefaults(user *YAMLConfig) (*YAMLConfig, error) {
	merged := Defaults()
	if user == nil {
		return &merged, nil
	}

	if err := mergo.Merge(&merged, user, mergo.WithOverride); err != nil {
		return nil, err
	}

	if user.ParallelToolExecution != nil {
		merged.ParallelToolExecution = user.ParallelToolExecution
	}
	if user.IncludeHistoryInContext != nil {
		merged.IncludeHistoryInContext = user.IncludeHistoryInContext
	}

	return &merged, nil
}
