package observe

import "encoding/json"

// extractContent renders a successful tool result's Output as text,
// following the same precedence a human reading the result would expect:
// strings pass through verbatim, nil becomes an explicit placeholder, and
// anything else is pretty-printed as JSON.
func extractContent(output any) string {
	switch v := output.(type) {
	case nil:
		return "No output"
	case string:
		return v
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "[JSON serialization failed: " + err.Error() + "]"
		}
		return string(b)
	}
}
