package observe

import (
	"regexp"
	"strings"
)

var unrecoverableSubstrings = []string{
	"invalid syntax", "parse error", "malformed", "corrupted", "incompatible",
}

var recoverableSubstrings = []string{
	"not found", "does not exist", "no such file", "permission denied",
	"timeout", "connection refused", "network error", "rate limit",
}

var errorCodePrefixPattern = regexp.MustCompile(`^Error\s+([A-Za-z0-9_\-]+):`)
var leadingTokenPattern = regexp.MustCompile(`^(\S{1,20}):`)

// classifyError inspects an error message and decides whether it's
// recoverable, and extracts a short code if one is present.
func classifyError(message string) (recoverable bool, code string) {
	lower := strings.ToLower(message)

	for _, s := range unrecoverableSubstrings {
		if strings.Contains(lower, s) {
			return false, extractErrorCode(message)
		}
	}
	for _, s := range recoverableSubstrings {
		if strings.Contains(lower, s) {
			return true, extractErrorCode(message)
		}
	}
	return false, extractErrorCode(message)
}

func extractErrorCode(message string) string {
	if m := errorCodePrefixPattern.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	if m := leadingTokenPattern.FindStringSubmatch(message); m != nil {
		if !strings.ContainsAny(m[1], " \t") {
			return m[1]
		}
	}
	return ""
}
