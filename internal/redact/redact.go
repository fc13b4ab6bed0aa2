// Package redact masks credentials before they reach a log line.
package redact

import "strings"

// sensitiveKeywords identify keys whose values must not be logged verbatim.
var sensitiveKeywords = []string{
	"password", "secret", "key", "token", "auth", "credential", "private",
}

// IsSensitive reports whether key names a credential.
func IsSensitive(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(lowerKey, keyword) {
			return true
		}
	}
	return false
}

// Value returns value unchanged unless key is sensitive, in which case only
// the first and last two characters survive.
func Value(key, value string) string {
	if !IsSensitive(key) {
		return value
	}
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "[REDACTED]"
	}
	return value[:2] + strings.Repeat("*", len(value)-4) + value[len(value)-2:]
}

// Args redacts the values of a slog style key/value list in place and
// returns it.
func Args(args ...any) []any {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		if s, ok := args[i+1].(string); ok {
			args[i+1] = Value(key, s)
		}
	}
	return args
}
