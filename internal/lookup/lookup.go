// Package lookup holds small record and categorical helpers used by the
// services: field presence, membership and role names.
package lookup

import "strings"

// ExpectKeys returns a copy of record in which every comma-separated name in
// fields is present. Names are trimmed; missing ones are set to nil and
// existing values are left alone. Empty names are skipped.
func ExpectKeys(fields string, record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}

	for _, key := range strings.Split(fields, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := out[key]; !ok {
			out[key] = nil
		}
	}
	return out
}

// MatchesAny reports whether value equals any of candidates.
func MatchesAny[T comparable](value T, candidates []T) bool {
	for _, c := range candidates {
		if c == value {
			return true
		}
	}
	return false
}
