package pipeline

import "strings"

// normalizeOutput trims leading/trailing whitespace and folds CRLF and
// lone CR into LF, per the contracted comparison rule. It is reflexive,
// symmetric, and invariant under trailing/leading whitespace and
// CRLF<->LF substitution by construction.
func normalizeOutput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// compareOutputs reports whether actual matches expected after
// normalization. No token-level comparison, no numeric tolerance.
func compareOutputs(actual, expected string) bool {
	return normalizeOutput(actual) == normalizeOutput(expected)
}
