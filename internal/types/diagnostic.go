package types

import (
	"fmt"
	"slices"
	"strings"
)

// Diagnostic represents an issue found while scanning, classifying or parsing.
type Diagnostic struct {
	Stage   Stage
	Code    string // e.g., "unknown-symbol", "unclosed-string-literal"
	Line    int    // 1-based line number, 0 if not applicable
	Message string
}

// String returns a human-readable representation of the diagnostic.
// Format: "(line N): message", with the location omitted when Line is zero.
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Line > 0 {
		fmt.Fprintf(&b, "(line %d)", d.Line)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// Newf builds a diagnostic with a formatted message.
func Newf(stage Stage, code string, line int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Stage:   stage,
		Code:    code,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// CountCodes returns how many diagnostics carry each code.
func CountCodes(diags []Diagnostic) map[string]int {
	counts := make(map[string]int, len(diags))
	for _, d := range diags {
		counts[d.Code]++
	}
	return counts
}

// MatchGlob performs simple glob matching with * wildcard.
func MatchGlob(pattern, s string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(s, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(s, suffix)
	}
	return pattern == s
}

// KnownCode reports whether pattern matches at least one diagnostic code.
func KnownCode(pattern string) bool {
	return slices.ContainsFunc(AllDiagnosticCodes(), func(info DiagCodeInfo) bool {
		return MatchGlob(pattern, info.Code)
	})
}

// FilterCodes returns the diagnostics whose code matches any of the
// given glob patterns (e.g., "unclosed-*").
func FilterCodes(diags []Diagnostic, patterns ...string) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if slices.ContainsFunc(patterns, func(p string) bool {
			return MatchGlob(p, d.Code)
		}) {
			out = append(out, d)
		}
	}
	return out
}
