// Package scanner splits Block-ASM source text into symbols.
//
// A symbol is a whitespace-delimited run of characters, except that a symbol
// starting with '"', '[' or '{' is a literal that extends to its matching
// closing delimiter and keeps any whitespace it contains. Inside a literal a
// backslash escapes the next character. A literal that reaches a newline
// before its closing delimiter is reported and dropped, and scanning resumes
// on the next character.
package scanner

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/kytekode/basm/internal/types"
)

// Symbol is a raw text fragment with the line it starts on.
type Symbol struct {
	Text string
	Line int
}

type scanState int

const (
	stateNormal scanState = iota
	stateInLiteral
)

// Scanner turns source text into symbols.
type Scanner struct {
	source string

	state    scanState
	closing  rune // closing delimiter while in stateInLiteral
	openLine int  // line the current literal was opened on
	escaped  bool
	line     int
	symLine  int // line of the first buffered character
	buf      strings.Builder

	symbols     []Symbol
	diagnostics []types.Diagnostic
	types.Logger
}

// New returns a Scanner over the given source text.
// Pass nil for logger to disable logging.
func New(source string, logger *slog.Logger) *Scanner {
	s := &Scanner{
		source: source,
		Logger: types.Logger{L: logger},
	}
	s.Log(slog.LevelDebug, "scanner initialized", slog.Int("bytes", len(source)))
	return s
}

// Scan splits a whole source text into symbols with a fresh Scanner.
func Scan(source string) ([]Symbol, []types.Diagnostic) {
	return New(source, nil).Scan()
}

// Diagnostics returns a copy of the diagnostics from the last Scan.
func (s *Scanner) Diagnostics() []types.Diagnostic {
	return slices.Clone(s.diagnostics)
}

// Scan consumes the whole source and returns its symbols in source order
// along with every diagnostic found. Calling Scan again rescans from the
// start and yields identical results.
func (s *Scanner) Scan() ([]Symbol, []types.Diagnostic) {
	s.reset()
	for _, c := range s.source {
		s.step(c)
	}
	s.finish()

	s.Log(slog.LevelDebug, "scan complete",
		slog.Int("symbols", len(s.symbols)),
		slog.Int("diagnostics", len(s.diagnostics)))
	return slices.Clone(s.symbols), slices.Clone(s.diagnostics)
}

func (s *Scanner) reset() {
	s.state = stateNormal
	s.closing = 0
	s.openLine = 0
	s.escaped = false
	s.line = 1
	s.symLine = 1
	s.buf.Reset()
	s.symbols = s.symbols[:0]
	s.diagnostics = s.diagnostics[:0]
}

func (s *Scanner) step(c rune) {
	switch s.state {
	case stateNormal:
		if isSpace(c) {
			s.flush()
			if c == '\n' {
				s.line++
			}
			return
		}

		// Only the first character of a symbol can open a literal.
		if s.buf.Len() == 0 {
			s.symLine = s.line
			if closing, ok := closingDelimiter(c); ok {
				s.state = stateInLiteral
				s.closing = closing
				s.openLine = s.line
				s.escaped = false
			}
		}
		s.buf.WriteRune(c)

	case stateInLiteral:
		if s.escaped {
			s.buf.WriteRune(c)
			s.escaped = false
			return
		}

		switch c {
		case '\\':
			s.escaped = true
		case s.closing:
			s.buf.WriteRune(c)
			s.state = stateNormal
		case '\n':
			s.unclosed(s.line)
			s.discard()
			s.line++
		default:
			s.buf.WriteRune(c)
		}
	}
}

// finish flushes the final symbol as if one trailing whitespace followed the
// source. A literal still open at end of input cannot be flushed and is
// reported like one broken by a newline.
func (s *Scanner) finish() {
	if s.state == stateInLiteral {
		s.unclosed(s.line)
		s.discard()
		return
	}
	s.flush()
}

func (s *Scanner) flush() {
	text := s.buf.String()
	s.buf.Reset()
	if strings.TrimSpace(text) == "" {
		return
	}
	sym := Symbol{Text: text, Line: s.symLine}
	s.symbols = append(s.symbols, sym)
	if s.TraceEnabled() {
		s.Trace("symbol", slog.String("text", sym.Text), slog.Int("line", sym.Line))
	}
}

func (s *Scanner) discard() {
	s.Log(slog.LevelDebug, "discarding unclosed literal",
		slog.Int("opened", s.openLine),
		slog.Int("line", s.line))
	s.buf.Reset()
	s.state = stateNormal
	s.escaped = false
}

func (s *Scanner) unclosed(line int) {
	var code, msg string
	switch s.closing {
	case ']':
		code, msg = types.DiagUnclosedTargetHeader, "Found unclosed target header"
	case '}':
		code, msg = types.DiagUnclosedMonitorHeader, "Found unclosed monitor header"
	default:
		code, msg = types.DiagUnclosedStringLiteral, "Found unclosed string literal"
	}
	s.diagnostics = append(s.diagnostics, types.Diagnostic{
		Stage:   types.StageScan,
		Code:    code,
		Line:    line,
		Message: msg,
	})
}

// closingDelimiter reports whether c opens a literal and which rune closes it.
func closingDelimiter(c rune) (rune, bool) {
	switch c {
	case '"':
		return '"', true
	case '[':
		return ']', true
	case '{':
		return '}', true
	}
	return 0, false
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
