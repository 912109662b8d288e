package lexer

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/kytekode/basm/internal/scanner"
	"github.com/kytekode/basm/internal/types"
)

// Lexer classifies a symbol sequence into tokens.
type Lexer struct {
	symbols     []scanner.Symbol
	diagnostics []types.Diagnostic
	types.Logger
}

// New returns a Lexer over the given symbols.
// Pass nil for logger to disable logging.
func New(symbols []scanner.Symbol, logger *slog.Logger) *Lexer {
	l := &Lexer{
		symbols: symbols,
		Logger:  types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("symbols", len(symbols)))
	return l
}

// Lex classifies symbols with a fresh Lexer.
func Lex(symbols []scanner.Symbol) ([]Token, []types.Diagnostic) {
	return New(symbols, nil).Tokenize()
}

// Diagnostics returns a copy of the diagnostics from the last Tokenize.
func (l *Lexer) Diagnostics() []types.Diagnostic {
	return slices.Clone(l.diagnostics)
}

// Tokenize classifies every symbol in order. Each symbol yields either a
// token or a diagnostic; classification continues past unknown symbols.
func (l *Lexer) Tokenize() ([]Token, []types.Diagnostic) {
	tokens := make([]Token, 0, len(l.symbols))
	l.diagnostics = l.diagnostics[:0]
	for _, sym := range l.symbols {
		tok, diag := Classify(sym)
		if diag != nil {
			l.diagnostics = append(l.diagnostics, *diag)
			continue
		}
		tokens = append(tokens, tok)
		l.traceToken(tok)
	}
	l.Log(slog.LevelDebug, "classification complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(l.diagnostics)))
	return tokens, slices.Clone(l.diagnostics)
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.String("text", tok.Text),
			slog.Int("line", tok.Line))
	}
}

// Classify converts one symbol into a token. The first matching rule wins:
// keyword, delimited literal, boolean, null, number, punctuator. A symbol
// matching none of them yields an unknown-symbol diagnostic instead.
func Classify(sym scanner.Symbol) (Token, *types.Diagnostic) {
	tok := Token{Text: sym.Text, Line: sym.Line}

	if _, ok := LookupKeyword(sym.Text); ok {
		tok.Kind = TokKeyword
		return tok, nil
	}

	if literalShape(sym.Text) != LitNone {
		tok.Kind = TokLiteral
		return tok, nil
	}

	if isPunctuator(sym.Text) {
		tok.Kind = TokPunctuator
		return tok, nil
	}

	return Token{}, &types.Diagnostic{
		Stage:   types.StageClassify,
		Code:    types.DiagUnknownSymbol,
		Line:    sym.Line,
		Message: fmt.Sprintf("Could not parse unknown symbol `%s`", sym.Text),
	}
}
