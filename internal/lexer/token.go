// Package lexer classifies scanned Block-ASM symbols into tokens.
package lexer

import (
	"math"
	"strconv"
)

// Token is a classified symbol.
type Token struct {
	Kind TokenKind
	Text string
	Line int
}

// TokenKind identifies a token category. The set is closed: every symbol
// becomes exactly one of these or an unknown-symbol diagnostic.
type TokenKind int

const (
	// TokKeyword is a member of the fixed keyword vocabulary.
	TokKeyword TokenKind = iota
	// TokLiteral is a delimited, boolean, null or numeric literal.
	TokLiteral
	// TokPunctuator is ';', 'end' or '!end'.
	TokPunctuator
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokKeyword:
		return "Keyword"
	case TokLiteral:
		return "Literal"
	case TokPunctuator:
		return "Punctuator"
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// LiteralKind is the shape of a literal token.
type LiteralKind int

const (
	LitNone LiteralKind = iota
	LitString
	LitTarget
	LitMonitor
	LitBool
	LitNull
	LitNumber
)

// String returns the literal shape name.
func (k LiteralKind) String() string {
	switch k {
	case LitNone:
		return "none"
	case LitString:
		return "string"
	case LitTarget:
		return "target"
	case LitMonitor:
		return "monitor"
	case LitBool:
		return "bool"
	case LitNull:
		return "null"
	case LitNumber:
		return "number"
	}
	return "LiteralKind(" + strconv.Itoa(int(k)) + ")"
}

// Punctuator texts.
const (
	PunctSemicolon  = ";"
	PunctEnd        = "end"
	PunctSectionEnd = "!end"
)

// Keyword returns the keyword identity of a keyword token, or KwNone.
func (t Token) Keyword() Keyword {
	if t.Kind != TokKeyword {
		return KwNone
	}
	kw, _ := LookupKeyword(t.Text)
	return kw
}

// Literal returns the shape of a literal token, or LitNone.
func (t Token) Literal() LiteralKind {
	if t.Kind != TokLiteral {
		return LitNone
	}
	return literalShape(t.Text)
}

// Inner returns the text between the delimiters of a string, target or
// monitor literal. Other tokens are returned unchanged.
func (t Token) Inner() string {
	switch t.Literal() {
	case LitString, LitTarget, LitMonitor:
		return t.Text[1 : len(t.Text)-1]
	}
	return t.Text
}

// literalShape applies the literal rules in classification order: delimited
// forms first, then booleans, null and numbers.
func literalShape(text string) LiteralKind {
	if n := len(text); n >= 2 {
		first, last := text[0], text[n-1]
		switch {
		case first == '"' && last == '"':
			return LitString
		case first == '[' && last == ']':
			return LitTarget
		case first == '{' && last == '}':
			return LitMonitor
		}
	}
	switch text {
	case "true", "false":
		return LitBool
	case "null":
		return LitNull
	}
	if IsNumber(text) {
		return LitNumber
	}
	return LitNone
}

// IsNumber reports whether text is a finite decimal float64 such as
// "12", "-0.5" or "1.5e3". Hex forms, digit separators and the
// inf/nan spellings accepted by strconv are rejected.
func IsNumber(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c >= '0' && c <= '9':
		case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func isPunctuator(text string) bool {
	switch text {
	case PunctSemicolon, PunctEnd, PunctSectionEnd:
		return true
	}
	return false
}
