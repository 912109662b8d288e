package parser

import (
	"strconv"

	"github.com/kytekode/basm/internal/ast"
	"github.com/kytekode/basm/internal/lexer"
)

// valueRule decides which literal tokens a value position accepts and which
// leaf they become.
type valueRule struct {
	want string // description used in invalid-value diagnostics
	leaf func(tok lexer.Token) (ast.Kind, string, bool)
}

func stringRule(kind ast.Kind, want string, nullable bool) *valueRule {
	return &valueRule{
		want: want,
		leaf: func(tok lexer.Token) (ast.Kind, string, bool) {
			switch tok.Literal() {
			case lexer.LitString:
				return kind, tok.Inner(), true
			case lexer.LitNull:
				if nullable {
					return ast.KindNullData, "", true
				}
			}
			return 0, "", false
		},
	}
}

func numberRule(kind ast.Kind, want string, check func(string) bool) *valueRule {
	return &valueRule{
		want: want,
		leaf: func(tok lexer.Token) (ast.Kind, string, bool) {
			if tok.Literal() != lexer.LitNumber {
				return 0, "", false
			}
			if check != nil && !check(tok.Text) {
				return 0, "", false
			}
			return kind, tok.Text, true
		},
	}
}

var (
	ruleString    = stringRule(ast.KindStringData, "a string", false)
	ruleOptString = stringRule(ast.KindStringData, "a string or null", true)
	ruleBlockPtr  = stringRule(ast.KindBlockPtrData, "a block id or null", true)

	ruleDouble    = numberRule(ast.KindDoubleData, "a number", nil)
	rulePosDouble = numberRule(ast.KindPosDoubleData, "a non-negative number", isNonNegative)
	rulePosInt    = numberRule(ast.KindPosIntData, "a non-negative integer", isNonNegativeInt)
	ruleInt       = numberRule(ast.KindIntData, "an integer", isInt)
	ruleAngle     = numberRule(ast.KindAngleData, "an angle", nil)

	ruleBool = &valueRule{
		want: "true or false",
		leaf: func(tok lexer.Token) (ast.Kind, string, bool) {
			if tok.Literal() == lexer.LitBool {
				return ast.KindStringData, tok.Text, true
			}
			return 0, "", false
		},
	}

	ruleColor = &valueRule{
		want: "a #rrggbb color",
		leaf: func(tok lexer.Token) (ast.Kind, string, bool) {
			if tok.Literal() == lexer.LitString && isHexColor(tok.Inner()) {
				return ast.KindColorData, tok.Inner(), true
			}
			return 0, "", false
		},
	}

	// ruleAny accepts the plain values a variable or list item can hold.
	ruleAny = &valueRule{
		want: "a string, number or boolean",
		leaf: func(tok lexer.Token) (ast.Kind, string, bool) {
			switch tok.Literal() {
			case lexer.LitString:
				return ast.KindStringData, tok.Inner(), true
			case lexer.LitNumber:
				return ast.KindDoubleData, tok.Text, true
			case lexer.LitBool:
				return ast.KindStringData, tok.Text, true
			}
			return 0, "", false
		},
	}

	// ruleInferred types a bare literal in a typed value position.
	ruleInferred = &valueRule{
		want: "a type annotation or value",
		leaf: func(tok lexer.Token) (ast.Kind, string, bool) {
			if tok.Literal() == lexer.LitNull {
				return ast.KindNullData, "", true
			}
			return ruleAny.leaf(tok)
		},
	}
)

// annotations maps type annotation keywords to the rule for the literal that
// follows them.
var annotations = map[lexer.Keyword]*valueRule{
	lexer.KwPrototype: stringRule(ast.KindPrototypeData, "a prototype string", false),
	lexer.KwBlockPtr:  ruleBlockPtr,
	lexer.KwSubstack:  stringRule(ast.KindSubstackData, "a block id or null", true),
	lexer.KwDouble:    ruleDouble,
	lexer.KwPosDouble: rulePosDouble,
	lexer.KwPosInt:    rulePosInt,
	lexer.KwInt:       ruleInt,
	lexer.KwAngle:     ruleAngle,
	lexer.KwColor:     ruleColor,
	lexer.KwString:    ruleString,
	lexer.KwBroadcast: stringRule(ast.KindBroadcastData, "a broadcast id", false),
	lexer.KwVariable:  stringRule(ast.KindVariableData, "a variable id", false),
	lexer.KwList:      stringRule(ast.KindListData, "a list id", false),
}

func isNonNegative(text string) bool {
	f, err := strconv.ParseFloat(text, 64)
	return err == nil && f >= 0
}

func isNonNegativeInt(text string) bool {
	_, err := strconv.ParseUint(text, 10, 64)
	return err == nil
}

func isInt(text string) bool {
	_, err := strconv.ParseInt(text, 10, 64)
	return err == nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'f') && !(c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
