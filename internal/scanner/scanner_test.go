package scanner

import (
	"testing"

	"github.com/kytekode/basm/internal/testutil"
	"github.com/kytekode/basm/internal/types"
)

func symbolTexts(source string) []string {
	symbols, _ := Scan(source)
	texts := make([]string, len(symbols))
	for i, s := range symbols {
		texts[i] = s.Text
	}
	return texts
}

func symbolLines(source string) []int {
	symbols, _ := Scan(source)
	lines := make([]int, len(symbols))
	for i, s := range symbols {
		lines[i] = s.Line
	}
	return lines
}

func scanningTemplate(t *testing.T, inputs []string, expected [][]string) {
	t.Helper()
	for i, input := range inputs {
		got := symbolTexts(input)
		testutil.SliceEqual(t, expected[i], got, "symbols of %q", input)
	}
}

func TestScanBareWords(t *testing.T) {
	scanningTemplate(t,
		[]string{"a", "b cd", " e fg", "hij kl ", " mn op ", "qrs tuv", " w  x yz", "a b  c"},
		[][]string{
			{"a"},
			{"b", "cd"},
			{"e", "fg"},
			{"hij", "kl"},
			{"mn", "op"},
			{"qrs", "tuv"},
			{"w", "x", "yz"},
			{"a", "b", "c"},
		})
}

func TestScanStrings(t *testing.T) {
	scanningTemplate(t,
		[]string{`"a"`, `b "cd"`, ` "e fg"`, `"hij" "kl" `, ` "mn" o "p" `, ` "w  " x "y" z `},
		[][]string{
			{`"a"`},
			{"b", `"cd"`},
			{`"e fg"`},
			{`"hij"`, `"kl"`},
			{`"mn"`, "o", `"p"`},
			{`"w  "`, "x", `"y"`, "z"},
		})
}

func TestScanTargetHeaders(t *testing.T) {
	scanningTemplate(t,
		[]string{"[a]", "b [cd]", " [e fg]", "[hij] [kl] ", " [w  ] x [y] z "},
		[][]string{
			{"[a]"},
			{"b", "[cd]"},
			{"[e fg]"},
			{"[hij]", "[kl]"},
			{"[w  ]", "x", "[y]", "z"},
		})
}

func TestScanMonitorHeaders(t *testing.T) {
	scanningTemplate(t,
		[]string{"{a}", "b {cd}", " {e fg}", "{hij} {kl} ", " {w  } x {y} z "},
		[][]string{
			{"{a}"},
			{"b", "{cd}"},
			{"{e fg}"},
			{"{hij}", "{kl}"},
			{"{w  }", "x", "{y}", "z"},
		})
}

func TestScanEmptyAndBlank(t *testing.T) {
	for _, src := range []string{"", " ", "\n\n", " \t\r\n "} {
		symbols, diags := Scan(src)
		testutil.Len(t, symbols, 0, "symbols of %q", src)
		testutil.Len(t, diags, 0, "diagnostics of %q", src)
	}
}

func TestScanQuotedKeepsSpaces(t *testing.T) {
	symbols, diags := Scan(`"hello world"`)
	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Len(t, symbols, 1, "symbols")
	testutil.Equal(t, `"hello world"`, symbols[0].Text, "symbol text")
}

func TestScanEscapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"escaped quote", `"a\"b"`, `"a"b"`},
		{"escaped backslash", `"a\\b"`, `"a\b"`},
		{"escaped closing bracket", `[a\]b]`, `[a]b]`},
		{"escaped closing brace", `{a\}b}`, `{a}b}`},
		{"escaped plain char", `"\n"`, `"n"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := symbolTexts(tt.src)
			testutil.SliceEqual(t, []string{tt.want}, got, "symbols")
		})
	}
}

func TestScanBackslashOutsideLiteral(t *testing.T) {
	got := symbolTexts(`a\b c`)
	testutil.SliceEqual(t, []string{`a\b`, "c"}, got, "symbols")
}

func TestScanDelimiterOnlyAtSymbolStart(t *testing.T) {
	// The quote in a"b is an ordinary character, so whitespace still splits.
	got := symbolTexts(`a"b c"`)
	testutil.SliceEqual(t, []string{`a"b`, `c"`}, got, "symbols")
}

func TestScanTextAfterLiteralJoinsSymbol(t *testing.T) {
	got := symbolTexts(`"a"b c`)
	testutil.SliceEqual(t, []string{`"a"b`, "c"}, got, "symbols")
}

func TestScanOtherDelimitersInsideLiteral(t *testing.T) {
	got := symbolTexts(`"[x] {y}" [a "b"]`)
	testutil.SliceEqual(t, []string{`"[x] {y}"`, `[a "b"]`}, got, "symbols")
}

func TestScanLines(t *testing.T) {
	src := "sem_ver \"3.0.0\"\n\nvm\n  \"0.2.0\" agent\n"
	testutil.SliceEqual(t, []int{1, 1, 3, 4, 4}, symbolLines(src), "lines")
}

func TestScanCRLF(t *testing.T) {
	src := "a\r\nb\r\n\"c d\"\r\n"
	testutil.SliceEqual(t, []string{"a", "b", `"c d"`}, symbolTexts(src), "symbols")
	testutil.SliceEqual(t, []int{1, 2, 3}, symbolLines(src), "lines")
}

func TestScanUnterminatedString(t *testing.T) {
	symbols, diags := Scan("\"unterminated\nnext line")
	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, types.DiagUnclosedStringLiteral, diags[0].Code, "code")
	testutil.Equal(t, 1, diags[0].Line, "line")
	testutil.Equal(t, types.StageScan, diags[0].Stage, "stage")

	testutil.Len(t, symbols, 2, "symbols after recovery")
	testutil.Equal(t, "next", symbols[0].Text, "first recovered symbol")
	testutil.Equal(t, 2, symbols[0].Line, "recovered line")
}

func TestScanUnclosedHeaderKinds(t *testing.T) {
	tests := []struct {
		src  string
		code string
		line int
	}{
		{"[Stage\n", types.DiagUnclosedTargetHeader, 1},
		{"ok\n{my var\n", types.DiagUnclosedMonitorHeader, 2},
		{"a\nb\n\"x y\n", types.DiagUnclosedStringLiteral, 3},
	}
	for _, tt := range tests {
		_, diags := Scan(tt.src)
		testutil.Len(t, diags, 1, "diagnostics of %q", tt.src)
		testutil.Equal(t, tt.code, diags[0].Code, "code of %q", tt.src)
		testutil.Equal(t, tt.line, diags[0].Line, "line of %q", tt.src)
	}
}

func TestScanReportsEveryUnclosedLiteral(t *testing.T) {
	symbols, diags := Scan("\"a\n[b\n{c\nok")
	testutil.Len(t, diags, 3, "diagnostics")
	testutil.Equal(t, types.DiagUnclosedStringLiteral, diags[0].Code, "first")
	testutil.Equal(t, types.DiagUnclosedTargetHeader, diags[1].Code, "second")
	testutil.Equal(t, types.DiagUnclosedMonitorHeader, diags[2].Code, "third")
	testutil.SliceEqual(t, []int{1, 2, 3}, []int{diags[0].Line, diags[1].Line, diags[2].Line}, "lines")
	testutil.Len(t, symbols, 1, "symbols")
	testutil.Equal(t, 4, symbols[0].Line, "line of ok")
}

func TestScanUnclosedAtEndOfInput(t *testing.T) {
	_, diags := Scan("a \"never closed")
	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, types.DiagUnclosedStringLiteral, diags[0].Code, "code")
	testutil.SliceEqual(t, []string{"a"}, symbolTexts("a \"never closed"), "symbols")
}

func TestScanEscapedNewlineStaysInLiteral(t *testing.T) {
	symbols, diags := Scan("\"a\\\nb\" c")
	testutil.Len(t, diags, 0, "diagnostics")
	testutil.Len(t, symbols, 2, "symbols")
	testutil.Equal(t, "\"a\nb\"", symbols[0].Text, "literal text")
}

func TestScanIsDeterministic(t *testing.T) {
	src := "[Stage] is_stage true\n\"broken\nblock end !end"
	s := New(src, nil)
	sym1, diag1 := s.Scan()
	sym2, diag2 := s.Scan()
	testutil.SliceEqual(t, sym1, sym2, "symbols across runs")
	testutil.SliceEqual(t, diag1, diag2, "diagnostics across runs")

	sym3, diag3 := Scan(src)
	testutil.SliceEqual(t, sym1, sym3, "symbols across scanners")
	testutil.SliceEqual(t, diag1, diag3, "diagnostics across scanners")
}

func TestScanUnicode(t *testing.T) {
	got := symbolTexts(`"héllo wörld" [Spräte 1] ñ`)
	testutil.SliceEqual(t, []string{`"héllo wörld"`, `[Spräte 1]`, "ñ"}, got, "symbols")
}
