// Package render writes token sequences, syntax trees and diagnostics for
// the basm command.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kytekode/basm/internal/ast"
	"github.com/kytekode/basm/internal/lexer"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// TokenJSON holds the serializable form of a token.
type TokenJSON struct {
	Kind string `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
	Line int    `json:"line" yaml:"line"`
}

// NodeJSON holds the serializable form of a tree node.
type NodeJSON struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Value    *string     `json:"value,omitempty" yaml:"value,omitempty"`
	Line     int         `json:"line,omitempty" yaml:"line,omitempty"`
	Children []*NodeJSON `json:"children,omitempty" yaml:"children,omitempty"`
}

// TokensJSON converts tokens to their serializable form.
func TokensJSON(tokens []lexer.Token) []TokenJSON {
	out := make([]TokenJSON, len(tokens))
	for i, tok := range tokens {
		out[i] = TokenJSON{Kind: tok.Kind.String(), Text: tok.Text, Line: tok.Line}
	}
	return out
}

// TreeJSON converts a subtree to its serializable form.
func TreeJSON(n *ast.Node) *NodeJSON {
	out := &NodeJSON{Kind: n.Kind().String(), Line: n.Line}
	if n.Kind().HasPayload() {
		value := n.Data.Value
		out.Value = &value
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, TreeJSON(c))
	}
	return out
}

// Tokens writes the token sequence in the given format.
func Tokens(w io.Writer, tokens []lexer.Token, format string) error {
	switch format {
	case FormatText:
		for _, tok := range tokens {
			if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", tok.Line, tok.Kind, tok.Text); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return writeJSON(w, TokensJSON(tokens))
	case FormatYAML:
		return writeYAML(w, TokensJSON(tokens))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Tree writes the syntax tree in the given format.
func Tree(w io.Writer, root *ast.Node, format string) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, root.String())
		return err
	case FormatJSON:
		return writeJSON(w, TreeJSON(root))
	case FormatYAML:
		return writeYAML(w, TreeJSON(root))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
