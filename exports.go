// Package basm is the front end of the Block-ASM compiler.
//
// Block-ASM is a textual assembly format describing a block-based visual
// programming project: metadata, target sections holding blocks, costumes,
// sounds and variables, and monitor sections. The front end turns source text
// into a syntax tree in three stages (scan, classify, parse). Each stage runs
// over its whole input and collects every diagnostic it finds; the pipeline
// stops at the first stage that reported any.
package basm

import (
	"github.com/kytekode/basm/internal/ast"
	"github.com/kytekode/basm/internal/lexer"
	"github.com/kytekode/basm/internal/scanner"
	"github.com/kytekode/basm/internal/types"
)

// Type aliases for the public API.

// Symbol is a raw text fragment with its source line.
type Symbol = scanner.Symbol

// Token is a classified symbol.
type Token = lexer.Token

// TokenKind is the class of a token.
type TokenKind = lexer.TokenKind

// Node is one element of the syntax tree.
type Node = ast.Node

// NodeData is the tagged payload of a node.
type NodeData = ast.NodeData

// Kind identifies what a node represents.
type Kind = ast.Kind

// Diagnostic is a problem found by one of the pipeline stages.
type Diagnostic = types.Diagnostic

// Stage identifies a pipeline stage.
type Stage = types.Stage

// Token kinds.
const (
	TokKeyword    = lexer.TokKeyword
	TokLiteral    = lexer.TokLiteral
	TokPunctuator = lexer.TokPunctuator
)

// Pipeline stages.
const (
	StageScan     = types.StageScan
	StageClassify = types.StageClassify
	StageParse    = types.StageParse
)

// Diagnostic codes.
const (
	DiagUnclosedStringLiteral = types.DiagUnclosedStringLiteral
	DiagUnclosedTargetHeader  = types.DiagUnclosedTargetHeader
	DiagUnclosedMonitorHeader = types.DiagUnclosedMonitorHeader
	DiagUnknownSymbol         = types.DiagUnknownSymbol
	DiagUnexpectedToken       = types.DiagUnexpectedToken
	DiagMissingValue          = types.DiagMissingValue
	DiagInvalidValue          = types.DiagInvalidValue
	DiagUnclosedItem          = types.DiagUnclosedItem
	DiagUnclosedSection       = types.DiagUnclosedSection
)

// Node kinds most callers inspect. The full set lives in the ast package
// and is reachable through Kind values and KindByName.
const (
	KindRoot       = ast.KindRoot
	KindSemVer     = ast.KindSemVer
	KindVM         = ast.KindVM
	KindAgent      = ast.KindAgent
	KindTarget     = ast.KindTarget
	KindMonitor    = ast.KindMonitor
	KindBlock      = ast.KindBlock
	KindCostume    = ast.KindCostume
	KindSound      = ast.KindSound
	KindVariable   = ast.KindVariable
	KindList       = ast.KindList
	KindBroadcast  = ast.KindBroadcast
	KindStringData = ast.KindStringData
	KindNullData   = ast.KindNullData
)

// KindByName returns the node kind with the given name, e.g. "SemVer".
func KindByName(name string) (Kind, bool) {
	return ast.KindByName(name)
}
