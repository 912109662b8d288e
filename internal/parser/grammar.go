package parser

import (
	"fmt"
	"strconv"

	"github.com/kytekode/basm/internal/ast"
	"github.com/kytekode/basm/internal/lexer"
)

// contextKind is a parsing context. The parser keeps a stack of them:
// the root at the bottom, then at most one section, then at most one item.
type contextKind int

const (
	ctxRoot contextKind = iota
	ctxTarget
	ctxMonitor
	ctxBlock
	ctxCostume
	ctxSound
	ctxVariable
	ctxList
	ctxBroadcast
)

func (c contextKind) String() string {
	switch c {
	case ctxRoot:
		return "root"
	case ctxTarget:
		return "target"
	case ctxMonitor:
		return "monitor"
	case ctxBlock:
		return "block"
	case ctxCostume:
		return "costume"
	case ctxSound:
		return "sound"
	case ctxVariable:
		return "variable"
	case ctxList:
		return "list"
	case ctxBroadcast:
		return "broadcast"
	}
	return "context(" + strconv.Itoa(int(c)) + ")"
}

func (c contextKind) isSection() bool {
	return c == ctxTarget || c == ctxMonitor
}

// frame is one entry of the context stack.
type frame struct {
	ctx  contextKind
	node *ast.Node
	line int
	name string // section name, or the item keyword
}

func (f *frame) describe() string {
	if f.ctx.isSection() {
		return fmt.Sprintf("%s `%s`", f.ctx, f.name)
	}
	return f.ctx.String()
}

// metadataKinds are the keywords accepted at the top level.
var metadataKinds = map[lexer.Keyword]ast.Kind{
	lexer.KwSemVer: ast.KindSemVer,
	lexer.KwVM:     ast.KindVM,
	lexer.KwAgent:  ast.KindAgent,
}

// itemOpeners are the keywords that open an item inside a target section.
var itemOpeners = map[lexer.Keyword]struct {
	ctx  contextKind
	kind ast.Kind
}{
	lexer.KwBlock:     {ctxBlock, ast.KindBlock},
	lexer.KwCostume:   {ctxCostume, ast.KindCostume},
	lexer.KwSound:     {ctxSound, ast.KindSound},
	lexer.KwVariable:  {ctxVariable, ast.KindVariable},
	lexer.KwList:      {ctxList, ast.KindList},
	lexer.KwBroadcast: {ctxBroadcast, ast.KindBroadcast},
}

// propSpec describes a property keyword in a given context.
// A nil rule marks a typed value: an optional annotation keyword followed
// by a literal.
type propSpec struct {
	kind  ast.Kind
	rule  *valueRule
	named bool // a quoted name precedes the value
}

var (
	propTyped      = func(kind ast.Kind) propSpec { return propSpec{kind: kind} }
	propNamedTyped = func(kind ast.Kind) propSpec { return propSpec{kind: kind, named: true} }
)

// properties lists the property keywords each context accepts.
var properties = map[contextKind]map[lexer.Keyword]propSpec{
	ctxTarget: {
		lexer.KwIsStage:           {kind: ast.KindIsStage, rule: ruleBool},
		lexer.KwCostumeNum:        {kind: ast.KindCostumeNum, rule: rulePosInt},
		lexer.KwLayer:             {kind: ast.KindLayer, rule: rulePosInt},
		lexer.KwVolume:            {kind: ast.KindVolume, rule: rulePosDouble},
		lexer.KwTempo:             {kind: ast.KindTempo, rule: rulePosDouble},
		lexer.KwVideoState:        {kind: ast.KindVideoState, rule: ruleString},
		lexer.KwVideoTransparency: {kind: ast.KindVideoTransparency, rule: ruleDouble},
		lexer.KwTTSLanguage:       {kind: ast.KindTTSLanguage, rule: ruleOptString},
		lexer.KwVisible:           {kind: ast.KindVisible, rule: ruleBool},
		lexer.KwXPos:              {kind: ast.KindXPos, rule: ruleDouble},
		lexer.KwYPos:              {kind: ast.KindYPos, rule: ruleDouble},
		lexer.KwSize:              {kind: ast.KindSize, rule: rulePosDouble},
		lexer.KwDirection:         {kind: ast.KindDirection, rule: ruleAngle},
		lexer.KwRotationStyle:     {kind: ast.KindRotationStyle, rule: ruleString},
	},
	ctxBlock: {
		lexer.KwUid:      {kind: ast.KindUid, rule: ruleString},
		lexer.KwOpcode:   {kind: ast.KindOpcode, rule: ruleString},
		lexer.KwParent:   {kind: ast.KindParent, rule: ruleBlockPtr},
		lexer.KwNext:     {kind: ast.KindNext, rule: ruleBlockPtr},
		lexer.KwInput:    propNamedTyped(ast.KindInput),
		lexer.KwField:    propNamedTyped(ast.KindField),
		lexer.KwMutation: propTyped(ast.KindMutation),
		lexer.KwShadow:   {kind: ast.KindShadow, rule: ruleBool},
		lexer.KwTopLevel: {kind: ast.KindTopLevel, rule: ruleBool},
		lexer.KwXPos:     {kind: ast.KindXPos, rule: ruleDouble},
		lexer.KwYPos:     {kind: ast.KindYPos, rule: ruleDouble},
	},
	ctxCostume: {
		lexer.KwName:      {kind: ast.KindName, rule: ruleString},
		lexer.KwPath:      {kind: ast.KindPath, rule: ruleString},
		lexer.KwFormat:    {kind: ast.KindFormat, rule: ruleString},
		lexer.KwBitmapRes: {kind: ast.KindBitmapRes, rule: rulePosInt},
		lexer.KwCenterX:   {kind: ast.KindCenterX, rule: ruleDouble},
		lexer.KwCenterY:   {kind: ast.KindCenterY, rule: ruleDouble},
	},
	ctxSound: {
		lexer.KwName:    {kind: ast.KindName, rule: ruleString},
		lexer.KwPath:    {kind: ast.KindPath, rule: ruleString},
		lexer.KwFormat:  {kind: ast.KindFormat, rule: ruleString},
		lexer.KwRate:    {kind: ast.KindRate, rule: rulePosInt},
		lexer.KwSamples: {kind: ast.KindSamples, rule: rulePosInt},
	},
	ctxVariable: {
		lexer.KwUid:     {kind: ast.KindUid, rule: ruleString},
		lexer.KwName:    {kind: ast.KindName, rule: ruleString},
		lexer.KwValue:   {kind: ast.KindValue, rule: ruleAny},
		lexer.KwIsCloud: {kind: ast.KindIsCloud, rule: ruleBool},
	},
	ctxList: {
		lexer.KwUid:  {kind: ast.KindUid, rule: ruleString},
		lexer.KwName: {kind: ast.KindName, rule: ruleString},
		lexer.KwItem: {kind: ast.KindItem, rule: ruleAny},
	},
	ctxBroadcast: {
		lexer.KwUid:  {kind: ast.KindUid, rule: ruleString},
		lexer.KwName: {kind: ast.KindName, rule: ruleString},
	},
	ctxMonitor: {
		lexer.KwUid:        {kind: ast.KindUid, rule: ruleString},
		lexer.KwMode:       {kind: ast.KindMode, rule: ruleString},
		lexer.KwOpcode:     {kind: ast.KindOpcode, rule: ruleString},
		lexer.KwParam:      propNamedTyped(ast.KindParam),
		lexer.KwSpriteName: {kind: ast.KindSpriteName, rule: ruleOptString},
		lexer.KwValue:      {kind: ast.KindValue, rule: ruleAny},
		lexer.KwWidth:      {kind: ast.KindWidth, rule: rulePosInt},
		lexer.KwHeight:     {kind: ast.KindHeight, rule: rulePosInt},
		lexer.KwXPos:       {kind: ast.KindXPos, rule: ruleDouble},
		lexer.KwYPos:       {kind: ast.KindYPos, rule: ruleDouble},
		lexer.KwVisible:    {kind: ast.KindVisible, rule: ruleBool},
		lexer.KwSliderMin:  {kind: ast.KindSliderMin, rule: ruleDouble},
		lexer.KwSliderMax:  {kind: ast.KindSliderMax, rule: ruleDouble},
		lexer.KwIsDiscrete: {kind: ast.KindIsDiscrete, rule: ruleBool},
	},
}
