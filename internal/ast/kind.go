package ast

import (
	"fmt"
	"strconv"
)

// Kind identifies what a node represents. The set is closed and split into
// two families: structural kinds, which only ever carry children, and leaf
// data kinds, which carry a payload string and never have children.
type Kind int

const (
	KindRoot Kind = iota

	// === Metadata ===

	KindSemVer
	KindVM
	KindAgent

	// === Sections ===

	KindTarget
	KindMonitor

	// === Target properties ===

	KindIsStage
	KindCostumeNum
	KindLayer
	KindVolume
	KindTempo             // stage only
	KindVideoState        // stage only
	KindVideoTransparency // stage only
	KindTTSLanguage       // stage only
	KindVisible           // sprite only
	KindXPos              // sprite only
	KindYPos              // sprite only
	KindSize              // sprite only
	KindDirection         // sprite only
	KindRotationStyle     // sprite only

	// === Blocks ===

	KindBlock
	KindUid
	KindOpcode
	KindParent
	KindNext
	KindInput
	KindField
	KindMutation
	KindShadow
	KindTopLevel

	// === Costumes and sounds ===

	KindCostume
	KindSound
	KindName
	KindPath
	KindFormat
	KindBitmapRes
	KindCenterX
	KindCenterY
	KindRate
	KindSamples

	// === Variables, lists, broadcasts ===

	KindVariable
	KindValue
	KindIsCloud
	KindList
	KindItem
	KindBroadcast

	// === Monitors ===

	KindMode
	KindParam
	KindSpriteName
	KindWidth
	KindHeight
	KindSliderMin
	KindSliderMax
	KindIsDiscrete

	// === Leaf data ===

	KindPrototypeData
	KindBlockPtrData
	KindSubstackData
	KindDoubleData
	KindPosDoubleData
	KindPosIntData
	KindIntData
	KindAngleData
	KindColorData
	KindStringData
	KindBroadcastData
	KindVariableData
	KindListData
	KindNullData

	kindCount
)

var kindNames = [kindCount]string{
	KindRoot:              "Root",
	KindSemVer:            "SemVer",
	KindVM:                "VM",
	KindAgent:             "Agent",
	KindTarget:            "Target",
	KindMonitor:           "Monitor",
	KindIsStage:           "IsStage",
	KindCostumeNum:        "CostumeNum",
	KindLayer:             "Layer",
	KindVolume:            "Volume",
	KindTempo:             "Tempo",
	KindVideoState:        "VideoState",
	KindVideoTransparency: "VideoTransparency",
	KindTTSLanguage:       "TTSLanguage",
	KindVisible:           "Visible",
	KindXPos:              "XPos",
	KindYPos:              "YPos",
	KindSize:              "Size",
	KindDirection:         "Direction",
	KindRotationStyle:     "RotationStyle",
	KindBlock:             "Block",
	KindUid:               "Uid",
	KindOpcode:            "Opcode",
	KindParent:            "Parent",
	KindNext:              "Next",
	KindInput:             "Input",
	KindField:             "Field",
	KindMutation:          "Mutation",
	KindShadow:            "Shadow",
	KindTopLevel:          "TopLevel",
	KindCostume:           "Costume",
	KindSound:             "Sound",
	KindName:              "Name",
	KindPath:              "Path",
	KindFormat:            "Format",
	KindBitmapRes:         "BitmapRes",
	KindCenterX:           "CenterX",
	KindCenterY:           "CenterY",
	KindRate:              "Rate",
	KindSamples:           "Samples",
	KindVariable:          "Variable",
	KindValue:             "Value",
	KindIsCloud:           "IsCloud",
	KindList:              "List",
	KindItem:              "Item",
	KindBroadcast:         "Broadcast",
	KindMode:              "Mode",
	KindParam:             "Param",
	KindSpriteName:        "SpriteName",
	KindWidth:             "Width",
	KindHeight:            "Height",
	KindSliderMin:         "SliderMin",
	KindSliderMax:         "SliderMax",
	KindIsDiscrete:        "IsDiscrete",
	KindPrototypeData:     "PrototypeData",
	KindBlockPtrData:      "BlockPtrData",
	KindSubstackData:      "SubstackData",
	KindDoubleData:        "DoubleData",
	KindPosDoubleData:     "PosDoubleData",
	KindPosIntData:        "PosIntData",
	KindIntData:           "IntData",
	KindAngleData:         "AngleData",
	KindColorData:         "ColorData",
	KindStringData:        "StringData",
	KindBroadcastData:     "BroadcastData",
	KindVariableData:      "VariableData",
	KindListData:          "ListData",
	KindNullData:          "NullData",
}

// String returns the kind name.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// IsLeaf reports whether k is a leaf data kind.
func (k Kind) IsLeaf() bool {
	return k >= KindPrototypeData && k <= KindNullData
}

// HasPayload reports whether nodes of kind k carry a payload string.
// NullData is a leaf without payload.
func (k Kind) HasPayload() bool {
	return k.IsLeaf() && k != KindNullData
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid node kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := KindByName(string(text))
	if !ok {
		return fmt.Errorf("unknown node kind %q", text)
	}
	*k = kind
	return nil
}

// KindByName returns the kind with the given name.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}
