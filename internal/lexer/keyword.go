package lexer

import "sort"

// Keyword identifies a member of the fixed keyword vocabulary.
type Keyword int

const (
	KwNone Keyword = iota

	// === Metadata ===

	KwSemVer
	KwVM
	KwAgent

	// === Target properties ===

	KwIsStage
	KwCostumeNum
	KwLayer
	KwVolume
	KwTempo
	KwVideoState
	KwVideoTransparency
	KwTTSLanguage
	KwVisible
	KwXPos
	KwYPos
	KwSize
	KwDirection
	KwRotationStyle

	// === Block graph ===

	KwBlock
	KwUid
	KwOpcode
	KwParent
	KwNext
	KwInput
	KwField
	KwMutation
	KwShadow
	KwTopLevel

	// === Assets ===

	KwCostume
	KwSound
	KwName
	KwPath
	KwFormat
	KwBitmapRes
	KwCenterX
	KwCenterY
	KwRate
	KwSamples

	// === Variables, lists, broadcasts ===

	KwVariable
	KwValue
	KwIsCloud
	KwList
	KwItem
	KwBroadcast

	// === Monitors ===

	KwMode
	KwParam
	KwSpriteName
	KwWidth
	KwHeight
	KwSliderMin
	KwSliderMax
	KwIsDiscrete

	// === Value type annotations ===

	KwPrototype
	KwBlockPtr
	KwSubstack
	KwDouble
	KwPosDouble
	KwPosInt
	KwInt
	KwAngle
	KwColor
	KwString
)

// keywords is the sorted keyword table for binary search.
// IMPORTANT: This slice MUST remain sorted by text in byte order.
// Underscore (95) sorts before lowercase letters (97-122).
var keywords = []struct {
	text string
	kind Keyword
}{
	{"agent", KwAgent},
	{"angle", KwAngle},
	{"bitmap_res", KwBitmapRes},
	{"block", KwBlock},
	{"block_ptr", KwBlockPtr},
	{"broadcast", KwBroadcast},
	{"center_x", KwCenterX},
	{"center_y", KwCenterY},
	{"color", KwColor},
	{"costume", KwCostume},
	{"costume_num", KwCostumeNum},
	{"direction", KwDirection},
	{"double", KwDouble},
	{"field", KwField},
	{"format", KwFormat},
	{"height", KwHeight},
	{"input", KwInput},
	{"int", KwInt},
	{"is_cloud", KwIsCloud},
	{"is_discrete", KwIsDiscrete},
	{"is_stage", KwIsStage},
	{"item", KwItem},
	{"layer", KwLayer},
	{"list", KwList},
	{"mode", KwMode},
	{"mutation", KwMutation},
	{"name", KwName},
	{"next", KwNext},
	{"opcode", KwOpcode},
	{"param", KwParam},
	{"parent", KwParent},
	{"path", KwPath},
	{"pos_double", KwPosDouble},
	{"pos_int", KwPosInt},
	{"prototype", KwPrototype},
	{"rate", KwRate},
	{"rotation_style", KwRotationStyle},
	{"samples", KwSamples},
	{"sem_ver", KwSemVer},
	{"shadow", KwShadow},
	{"size", KwSize},
	{"slider_max", KwSliderMax},
	{"slider_min", KwSliderMin},
	{"sound", KwSound},
	{"sprite_name", KwSpriteName},
	{"string", KwString},
	{"substack", KwSubstack},
	{"tempo", KwTempo},
	{"top_level", KwTopLevel},
	{"tts_language", KwTTSLanguage},
	{"uid", KwUid},
	{"value", KwValue},
	{"variable", KwVariable},
	{"video_state", KwVideoState},
	{"video_transparency", KwVideoTransparency},
	{"visible", KwVisible},
	{"vm", KwVM},
	{"volume", KwVolume},
	{"width", KwWidth},
	{"x_pos", KwXPos},
	{"y_pos", KwYPos},
}

// keywordText maps a Keyword back to its source spelling.
var keywordText = func() map[Keyword]string {
	m := make(map[Keyword]string, len(keywords))
	for _, kw := range keywords {
		m[kw.kind] = kw.text
	}
	return m
}()

// LookupKeyword returns the Keyword for a text, or (KwNone, false) if the
// text is not in the vocabulary.
func LookupKeyword(text string) (Keyword, bool) {
	idx := sort.Search(len(keywords), func(i int) bool {
		return keywords[i].text >= text
	})
	if idx < len(keywords) && keywords[idx].text == text {
		return keywords[idx].kind, true
	}
	return KwNone, false
}

// String returns the keyword's source spelling.
func (k Keyword) String() string {
	if text, ok := keywordText[k]; ok {
		return text
	}
	return "<none>"
}

// Keywords returns the vocabulary in sorted order.
func Keywords() []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = kw.text
	}
	return out
}
