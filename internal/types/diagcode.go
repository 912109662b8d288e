package types

// Diagnostic codes emitted by the pipeline stages.
// Centralizing these prevents silent breakage from typos in string literals.

// Scanner diagnostic codes.
const (
	DiagUnclosedStringLiteral = "unclosed-string-literal"
	DiagUnclosedTargetHeader  = "unclosed-target-header"
	DiagUnclosedMonitorHeader = "unclosed-monitor-header"
)

// Classifier diagnostic codes.
const (
	DiagUnknownSymbol = "unknown-symbol"
)

// Parser diagnostic codes.
const (
	DiagUnexpectedToken = "unexpected-token"
	DiagMissingValue    = "missing-value"
	DiagInvalidValue    = "invalid-value"
	DiagUnclosedItem    = "unclosed-item"
	DiagUnclosedSection = "unclosed-section"
)

// AllDiagnosticCodes returns all known diagnostic codes grouped by stage.
func AllDiagnosticCodes() []DiagCodeInfo {
	return []DiagCodeInfo{
		// Scanner
		{Code: DiagUnclosedStringLiteral, Stage: StageScan},
		{Code: DiagUnclosedTargetHeader, Stage: StageScan},
		{Code: DiagUnclosedMonitorHeader, Stage: StageScan},
		// Classifier
		{Code: DiagUnknownSymbol, Stage: StageClassify},
		// Parser
		{Code: DiagUnexpectedToken, Stage: StageParse},
		{Code: DiagMissingValue, Stage: StageParse},
		{Code: DiagInvalidValue, Stage: StageParse},
		{Code: DiagUnclosedItem, Stage: StageParse},
		{Code: DiagUnclosedSection, Stage: StageParse},
	}
}

// DiagCodeInfo describes a diagnostic code and the stage that emits it.
type DiagCodeInfo struct {
	Code  string
	Stage Stage
}
