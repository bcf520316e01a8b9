// Package errors provides structured error handling for duelsense.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Zone errors
	CodeZoneUnknown        Code = "ZONE_UNKNOWN"
	CodeZoneEmptyKey       Code = "ZONE_EMPTY_KEY"
	CodeZoneHiddenIdentity Code = "ZONE_HIDDEN_IDENTITY"

	// Discovery errors
	CodeDiscoverGraphMissing Code = "DISCOVER_GRAPH_MISSING"

	// Navigation errors
	CodeNavNoCandidates Code = "NAV_NO_CANDIDATES"
	CodeNavClickFailed  Code = "NAV_CLICK_FAILED"

	// Scheduler errors
	CodeSchedInvalidTicks Code = "SCHED_INVALID_TICKS"

	// Settings errors
	CodeSettingsPathEmpty Code = "SETTINGS_PATH_EMPTY"

	// Storage errors
	CodeNotFound             Code = "NOT_FOUND"
	CodeStorageNotConfigured Code = "STORAGE_NOT_CONFIGURED"

	// Script errors
	CodeScriptLoad            Code = "SCRIPT_LOAD"
	CodeScriptInvalidScenario Code = "SCRIPT_INVALID_SCENARIO"
)

// Severity describes how a code should be reported by telemetry.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Severity maps domain codes to telemetry severity levels.
func (c Code) Severity() Severity {
	switch c {
	// Expected absences: a candidate, zone, or record simply is not there
	// right now. The feature skips a tick and self-heals on rescan.
	case CodeNavNoCandidates,
		CodeNotFound:
		return SeverityInfo

	// Degraded behavior worth surfacing in diagnostics.
	case CodeZoneUnknown,
		CodeZoneEmptyKey,
		CodeNavClickFailed,
		CodeSettingsPathEmpty,
		CodeScriptLoad,
		CodeScriptInvalidScenario:
		return SeverityWarn

	default:
		return SeverityError
	}
}
