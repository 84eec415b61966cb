package pack

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code identifies the class of a load-time problem.
type Code string

const (
	CodeMissingSection      Code = "missing-section"
	CodeDomainCountMismatch Code = "domain-count-mismatch"
	CodeDuplicateDomainID   Code = "duplicate-domain-id"
	CodeUnknownThemeKey     Code = "unknown-theme-key"
	CodeInvalidTitleLadder  Code = "invalid-title-ladder"
	CodeMissingScenarioFile Code = "missing-scenario-file"
	CodeInvalidScenario     Code = "invalid-scenario"
	CodeSchemaViolation     Code = "schema-violation"
	CodeUnreadable          Code = "unreadable"
	CodeDeprecatedKey       Code = "deprecated-key"
	CodeBadOptionalFile     Code = "bad-optional-file"
)

// Diagnostic is a single load-time finding for a pack.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s]: %s", d.Severity, d.Code, d.Message)
}

// Report collects all diagnostics produced while loading one pack.
// A pack with any error-severity diagnostic is excluded from the registry.
type Report struct {
	PackID      string
	Diagnostics []Diagnostic
}

func (r *Report) errorf(code Code, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Report) warnf(code Code, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any diagnostic is error-severity.
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics.
func (r *Report) Errors() []Diagnostic {
	return r.filter(SeverityError)
}

// Warnings returns only the warning-severity diagnostics.
func (r *Report) Warnings() []Diagnostic {
	return r.filter(SeverityWarning)
}

func (r *Report) filter(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// String renders the report one diagnostic per line, prefixed by pack id.
func (r *Report) String() string {
	if len(r.Diagnostics) == 0 {
		return fmt.Sprintf("%s: ok", r.PackID)
	}
	var b strings.Builder
	for i, d := range r.Diagnostics {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", r.PackID, d)
	}
	return b.String()
}
