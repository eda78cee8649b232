// Package validator checks skills against the SKILL.md authoring rules and
// produces a report of errors and warnings. Errors make a skill unusable,
// warnings are advisory.
package validator

import (
	"encoding/json"
	"fmt"
)

// Severity classifies how serious a validation issue is.
type Severity string

const (
	// SeverityError marks issues that make the skill invalid.
	SeverityError Severity = "ERROR"
	// SeverityWarning marks advisory issues that never fail validation.
	SeverityWarning Severity = "WARNING"
)

// Stable issue codes, one per rule family. Codes are part of the output
// contract so downstream tooling can match on them.
const (
	CodeInvalidPath          = "invalid-path"
	CodeMetadataNotFound     = "metadata-not-found"
	CodeInvalidFrontmatter   = "invalid-frontmatter"
	CodeNameFormat           = "name-format"
	CodeDirectoryMismatch    = "directory-mismatch"
	CodeMissingDescription   = "missing-description"
	CodeDescriptionTooShort  = "description-too-short"
	CodeDescriptionTooLong   = "description-too-long"
	CodeEmptyBody            = "empty-body"
	CodeBodyTooShort         = "body-too-short"
	CodeMissingFileReference = "missing-file-reference"
	CodeNonImperativeStyle   = "non-imperative-style"
)

// Issue is a single validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// Report collects the issues from one validation run in rule order.
type Report struct {
	Issues []Issue `json:"issues"`
}

func newReport() *Report {
	return &Report{Issues: []Issue{}}
}

// Passed reports whether validation succeeded. Warnings never fail a
// report, only errors do.
func (r *Report) Passed() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns the issues with error severity, in report order.
func (r *Report) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the issues with warning severity, in report order.
func (r *Report) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Report) filter(severity Severity) []Issue {
	issues := []Issue{}
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			issues = append(issues, issue)
		}
	}
	return issues
}

func (r *Report) errorf(code, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Report) warnf(code, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// MarshalJSON includes the derived pass/fail verdict alongside the issues.
func (r *Report) MarshalJSON() ([]byte, error) {
	type reportJSON Report
	return json.Marshal(struct {
		Passed bool `json:"passed"`
		*reportJSON
	}{
		Passed:     r.Passed(),
		reportJSON: (*reportJSON)(r),
	})
}
