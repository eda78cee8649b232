package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportPassed(t *testing.T) {
	t.Run("empty report passes", func(t *testing.T) {
		assert.True(t, newReport().Passed())
	})

	t.Run("warnings do not fail a report", func(t *testing.T) {
		report := newReport()
		report.warnf(CodeBodyTooShort, "too brief")
		report.warnf(CodeMissingFileReference, "referenced file not found: scripts/x.py")
		assert.True(t, report.Passed())
	})

	t.Run("a single error fails the report", func(t *testing.T) {
		report := newReport()
		report.warnf(CodeBodyTooShort, "too brief")
		report.errorf(CodeNameFormat, "bad name")
		assert.False(t, report.Passed())
	})
}

func TestReportFiltering(t *testing.T) {
	report := newReport()
	report.errorf(CodeNameFormat, "first error")
	report.warnf(CodeBodyTooShort, "first warning")
	report.errorf(CodeEmptyBody, "second error")

	errs := report.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, "first error", errs[0].Message)
	assert.Equal(t, "second error", errs[1].Message)

	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, CodeBodyTooShort, warnings[0].Code)
}

func TestReportMarshalJSON(t *testing.T) {
	report := newReport()
	report.errorf(CodeDirectoryMismatch, "directory name %q does not match skill name %q", "foo", "bar")

	out, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded struct {
		Passed bool    `json:"passed"`
		Issues []Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.False(t, decoded.Passed)
	require.Len(t, decoded.Issues, 1)
	assert.Equal(t, SeverityError, decoded.Issues[0].Severity)
	assert.Equal(t, CodeDirectoryMismatch, decoded.Issues[0].Code)

	t.Run("clean report", func(t *testing.T) {
		out, err := json.Marshal(newReport())
		require.NoError(t, err)
		assert.JSONEq(t, `{"passed": true, "issues": []}`, string(out))
	})
}
