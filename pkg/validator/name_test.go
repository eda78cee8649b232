package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	t.Run("valid names", func(t *testing.T) {
		for _, name := range []string{
			"a",
			"pdf",
			"pdf-processing",
			"my-skill-2",
			"a1-b2-c3",
			"123",
		} {
			assert.NoError(t, ValidateName(name), "expected %q to be valid", name)
		}
	})

	tests := []struct {
		name    string
		input   string
		message string
	}{
		{
			name:    "empty",
			input:   "",
			message: "skill name cannot be empty",
		},
		{
			name:    "uppercase",
			input:   "My-Skill",
			message: "lowercase letters, numbers, and hyphens",
		},
		{
			name:    "underscore",
			input:   "my_skill",
			message: "lowercase letters, numbers, and hyphens",
		},
		{
			name:    "spaces",
			input:   "my skill",
			message: "lowercase letters, numbers, and hyphens",
		},
		{
			name:    "unicode",
			input:   "café-skill",
			message: "lowercase letters, numbers, and hyphens",
		},
		{
			name:    "leading hyphen",
			input:   "-my-skill",
			message: "cannot start or end with a hyphen",
		},
		{
			name:    "trailing hyphen",
			input:   "my-skill-",
			message: "cannot start or end with a hyphen",
		},
		{
			name:    "consecutive hyphens",
			input:   "my--skill",
			message: "cannot contain consecutive hyphens",
		},
		{
			name:    "only hyphens",
			input:   "--",
			message: "cannot start or end with a hyphen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	t.Run("reports one violation at a time", func(t *testing.T) {
		// "-My_Skill-" breaks several rules at once but the charset check
		// comes first.
		err := ValidateName("-My_Skill-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lowercase letters, numbers, and hyphens")
	})

	t.Run("very long input", func(t *testing.T) {
		assert.NoError(t, ValidateName(strings.Repeat("a", 10_000)))
	})
}
