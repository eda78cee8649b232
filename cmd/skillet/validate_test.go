package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfigValidate(t *testing.T) {
	tests := []struct {
		name          string
		config        *ValidateConfig
		expectedError string
	}{
		{
			name:   "default config",
			config: NewValidateConfig(),
		},
		{
			name: "json format",
			config: &ValidateConfig{
				Format:   "json",
				Debounce: 500,
			},
		},
		{
			name: "watch with custom debounce",
			config: &ValidateConfig{
				Format:   "text",
				Watch:    true,
				Debounce: 50,
			},
		},
		{
			name: "invalid format",
			config: &ValidateConfig{
				Format:   "yaml",
				Debounce: 500,
			},
			expectedError: "invalid format: yaml",
		},
		{
			name: "negative debounce",
			config: &ValidateConfig{
				Format:   "text",
				Debounce: -1,
			},
			expectedError: "debounce time cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectedError == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.expectedError)
			}
		})
	}
}
