package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListConfigValidate(t *testing.T) {
	tests := []struct {
		name          string
		config        *ListConfig
		expectedError string
	}{
		{
			name:   "default config",
			config: NewListConfig(),
		},
		{
			name: "json format with filter",
			config: &ListConfig{
				Recursive: true,
				Filter:    "data-*",
				Format:    "json",
			},
		},
		{
			name: "invalid format",
			config: &ListConfig{
				Format: "table",
			},
			expectedError: "invalid format: table",
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
