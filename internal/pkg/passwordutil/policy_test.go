package passwordutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPolicy(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		violations []string
	}{
		{
			name:     "six chars meeting all classes passes",
			password: "Abc123",
		},
		{
			name:     "another minimal valid password",
			password: "Pass12",
		},
		{
			name:       "missing uppercase",
			password:   "abc123",
			violations: []string{"must contain at least one uppercase letter"},
		},
		{
			name:     "missing lowercase and digit",
			password: "ABCDEF",
			violations: []string{
				"must contain at least one lowercase letter",
				"must contain at least one digit",
			},
		},
		{
			name:       "too short",
			password:   "Ab1",
			violations: []string{"must be at least 6 characters long"},
		},
		{
			name:     "empty string fails every rule",
			password: "",
			violations: []string{
				"must be at least 6 characters long",
				"must contain at least one uppercase letter",
				"must contain at least one lowercase letter",
				"must contain at least one digit",
			},
		},
		{
			name:     "128 chars is allowed",
			password: "A" + strings.Repeat("a", 126) + "1",
		},
		{
			name:       "129 chars is too long",
			password:   "A" + strings.Repeat("a", 127) + "1",
			violations: []string{"must be at most 128 characters long"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckPolicy(tt.password)
			if len(tt.violations) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.violations, got)
		})
	}
}
