package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDestination(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Destination
	}{
		{
			name:  "absolute url is kept as is",
			input: "https://github.com",
			want:  "https://github.com",
		},
		{
			name:  "http scheme is kept as is",
			input: "http://localhost:8080/admin",
			want:  "http://localhost:8080/admin",
		},
		{
			name:  "bare host gets https",
			input: "github.com",
			want:  "https://github.com",
		},
		{
			name:  "host with path gets https",
			input: "go.dev/doc/effective_go",
			want:  "https://go.dev/doc/effective_go",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDestination(tt.input))
		})
	}
}

func TestNewMapping(t *testing.T) {
	m := NewMapping("gh", "github.com")

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, Shortcut("gh"), m.Shortcut)
	assert.Equal(t, Destination("https://github.com"), m.Destination)
}
