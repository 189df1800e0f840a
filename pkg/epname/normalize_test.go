package epname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pilot", "pilot"},
		{"The Pilot", "pilot"},
		{"Léon", "leon"},
		{"Rock & Roll", "rock and roll"},
		{"Archer: The Holdout", "archer holdout"},
		{"Don't Stop", "dont stop"},
		{"What.Ever-Else", "what ever else"},
		{"  spaced   out  ", "spaced out"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalize_CaseFold(t *testing.T) {
	assert.Equal(t, Normalize("OZYMANDIAS"), Normalize("ozymandias"))
}
