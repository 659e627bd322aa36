package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+91 (987) 654-3210", "919876543210"},
		{"9876543210", "9876543210"},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestContactReference(t *testing.T) {
	c := Contact{ContactID: "5f2b8c41-9d13-4a6e-b1ce-0f3d2a7e8b90"}
	assert.Equal(t, "5f2b8c41", c.Reference())

	short := Contact{ContactID: "abc"}
	assert.Equal(t, "abc", short.Reference())
}
