package emailaddr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a@example.com", Normalize("  A@Example.com "))
	assert.Equal(t, "user@host.io", Normalize("USER@HOST.IO"))
	assert.Equal(t, "", Normalize("   "))
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{name: "simple", email: "a@example.com", valid: true},
		{name: "plus tag", email: "a+waitlist@example.com", valid: true},
		{name: "subdomain", email: "a@mail.example.co.uk", valid: true},
		{name: "two char tld", email: "a@example.io", valid: true},
		{name: "empty", email: "", valid: false},
		{name: "no at", email: "example.com", valid: false},
		{name: "no domain dot", email: "a@example", valid: false},
		{name: "one char tld", email: "a@example.c", valid: false},
		{name: "space in local part", email: "a b@example.com", valid: false},
		{name: "double at", email: "a@@example.com", valid: false},
		{name: "trailing dot only", email: "a@example.", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, Valid(tt.email))
		})
	}
}

func TestValid_LengthCap(t *testing.T) {
	local := strings.Repeat("a", MaxLength-len("@example.com"))
	atCap := local + "@example.com"
	assert.Len(t, atCap, MaxLength)
	assert.True(t, Valid(atCap))

	overCap := "a" + atCap
	assert.False(t, Valid(overCap))
}
