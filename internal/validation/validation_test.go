package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid simple", "alice", false},
		{"valid with separators", "alice.b_c-d", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 151), true},
		{"max length ok", strings.Repeat("a", 150), false},
		{"spaces rejected", "alice smith", true},
		{"at sign rejected", "alice@home", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "alice@example.com", false},
		{"missing at", "alice.example.com", true},
		{"missing domain dot", "alice@example", true},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 250) + "@x.io", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.NoError(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword("a perfectly fine passphrase"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}
