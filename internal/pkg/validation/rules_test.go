package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAccountID(t *testing.T) {
	tests := []struct {
		name      string
		accountID string
		role      string
		want      bool
	}{
		{"student 13 digits", "2025000000001", "student", true},
		{"student 8 digits rejected", "20250001", "student", false},
		{"student with letters rejected", "202500000000a", "student", false},
		{"teacher 8 digits", "88888889", "teacher", true},
		{"teacher 13 digits rejected", "2025000000001", "teacher", false},
		{"admin 8 digits", "88888888", "admin", true},
		{"admin with letters rejected", "8888888a", "admin", false},
		{"unknown role rejected", "88888888", "staff", false},
		{"empty account rejected", "", "student", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidAccountID(tt.accountID, tt.role))
		})
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"letters and digits", "Admin123456", true},
		{"minimum length", "abcde123", true},
		{"too short", "ab12", false},
		{"digits only", "12345678", false},
		{"letters only", "abcdefgh", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPassword(tt.password))
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("admin@school.edu.cn"))
	assert.True(t, ValidEmail("zhang.san+cert@school.edu.cn"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@domain"))
	assert.False(t, ValidEmail(""))
}
