package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Student account identifier pattern - 13 digits
	StudentAccountPattern = `^\d{13}$`

	// Staff (teacher/admin) account identifier pattern - 8 digits
	StaffAccountPattern = `^\d{8}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email          *regexp.Regexp
	StudentAccount *regexp.Regexp
	StaffAccount   *regexp.Regexp
}{
	Email:          regexp.MustCompile(EmailPattern),
	StudentAccount: regexp.MustCompile(StudentAccountPattern),
	StaffAccount:   regexp.MustCompile(StaffAccountPattern),
}

// ValidAccountID reports whether an account identifier matches the
// institutional format for the given role: students carry a 13-digit
// student number, teachers and admins an 8-digit staff number.
func ValidAccountID(accountID, role string) bool {
	switch role {
	case "student":
		return CompiledPatterns.StudentAccount.MatchString(accountID)
	case "teacher", "admin":
		return CompiledPatterns.StaffAccount.MatchString(accountID)
	default:
		return false
	}
}

// ValidPassword reports whether a password satisfies the policy:
// at least PasswordMinLength characters, containing letters and digits.
func ValidPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}
	hasLetter := strings.ContainsFunc(password, unicode.IsLetter)
	hasDigit := strings.ContainsFunc(password, unicode.IsDigit)
	return hasLetter && hasDigit
}

// ValidEmail reports whether an email address is well formed.
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}
