package service

import (
	"regexp"
	"strings"
)

// maxEmailLength caps addresses at the RFC 5321 path limit.
const maxEmailLength = 254

const (
	minPasswordLength = 8
	maxPasswordLength = 128

	minUsernameLength = 3
	maxUsernameLength = 30
)

// passwordSpecialChars is the accepted special character set for passwords.
const passwordSpecialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// isValidEmail reports whether the address has a plausible mailbox shape.
func isValidEmail(email string) bool {
	return len(email) <= maxEmailLength && emailPattern.MatchString(email)
}

// normalizeEmail lowercases and trims an address before storage or lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateUsername returns a message describing the first violated rule,
// or an empty string when the username is acceptable.
func validateUsername(username string) string {
	switch {
	case username == "":
		return "Username cannot be empty"
	case len(username) < minUsernameLength:
		return "Username must be at least 3 characters long"
	case len(username) > maxUsernameLength:
		return "Username must be no more than 30 characters long"
	}

	for _, c := range username {
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum && c != '_' && c != '-' {
			return "Username can only contain letters, numbers, underscores, and hyphens"
		}
	}

	return ""
}

// validatePasswordStrength returns every rule the password violates.
func validatePasswordStrength(password string) []string {
	var errs []string

	if len(password) < minPasswordLength {
		errs = append(errs, "Password must be at least 8 characters long")
	}
	if len(password) > maxPasswordLength {
		errs = append(errs, "Password must be no more than 128 characters long")
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, c):
			hasSpecial = true
		}
	}

	if !hasLower {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !hasUpper {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !hasDigit {
		errs = append(errs, "Password must contain at least one digit")
	}
	if !hasSpecial {
		errs = append(errs, "Password must contain at least one special character")
	}

	return errs
}
