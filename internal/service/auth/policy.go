package auth

import (
	"unicode"
	"unicode/utf8"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// MinPasswordLength is the minimum number of characters in a new password.
const MinPasswordLength = 8

// MaxPasswordBytes is the longest input bcrypt accepts, counted in bytes.
const MaxPasswordBytes = 72

// ValidatePassword checks password against the password policy and returns a
// *domain.PasswordPolicyError naming every unmet rule, or nil.
func ValidatePassword(password string) error {
	var hasDigit, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	var unmet []domain.PasswordRule
	if utf8.RuneCountInString(password) < MinPasswordLength {
		unmet = append(unmet, domain.RuleMinLength)
	}
	if len(password) > MaxPasswordBytes {
		unmet = append(unmet, domain.RuleMaxBytes)
	}
	if !hasDigit {
		unmet = append(unmet, domain.RuleDigit)
	}
	if !hasUpper {
		unmet = append(unmet, domain.RuleUppercase)
	}

	if len(unmet) > 0 {
		return &domain.PasswordPolicyError{Unmet: unmet}
	}
	return nil
}

// checkPasswordBytes rejects passwords bcrypt cannot hash. Signup applies
// only this rule of the policy.
func checkPasswordBytes(password string) error {
	if len(password) > MaxPasswordBytes {
		return &domain.PasswordPolicyError{Unmet: []domain.PasswordRule{domain.RuleMaxBytes}}
	}
	return nil
}
