package forms

import "unicode"

// MinPasswordLength is the floor enforced by the strength predicate.
const MinPasswordLength = 8

// PasswordStrength is the result of checking a candidate password against
// each rule independently, plus the confirmation match. Clients render one
// indicator per flag; submission is allowed only when all six are true.
type PasswordStrength struct {
	MinLength      bool `json:"min_length"`
	HasUppercase   bool `json:"has_uppercase"`
	HasLowercase   bool `json:"has_lowercase"`
	HasNumber      bool `json:"has_number"`
	HasSpecialChar bool `json:"has_special_char"`
	Matches        bool `json:"matches"`
}

// CheckPassword evaluates every strength rule against password and the
// confirmation. Pure function: no rule short-circuits another, so a caller
// always gets the full picture.
func CheckPassword(password, confirm string) PasswordStrength {
	s := PasswordStrength{
		MinLength: len(password) >= MinPasswordLength,
		Matches:   confirm != "" && password == confirm,
	}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			s.HasUppercase = true
		case unicode.IsLower(r):
			s.HasLowercase = true
		case unicode.IsDigit(r):
			s.HasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			s.HasSpecialChar = true
		}
	}
	return s
}

// Strong reports whether every rule passed.
func (s PasswordStrength) Strong() bool {
	return s.MinLength && s.HasUppercase && s.HasLowercase &&
		s.HasNumber && s.HasSpecialChar && s.Matches
}
