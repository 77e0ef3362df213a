package usecase

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// ValidateEmail checks contact email against an RFC-lite pattern.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone checks contact phone for exactly ten digits.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
