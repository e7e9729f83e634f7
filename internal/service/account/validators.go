package account

import (
	"strings"
	"unicode/utf8"
)

const minPasswordLength = 6

func isValidEmail(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" || strings.ContainsAny(email, " \t") {
		return false
	}
	return !strings.Contains(domain, "@") && strings.Contains(domain, ".")
}

func isValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= minPasswordLength
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
