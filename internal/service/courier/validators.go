package courier

import (
	"math"
	"strings"
)

func isValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if strings.ContainsAny(email, " \t") {
		return false
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	if strings.Contains(domain, "@") {
		return false
	}
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

func isValidPosition(latitude, longitude float64) bool {
	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return false
	}
	return latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}

// normalizeEmail - email сравнивается без учета регистра.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
