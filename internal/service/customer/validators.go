package customer

import "strings"

func isValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// isValidPhone - цифры с необязательным "+" в начале, пробелы и дефисы допустимы.
func isValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "+")

	digits := 0
	for _, char := range phone {
		switch {
		case char >= '0' && char <= '9':
			digits++
		case char == ' ' || char == '-' || char == '(' || char == ')':
		default:
			return false
		}
	}
	return digits >= 8 && digits <= 15
}
