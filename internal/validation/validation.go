// Package validation содержит функции валидации входных данных.
package validation

import (
	"strings"
	"unicode"
)

// IsValidPincode проверяет почтовый индекс: шесть цифр, первая ненулевая.
func IsValidPincode(pincode string) bool {
	if len(pincode) != 6 {
		return false
	}
	for i, ch := range pincode {
		if !unicode.IsDigit(ch) {
			return false
		}
		if i == 0 && ch == '0' {
			return false
		}
	}
	return true
}

// IsValidPhone проверяет номер телефона: десять цифр,
// допускается префикс "+91" и пробелы между группами цифр.
func IsValidPhone(phone string) bool {
	phone = strings.TrimPrefix(phone, "+91")

	digits := 0
	for _, ch := range phone {
		if ch == ' ' {
			continue
		}
		if !unicode.IsDigit(ch) {
			return false
		}
		digits++
	}

	return digits == 10
}

// IsValidRating проверяет оценку отзыва: целое число от 1 до 5.
func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
