package helpers

import (
	"strconv"
	"strings"
)

var devanagariDigits = [10]rune{'०', '१', '२', '३', '४', '५', '६', '७', '८', '९'}

// ToDevanagari replaces the Latin digits of s with Devanagari digits.
func ToDevanagari(s string) string {
	var result strings.Builder
	for _, char := range s {
		if char >= '0' && char <= '9' {
			result.WriteRune(devanagariDigits[char-'0'])
		} else {
			result.WriteRune(char)
		}
	}
	return result.String()
}

// FormatNumber formats n in decimal, with Devanagari digits when unicode is set.
func FormatNumber(n int, unicode bool) string {
	s := strconv.Itoa(n)
	if unicode {
		return ToDevanagari(s)
	}
	return s
}

// FormatPadded formats n with at least two digits.
func FormatPadded(n int, unicode bool) string {
	s := strconv.Itoa(n)
	if n >= 0 && n < 10 {
		s = "0" + s
	}
	if unicode {
		return ToDevanagari(s)
	}
	return s
}

// NormalizeDigits converts Devanagari, Persian and Arabic-Indic numerals to Latin
func NormalizeDigits(input string) string {
	var result strings.Builder
	for _, char := range input {
		switch {
		case char >= '०' && char <= '९':
			result.WriteRune('0' + (char - '०'))
		case char >= '۰' && char <= '۹':
			result.WriteRune('0' + (char - '۰'))
		case char >= '٠' && char <= '٩':
			result.WriteRune('0' + (char - '٠'))
		default:
			result.WriteRune(char)
		}
	}
	return result.String()
}

// ParseInt parses a decimal integer after normalizing non-Latin digits
func ParseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(NormalizeDigits(s)))
}
