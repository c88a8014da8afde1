package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	sellerNameRe = regexp.MustCompile(`^[آ-ی\s]{5,50}$`)
	phoneRe      = regexp.MustCompile(`^09\d{9}$`)
)

// digitGlyphs maps Persian and Arabic-Indic numerals to ASCII.
var digitGlyphs = map[rune]rune{
	'۰': '0', '۱': '1', '۲': '2', '۳': '3', '۴': '4',
	'۵': '5', '۶': '6', '۷': '7', '۸': '8', '۹': '9',
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
}

// NormalizeDigits translates non-ASCII numeral glyphs to ASCII digits and
// trims surrounding whitespace. Users routinely type phone numbers, discounts
// and OTP codes with a Persian keyboard layout.
func NormalizeDigits(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if d, ok := digitGlyphs[r]; ok {
			return d
		}
		return r
	}, s)
}

// ValidSellerName reports whether name is a Persian full name:
// Persian letters and whitespace only, 5 to 50 characters after trimming.
func ValidSellerName(name string) bool {
	return sellerNameRe.MatchString(strings.TrimSpace(name))
}

// ValidPhone reports whether number is a local mobile number (09xxxxxxxxx).
// The input must already be digit-normalized.
func ValidPhone(number string) bool {
	return phoneRe.MatchString(number)
}

// ValidCodeShape reports whether code is an acceptable referral code string:
// at least 5 characters, entirely ASCII letters or entirely ASCII digits.
// Mixed letter/digit codes are rejected.
func ValidCodeShape(code string) bool {
	if utf8.RuneCountInString(code) < 5 {
		return false
	}
	letters, digits := true, true
	for _, r := range code {
		if r < 'A' || (r > 'Z' && r < 'a') || r > 'z' {
			letters = false
		}
		if r < '0' || r > '9' {
			digits = false
		}
	}
	return letters || digits
}
