// Package phone provides phone number utilities: comparison keys, display
// formatting and E.164 normalisation.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when a number carries no country code.
const DefaultRegion = "MX"

// comparisonDigits is the length of the national significant number used as
// the equality key for Mexican and NANP numbers alike.
const comparisonDigits = 10

// Digits strips everything but ASCII digits.
func Digits(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		if c := input[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// NormalizeForComparison returns the last ten digits of input, or every digit
// when there are fewer. Empty input yields "". The key is only meant for
// equality checks, never for display.
func NormalizeForComparison(input string) string {
	digits := Digits(input)
	if len(digits) > comparisonDigits {
		return digits[len(digits)-comparisonDigits:]
	}
	return digits
}

// SameNumber reports whether a and b share a non-empty comparison key.
func SameNumber(a, b string) bool {
	ka := NormalizeForComparison(a)
	return ka != "" && ka == NormalizeForComparison(b)
}

// NormalizeE164 formats a phone number to E.164 using region for numbers
// without a country code. If parsing fails, it returns the trimmed input.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}
	if region == "" {
		region = DefaultRegion
	}

	number, err := phonenumbers.Parse(trimmed, region)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
