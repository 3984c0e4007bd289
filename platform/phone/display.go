package phone

import "strings"

// Unavailable is shown wherever a number is missing.
const Unavailable = "No disponible"

const mexicoCountryCode = "52"

// FormatForDisplay renders a raw phone string for humans. It never fails:
//
//	""             -> "No disponible"
//	10 digits      -> (AAA) BBB-CCCC
//	52 + 10 digits -> +52 (AAA) BBB-CCCC
//	>10 digits     -> +<leading digits> (AAA) BBB-CCCC
//	<=4 digits     -> input unchanged
//	5-9 digits     -> +<first half>-<second half>
func FormatForDisplay(input string) string {
	if strings.TrimSpace(input) == "" {
		return Unavailable
	}

	digits := Digits(input)
	switch n := len(digits); {
	case n == comparisonDigits:
		return national(digits)
	case n > comparisonDigits:
		if strings.HasPrefix(digits, mexicoCountryCode) && n == len(mexicoCountryCode)+comparisonDigits {
			return "+" + mexicoCountryCode + " " + national(digits[len(mexicoCountryCode):])
		}
		split := n - comparisonDigits
		return "+" + digits[:split] + " " + national(digits[split:])
	case n <= 4:
		return input
	default:
		// Legacy half split kept for compatibility with stored call logs; it
		// does not produce a meaningful number. Pending product review.
		mid := n / 2
		return "+" + digits[:mid] + "-" + digits[mid:]
	}
}

func national(digits string) string {
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}
