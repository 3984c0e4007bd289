package phone

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NoNumber is returned when no candidate field carries a number.
const NoNumber = "Sin número"

// Call directions as reported by the voice provider.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// CallLogPhones holds every field of a call log that may carry the
// customer's number.
type CallLogPhones struct {
	CustomerNumber       string
	Metadata             map[string]any
	Direction            string
	CallerPhoneNumber    string
	PhoneNumber          string
	AssistantPhoneNumber string
}

// ResolveCallLogNumber picks the customer's number using a fixed priority and
// stops at the first non-blank candidate.
func ResolveCallLogNumber(c CallLogPhones) string {
	candidates := []string{
		c.CustomerNumber,
		metadataString(c.Metadata, "vapi_customer_number"),
		metadataString(c.Metadata, "customer", "number"),
	}
	switch c.Direction {
	case DirectionInbound:
		candidates = append(candidates, c.CallerPhoneNumber)
	case DirectionOutbound:
		candidates = append(candidates, c.PhoneNumber)
	}
	candidates = append(candidates, c.CallerPhoneNumber, c.PhoneNumber, c.AssistantPhoneNumber)

	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return NoNumber
}

// DisplayCallLogNumber resolves and formats the call log number.
func DisplayCallLogNumber(c CallLogPhones) string {
	return FormatForDisplay(ResolveCallLogNumber(c))
}

// metadataString walks nested maps along path and returns the leaf as text.
// JSON decoding turns unquoted numbers into float64, so numeric leaves are
// formatted without exponent. Other leaves and missing keys yield "".
func metadataString(metadata map[string]any, path ...string) string {
	var current any = metadata
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = m[key]
	}
	switch v := current.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}
