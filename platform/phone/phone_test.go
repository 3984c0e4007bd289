package phone

import (
	"encoding/json"
	"testing"
)

func TestNormalizeForComparison(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"555-123-4567", "5551234567"},
		{"+52 (555) 123-4567", "5551234567"},
		{"5551234567", "5551234567"},
		{"1234", "1234"},
		{"tel: none", ""},
	}

	for _, tc := range tests {
		if got := NormalizeForComparison(tc.in); got != tc.want {
			t.Errorf("NormalizeForComparison(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if NormalizeForComparison("555-123-4567") != NormalizeForComparison("+52 (555) 123-4567") {
		t.Fatal("local and international forms should share a comparison key")
	}
}

func TestSameNumberIgnoresEmptyKeys(t *testing.T) {
	if SameNumber("", "") {
		t.Fatal("two empty numbers must not be considered the same")
	}
	if SameNumber("n/a", "") {
		t.Fatal("digitless input must not match")
	}
	if !SameNumber("(555) 123 4567", "+525551234567") {
		t.Fatal("expected match on last ten digits")
	}
}

func TestFormatForDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", Unavailable},
		{"blank", "   ", Unavailable},
		{"ten digits", "5551234567", "(555) 123-4567"},
		{"ten digits with separators", "555.123.4567", "(555) 123-4567"},
		{"mexico country code", "525551234567", "+52 (555) 123-4567"},
		{"mexico with plus", "+52 555 123 4567", "+52 (555) 123-4567"},
		{"nanp country code", "15551234567", "+1 (555) 123-4567"},
		{"three digit country code", "5065551234567", "+506 (555) 123-4567"},
		{"short code unchanged", "911", "911"},
		{"four digits unchanged", "12-34", "12-34"},
		{"legacy half split", "5061234", "+506-1234"},
		{"legacy half split even", "123456", "+123-456"},
		{"placeholder text", NoNumber, NoNumber},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatForDisplay(tc.in); got != tc.want {
				t.Fatalf("FormatForDisplay(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestResolveCallLogNumberPriority(t *testing.T) {
	full := CallLogPhones{
		CustomerNumber: "5550000001",
		Metadata: map[string]any{
			"vapi_customer_number": "5550000002",
			"customer":             map[string]any{"number": "5550000003"},
		},
		Direction:            DirectionInbound,
		CallerPhoneNumber:    "5550000004",
		PhoneNumber:          "5550000005",
		AssistantPhoneNumber: "5550000006",
	}

	if got := ResolveCallLogNumber(full); got != "5550000001" {
		t.Fatalf("customer_number should win, got %q", got)
	}

	c := full
	c.CustomerNumber = ""
	if got := ResolveCallLogNumber(c); got != "5550000002" {
		t.Fatalf("metadata.vapi_customer_number should be second, got %q", got)
	}

	c.Metadata = map[string]any{"customer": map[string]any{"number": "5550000003"}}
	if got := ResolveCallLogNumber(c); got != "5550000003" {
		t.Fatalf("metadata.customer.number should be third, got %q", got)
	}

	c.Metadata = nil
	if got := ResolveCallLogNumber(c); got != "5550000004" {
		t.Fatalf("inbound call should prefer caller number, got %q", got)
	}

	c.Direction = DirectionOutbound
	if got := ResolveCallLogNumber(c); got != "5550000005" {
		t.Fatalf("outbound call should prefer phone_number, got %q", got)
	}

	c.Direction = ""
	if got := ResolveCallLogNumber(c); got != "5550000004" {
		t.Fatalf("unknown direction should fall back to caller number, got %q", got)
	}

	c.CallerPhoneNumber = ""
	c.PhoneNumber = ""
	if got := ResolveCallLogNumber(c); got != "5550000006" {
		t.Fatalf("assistant number should be the last candidate, got %q", got)
	}

	if got := ResolveCallLogNumber(CallLogPhones{Metadata: map[string]any{"customer": "oops"}}); got != NoNumber {
		t.Fatalf("expected %q, got %q", NoNumber, got)
	}
}

func TestResolveCallLogNumberNumericMetadata(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		want     string
	}{
		{"decoded json number", map[string]any{"vapi_customer_number": float64(525512345678)}, "525512345678"},
		{"nested json number", map[string]any{"customer": map[string]any{"number": float64(5550000003)}}, "5550000003"},
		{"json.Number", map[string]any{"vapi_customer_number": json.Number("5550000007")}, "5550000007"},
		{"int", map[string]any{"vapi_customer_number": 5550000008}, "5550000008"},
		{"bool is ignored", map[string]any{"vapi_customer_number": true}, NoNumber},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveCallLogNumber(CallLogPhones{Metadata: tc.metadata}); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDisplayCallLogNumber(t *testing.T) {
	got := DisplayCallLogNumber(CallLogPhones{Metadata: map[string]any{"vapi_customer_number": "+525551234567"}})
	if got != "+52 (555) 123-4567" {
		t.Fatalf("unexpected display %q", got)
	}
	if got := DisplayCallLogNumber(CallLogPhones{}); got != NoNumber {
		t.Fatalf("expected placeholder to pass through unchanged, got %q", got)
	}
}

func TestNormalizeE164(t *testing.T) {
	if got := NormalizeE164("+52 55 1234 5678", "MX"); got != "+525512345678" {
		t.Fatalf("unexpected E.164 form %q", got)
	}
	if got := NormalizeE164("  not a phone ", "MX"); got != "not a phone" {
		t.Fatalf("expected trimmed input fallback, got %q", got)
	}
	if got := NormalizeE164("", "MX"); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
