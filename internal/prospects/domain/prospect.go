// Package domain holds the custodio prospect worklist rules: identity,
// deduplication and view filtering. Everything here is pure.
package domain

import (
	"strings"

	"custodios_crm/platform/phone"
)

// Prospect is one row of the custodio_prospects view. Optional columns are
// pointers so an absent value stays distinguishable from an empty one.
type Prospect struct {
	LeadID          *int64  `json:"lead_id"`
	ValidatedLeadID *int64  `json:"validated_lead_id"`
	LeadName        *string `json:"lead_name"`
	CustodioName    *string `json:"custodio_name"`
	LeadPhone       *string `json:"lead_phone"`
	PhoneNumberIntl *string `json:"phone_number_intl"`
	LeadEmail       *string `json:"lead_email"`
	LeadStatus      string  `json:"lead_status"`
	CallCount       *int    `json:"call_count"`
	Transcript      *string `json:"transcript"`
}

// SamePerson reports whether a and b identify the same custodio: equal lead
// id, equal validated lead id, a shared phone key across either phone field,
// or an equal non-empty email.
func SamePerson(a, b Prospect) bool {
	if equalID(a.LeadID, b.LeadID) || equalID(a.ValidatedLeadID, b.ValidatedLeadID) {
		return true
	}

	for _, pa := range a.phones() {
		for _, pb := range b.phones() {
			if phone.SameNumber(pa, pb) {
				return true
			}
		}
	}

	ea, eb := value(a.LeadEmail), value(b.LeadEmail)
	return ea != "" && ea == eb
}

// HasVAPIInteraction reports whether the voice automation ever called the prospect.
func (p Prospect) HasVAPIInteraction() bool {
	return p.CallCount != nil && *p.CallCount > 0
}

// Interviewed reports whether a transcript is attached.
func (p Prospect) Interviewed() bool {
	return value(p.Transcript) != ""
}

// DisplayName prefers the lead name and falls back to the custodio name.
func (p Prospect) DisplayName() string {
	if name := strings.TrimSpace(value(p.LeadName)); name != "" {
		return name
	}
	return strings.TrimSpace(value(p.CustodioName))
}

func (p Prospect) phones() []string {
	return []string{value(p.LeadPhone), value(p.PhoneNumberIntl)}
}

func equalID(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
