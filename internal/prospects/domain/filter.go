package domain

import (
	"strings"

	leadsdomain "custodios_crm/internal/leads/domain"
)

// FilterConfig is the worklist view state. It is a value: change it through
// Reduce rather than by mutating a shared copy.
type FilterConfig struct {
	StatusFilter        string `json:"status_filter"`
	ShowOnlyInterviewed bool   `json:"show_only_interviewed"`
	SearchQuery         string `json:"search_query"`
}

// DefaultFilterConfig is the initial view: called leads, all of them, no search.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		StatusFilter:        string(leadsdomain.StatusContactoLlamado),
		ShowOnlyInterviewed: false,
		SearchQuery:         "",
	}
}

// Action is a change to a FilterConfig.
type Action interface {
	apply(FilterConfig) FilterConfig
}

// SetStatusFilter replaces the status filter.
type SetStatusFilter struct{ Value string }

// SetShowOnlyInterviewed toggles the transcript requirement.
type SetShowOnlyInterviewed struct{ Value bool }

// SetSearch replaces the free-text query.
type SetSearch struct{ Query string }

// Reset restores DefaultFilterConfig.
type Reset struct{}

func (a SetStatusFilter) apply(c FilterConfig) FilterConfig {
	c.StatusFilter = a.Value
	return c
}

func (a SetShowOnlyInterviewed) apply(c FilterConfig) FilterConfig {
	c.ShowOnlyInterviewed = a.Value
	return c
}

func (a SetSearch) apply(c FilterConfig) FilterConfig {
	c.SearchQuery = a.Query
	return c
}

func (Reset) apply(FilterConfig) FilterConfig {
	return DefaultFilterConfig()
}

// Reduce returns config with action applied. A nil action returns config.
func Reduce(config FilterConfig, action Action) FilterConfig {
	if action == nil {
		return config
	}
	return action.apply(config)
}

// Filter applies, in order: the VAPI interaction filter, the Validado
// exclusion, the interviewed-only rule and the free-text search. The input
// order is preserved and the input slice is not modified.
func Filter(prospects []Prospect, config FilterConfig) []Prospect {
	query := strings.ToLower(strings.TrimSpace(config.SearchQuery))
	showValidated := config.StatusFilter == string(leadsdomain.StatusValidado)

	out := make([]Prospect, 0, len(prospects))
	for _, p := range prospects {
		if !matchesInteraction(p, config.StatusFilter) {
			continue
		}
		if !showValidated && p.LeadStatus == string(leadsdomain.StatusValidado) {
			continue
		}
		if config.ShowOnlyInterviewed && !p.Interviewed() {
			continue
		}
		if !matchesSearch(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesInteraction(p Prospect, statusFilter string) bool {
	switch statusFilter {
	case leadsdomain.FilterConVAPI:
		return p.HasVAPIInteraction()
	case leadsdomain.FilterSinVAPI:
		return !p.HasVAPIInteraction()
	default:
		return true
	}
}

func matchesSearch(p Prospect, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range []*string{p.LeadName, p.CustodioName, p.LeadEmail, p.LeadPhone, p.PhoneNumberIntl} {
		if strings.Contains(strings.ToLower(value(field)), query) {
			return true
		}
	}
	return false
}
