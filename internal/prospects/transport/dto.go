package transport

import (
	leadsdomain "custodios_crm/internal/leads/domain"
	"custodios_crm/internal/prospects/domain"
)

// WorklistRequest carries the optional view overrides. Absent fields keep
// the default view.
type WorklistRequest struct {
	Status      *string `form:"status" validate:"omitempty,max=100"`
	Interviewed *bool   `form:"interviewed"`
	Query       *string `form:"q" validate:"omitempty,max=200"`
}

type ProspectResponse struct {
	domain.Prospect
	DisplayName  string `json:"display_name"`
	PhoneDisplay string `json:"phone_display"`
	StatusLabel  string `json:"status_label"`
}

type WorklistResponse struct {
	Filters   domain.FilterConfig `json:"filters"`
	Total     int                 `json:"total"`
	Unique    int                 `json:"unique"`
	Prospects []ProspectResponse  `json:"prospects"`
}

type FilterOptionsResponse struct {
	Default       domain.FilterConfig        `json:"default"`
	StatusOptions []leadsdomain.FilterOption `json:"status_options"`
}
