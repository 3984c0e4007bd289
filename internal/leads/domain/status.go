package domain

import "strings"

// LeadStatus is the funnel status stored in leads.estado and mirrored as
// lead_status on the prospect view. Persistence keeps free text, so values
// outside the known set survive a round trip.
type LeadStatus string

const (
	StatusNuevo           LeadStatus = "Nuevo"
	StatusContactado      LeadStatus = "Contactado"
	StatusContactoLlamado LeadStatus = "Contacto Llamado"
	StatusValidado        LeadStatus = "Validado"
	StatusAprobado        LeadStatus = "Aprobado"
	StatusRechazado       LeadStatus = "Rechazado"
)

// Worklist filter values that are not statuses.
const (
	FilterTodos   = "todos"
	FilterConVAPI = "con_vapi"
	FilterSinVAPI = "sin_vapi"
)

var statusLabels = map[LeadStatus]string{
	StatusNuevo:           "Nuevo",
	StatusContactado:      "Contactado",
	StatusContactoLlamado: "Contacto llamado",
	StatusValidado:        "Validado",
	StatusAprobado:        "Aprobado",
	StatusRechazado:       "Rechazado",
}

// Statuses past which a call outcome must not move the lead back.
var closedStatuses = map[LeadStatus]struct{}{
	StatusValidado:  {},
	StatusAprobado:  {},
	StatusRechazado: {},
}

// ParseLeadStatus maps persisted text to a LeadStatus. It never fails:
// unknown text is kept as-is after trimming.
func ParseLeadStatus(raw string) LeadStatus {
	trimmed := strings.TrimSpace(raw)
	for status := range statusLabels {
		if strings.EqualFold(string(status), trimmed) {
			return status
		}
	}
	return LeadStatus(trimmed)
}

// IsKnown reports whether s is one of the statuses the workflow acts on.
func (s LeadStatus) IsKnown() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label, falling back to the raw text.
func (s LeadStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s LeadStatus) String() string { return string(s) }

// IsClosed reports whether the lead already left the calling stage.
func (s LeadStatus) IsClosed() bool {
	_, ok := closedStatuses[s]
	return ok
}

// FilterOption is a selectable value of the worklist status filter.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StatusFilterOptions lists the worklist status filter values in display order.
func StatusFilterOptions() []FilterOption {
	return []FilterOption{
		{Value: string(StatusContactoLlamado), Label: StatusContactoLlamado.Label()},
		{Value: FilterTodos, Label: "Todos"},
		{Value: FilterConVAPI, Label: "Con interacción VAPI"},
		{Value: FilterSinVAPI, Label: "Sin interacción VAPI"},
		{Value: string(StatusValidado), Label: StatusValidado.Label()},
	}
}
