package transport

import "time"

type CreateLeadRequest struct {
	Nombre   string  `json:"nombre" validate:"required,notblank,max=200"`
	Empresa  string  `json:"empresa" validate:"max=200"`
	Email    string  `json:"email" validate:"required_without=Telefono,omitempty,email,max=254"`
	Telefono string  `json:"telefono" validate:"required_without=Email,omitempty,max=40"`
	Valor    float64 `json:"valor" validate:"gte=0"`
	Fuente   string  `json:"fuente" validate:"max=50"`
}

type UpdateStatusRequest struct {
	Estado string `json:"estado" validate:"required,notblank,max=100"`
}

type UpdateStageRequest struct {
	Etapa string `json:"etapa" validate:"required,notblank"`
}

type CallOutcomeRequest struct {
	Outcome string `json:"outcome" validate:"required,notblank"`
}

type ListLeadsRequest struct {
	Estado string `form:"estado"`
	Etapa  string `form:"etapa"`
	Search string `form:"q"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=1000"`
}

type LeadResponse struct {
	ID              int64     `json:"id"`
	Nombre          string    `json:"nombre"`
	Empresa         string    `json:"empresa"`
	Contacto        string    `json:"contacto"`
	Email           *string   `json:"email"`
	Telefono        *string   `json:"telefono"`
	TelefonoDisplay string    `json:"telefonoDisplay"`
	Estado          string    `json:"estado"`
	EstadoLabel     string    `json:"estadoLabel"`
	Etapa           string    `json:"etapa"`
	FechaCreacion   time.Time `json:"fechaCreacion"`
	Valor           float64   `json:"valor"`
	Fuente          string    `json:"fuente"`
	CallCount       int       `json:"callCount"`
}

type CreateLeadResponse struct {
	Lead      LeadResponse `json:"lead"`
	Duplicate bool         `json:"duplicate"`
}

type BoardColumn struct {
	Etapa string         `json:"etapa"`
	Leads []LeadResponse `json:"leads"`
}

type BoardResponse struct {
	Columns []BoardColumn `json:"columns"`
}
