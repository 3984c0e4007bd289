package transport

type CountEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Total int    `json:"total"`
}

type ValidationStats struct {
	Approved               int     `json:"approved"`
	Rejected               int     `json:"rejected"`
	AverageDurationSeconds float64 `json:"averageDurationSeconds"`
}

type ProspectStats struct {
	WithVAPI    int `json:"withVapi"`
	WithoutVAPI int `json:"withoutVapi"`
}

type SummaryResponse struct {
	LeadsByStatus []CountEntry    `json:"leadsByStatus"`
	LeadsByStage  []CountEntry    `json:"leadsByStage"`
	Validation    ValidationStats `json:"validation"`
	Prospects     ProspectStats   `json:"prospects"`
}
