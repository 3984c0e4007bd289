package domain

import (
	"fmt"
	"strings"
)

// Stage is the kanban column of a lead. Stages are a label space separate
// from LeadStatus and carry no ordering: a card may move to any column.
type Stage string

const (
	StageProspecto   Stage = "Prospecto"
	StageContactado  Stage = "Contactado"
	StageNegociacion Stage = "Negociación"
	StageGanado      Stage = "Ganado"
	StagePerdido     Stage = "Perdido"
)

var boardColumns = []Stage{
	StageProspecto,
	StageContactado,
	StageNegociacion,
	StageGanado,
	StagePerdido,
}

// BoardColumns returns the stages in column order.
func BoardColumns() []Stage {
	out := make([]Stage, len(boardColumns))
	copy(out, boardColumns)
	return out
}

// ParseStage accepts a known column name, ignoring case and the accent on
// Negociación.
func ParseStage(raw string) (Stage, error) {
	trimmed := strings.TrimSpace(raw)
	for _, stage := range boardColumns {
		if strings.EqualFold(string(stage), trimmed) {
			return stage, nil
		}
	}
	if strings.EqualFold(trimmed, "Negociacion") {
		return StageNegociacion, nil
	}
	return "", fmt.Errorf("unknown stage %q", raw)
}

func (s Stage) String() string { return string(s) }
