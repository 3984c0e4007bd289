package service

import (
	"context"
	"errors"
	"testing"

	"custodios_crm/internal/dashboard/repository"
	validationrepo "custodios_crm/internal/validation/repository"
	"custodios_crm/platform/logger"
)

type fakeRepo struct {
	status      []repository.Count
	stage       []repository.Count
	interaction repository.ProspectInteraction
	err         error
}

func (f fakeRepo) LeadsByStatus(context.Context) ([]repository.Count, error) { return f.status, f.err }
func (f fakeRepo) LeadsByStage(context.Context) ([]repository.Count, error)  { return f.stage, nil }
func (f fakeRepo) ProspectInteraction(context.Context) (repository.ProspectInteraction, error) {
	return f.interaction, nil
}

type fakeValidation struct {
	summary validationrepo.Summary
}

func (f fakeValidation) Summary(context.Context) (validationrepo.Summary, error) {
	return f.summary, nil
}

func TestSummaryCombinesAggregates(t *testing.T) {
	repo := fakeRepo{
		status:      []repository.Count{{Key: "Contacto Llamado", Total: 4}, {Key: "Nuevo", Total: 2}},
		stage:       []repository.Count{{Key: "Prospecto", Total: 6}},
		interaction: repository.ProspectInteraction{WithVAPI: 3, WithoutVAPI: 3},
	}
	val := fakeValidation{summary: validationrepo.Summary{Approved: 5, Rejected: 1, AverageDurationSeconds: 42.5}}

	resp, err := New(repo, val, logger.Discard()).Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if len(resp.LeadsByStatus) != 2 || resp.LeadsByStatus[0].Label != "Contacto llamado" {
		t.Fatalf("unexpected status entries %+v", resp.LeadsByStatus)
	}
	if resp.LeadsByStage[0].Total != 6 {
		t.Fatalf("unexpected stage entries %+v", resp.LeadsByStage)
	}
	if resp.Validation.Approved != 5 || resp.Validation.AverageDurationSeconds != 42.5 {
		t.Fatalf("unexpected validation stats %+v", resp.Validation)
	}
	if resp.Prospects.WithVAPI != 3 || resp.Prospects.WithoutVAPI != 3 {
		t.Fatalf("unexpected prospect stats %+v", resp.Prospects)
	}
}

func TestSummaryReturnsFirstError(t *testing.T) {
	boom := errors.New("db down")
	_, err := New(fakeRepo{err: boom}, fakeValidation{}, logger.Discard()).Summary(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}
