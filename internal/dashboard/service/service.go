package service

import (
	"context"

	"custodios_crm/internal/dashboard/repository"
	"custodios_crm/internal/dashboard/transport"
	leadsdomain "custodios_crm/internal/leads/domain"
	validationrepo "custodios_crm/internal/validation/repository"
	"custodios_crm/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Repository reads lead and prospect aggregates.
type Repository interface {
	LeadsByStatus(ctx context.Context) ([]repository.Count, error)
	LeadsByStage(ctx context.Context) ([]repository.Count, error)
	ProspectInteraction(ctx context.Context) (repository.ProspectInteraction, error)
}

// ValidationStats reads validation outcome aggregates.
type ValidationStats interface {
	Summary(ctx context.Context) (validationrepo.Summary, error)
}

type Service struct {
	repo       Repository
	validation ValidationStats
	log        *logger.Logger
}

func New(repo Repository, validation ValidationStats, log *logger.Logger) *Service {
	return &Service{repo: repo, validation: validation, log: log}
}

// Summary runs the four aggregate queries concurrently. The first failure
// cancels the rest.
func (s *Service) Summary(ctx context.Context) (transport.SummaryResponse, error) {
	var (
		byStatus    []repository.Count
		byStage     []repository.Count
		validation  validationrepo.Summary
		interaction repository.ProspectInteraction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byStatus, err = s.repo.LeadsByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		byStage, err = s.repo.LeadsByStage(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		validation, err = s.validation.Summary(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		interaction, err = s.repo.ProspectInteraction(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.WithContext(ctx).DatabaseError("dashboard_summary", err)
		return transport.SummaryResponse{}, err
	}

	return transport.SummaryResponse{
		LeadsByStatus: toEntries(byStatus, func(key string) string {
			return leadsdomain.ParseLeadStatus(key).Label()
		}),
		LeadsByStage: toEntries(byStage, func(key string) string { return key }),
		Validation: transport.ValidationStats{
			Approved:               validation.Approved,
			Rejected:               validation.Rejected,
			AverageDurationSeconds: validation.AverageDurationSeconds,
		},
		Prospects: transport.ProspectStats{
			WithVAPI:    interaction.WithVAPI,
			WithoutVAPI: interaction.WithoutVAPI,
		},
	}, nil
}

func toEntries(counts []repository.Count, label func(string) string) []transport.CountEntry {
	out := make([]transport.CountEntry, 0, len(counts))
	for _, c := range counts {
		out = append(out, transport.CountEntry{Key: c.Key, Label: label(c.Key), Total: c.Total})
	}
	return out
}
