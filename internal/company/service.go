package company

import (
	"context"
	"log/slog"
)

type ServiceAPI interface {
	ListCompanies(ctx context.Context) ([]*Company, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListCompanies(ctx context.Context) ([]*Company, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list companies", "error", err)
		return nil, err
	}

	companies := make([]*Company, len(rows))
	for i, row := range rows {
		companies[i] = FromDataModel(row)
	}
	return companies, nil
}
