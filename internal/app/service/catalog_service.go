package service

import (
	"context"
	"contest_catalog/internal/common"
	"contest_catalog/internal/domain/model"
	"contest_catalog/internal/domain/repository"
)

// CatalogService serves the stored contest and problem catalogs to
// downstream consumers.
type CatalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListContests(ctx context.Context) ([]model.Contest, error) {
	contests, err := s.store.GetContests(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list contests: %w", err)
	}
	return contests, nil
}

// ListProblems returns all problems, or only those of contestID when it is
// not empty. The store always scans the full table; filtering happens here.
func (s *CatalogService) ListProblems(ctx context.Context, contestID string) ([]model.Problem, error) {
	problems, err := s.store.GetProblems(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list problems: %w", err)
	}
	if contestID == "" {
		return problems, nil
	}
	return model.FilterByContest(problems, contestID), nil
}
