package service

import (
	"context"

	"grcwalk/internal/query"
)

func (s *Service) Dashboard(ctx context.Context) (query.Dashboard, error) {
	var in query.DashboardInput
	var err error

	if in.Risks, err = s.repo.Risks().List(ctx); err != nil {
		return query.Dashboard{}, err
	}
	if in.Controls, err = s.repo.Controls().List(ctx); err != nil {
		return query.Dashboard{}, err
	}
	if in.Factors, err = s.repo.RiskFactors().List(ctx); err != nil {
		return query.Dashboard{}, err
	}
	if in.Consequences, err = s.repo.Consequences().List(ctx); err != nil {
		return query.Dashboard{}, err
	}
	return query.BuildDashboard(in), nil
}

func (s *Service) Heatmap(ctx context.Context) ([]query.HeatmapCell, error) {
	risks, err := s.repo.Risks().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Heatmap(risks), nil
}
