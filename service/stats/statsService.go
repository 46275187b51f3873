package statssvc

import (
	"context"
	"math"

	"bookcatalog/model"
	bookrepo "bookcatalog/repository/book"
)

type Service interface {
	Overview(ctx context.Context) (*model.OverviewStats, error)
	ByCategory(ctx context.Context) ([]model.CategoryStats, error)
}

type service struct{ r bookrepo.Repo }

func New(r bookrepo.Repo) Service { return &service{r: r} }

func (s *service) Overview(ctx context.Context) (*model.OverviewStats, error) {
	st, err := s.r.Overview(ctx)
	if err != nil {
		return nil, err
	}
	st.AveragePrice = round2(st.AveragePrice)
	return st, nil
}

func (s *service) ByCategory(ctx context.Context) ([]model.CategoryStats, error) {
	stats, err := s.r.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stats {
		stats[i].AveragePrice = round2(stats[i].AveragePrice)
	}
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
