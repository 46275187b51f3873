package statssvc_test

import (
	"context"
	"testing"

	"bookcatalog/model"
	bookrepo "bookcatalog/repository/book"
	statssvc "bookcatalog/service/stats"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	bookrepo.Repo
	overviewFn      func(ctx context.Context) (*model.OverviewStats, error)
	categoryStatsFn func(ctx context.Context) ([]model.CategoryStats, error)
}

func (m *repoMock) Overview(ctx context.Context) (*model.OverviewStats, error) {
	return m.overviewFn(ctx)
}
func (m *repoMock) CategoryStats(ctx context.Context) ([]model.CategoryStats, error) {
	return m.categoryStatsFn(ctx)
}

func TestOverview_RoundsAverage(t *testing.T) {
	m := &repoMock{
		overviewFn: func(ctx context.Context) (*model.OverviewStats, error) {
			return &model.OverviewStats{
				TotalBooks:   3,
				AveragePrice: 40.65666666,
				RatingDistribution: map[string]int64{
					"Five": 1, "Four": 1, "Three": 1,
				},
			}, nil
		},
	}
	s := statssvc.New(m)

	st, err := s.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), st.TotalBooks)
	require.Equal(t, 40.66, st.AveragePrice)
	require.Equal(t, int64(1), st.RatingDistribution["Five"])
}

func TestByCategory_RoundsAverages(t *testing.T) {
	m := &repoMock{
		categoryStatsFn: func(ctx context.Context) ([]model.CategoryStats, error) {
			return []model.CategoryStats{
				{Category: "Fiction", TotalBooks: 1, AveragePrice: 19.994},
				{Category: "Technology", TotalBooks: 2, AveragePrice: 50.99},
			}, nil
		},
	}
	s := statssvc.New(m)

	stats, err := s.ByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.Equal(t, 19.99, stats[0].AveragePrice)
	require.Equal(t, 50.99, stats[1].AveragePrice)
}
