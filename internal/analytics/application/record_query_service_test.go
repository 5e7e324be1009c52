package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/higo-analytics/api/internal/analytics/domain"
)

// fakeRecordRepository はポート越しに差し込むインメモリの読み取りフェイク。
type fakeRecordRepository struct {
	records       []domain.Record
	total         int64
	genderCounts  []domain.Bucket
	locationTypes []domain.Bucket
	interests     []domain.Bucket
	avgAge        float64
	topLocations  []domain.Bucket
	uniqueBrands  int64

	findErr  error
	countErr error

	lastFilter     RecordFilter
	lastPagination Pagination
}

func (f *fakeRecordRepository) Find(_ context.Context, filter RecordFilter, _ Sort, p Pagination) ([]domain.Record, error) {
	f.lastFilter = filter
	f.lastPagination = p
	return f.records, f.findErr
}

func (f *fakeRecordRepository) Count(_ context.Context, _ RecordFilter) (int64, error) {
	return f.total, f.countErr
}

func (f *fakeRecordRepository) CountFiltered(_ context.Context, _ StatsFilter) (int64, error) {
	return f.total, nil
}

func (f *fakeRecordRepository) GenderCounts(_ context.Context, _ StatsFilter) ([]domain.Bucket, error) {
	return f.genderCounts, nil
}

func (f *fakeRecordRepository) LocationTypeCounts(_ context.Context, _ StatsFilter) ([]domain.Bucket, error) {
	return f.locationTypes, nil
}

func (f *fakeRecordRepository) InterestCounts(_ context.Context, _ StatsFilter) ([]domain.Bucket, error) {
	return f.interests, nil
}

func (f *fakeRecordRepository) AverageAge(_ context.Context, _ StatsFilter) (float64, error) {
	return f.avgAge, nil
}

func (f *fakeRecordRepository) TopLocationNames(_ context.Context, _ StatsFilter, limit int) ([]domain.Bucket, error) {
	if limit < len(f.topLocations) {
		return f.topLocations[:limit], nil
	}
	return f.topLocations, nil
}

func (f *fakeRecordRepository) DistinctBrandCount(_ context.Context, _ StatsFilter) (int64, error) {
	return f.uniqueBrands, nil
}

func TestListRecordsTotalIndependentOfLimit(t *testing.T) {
	repo := &fakeRecordRepository{
		records: []domain.Record{{Name: "Aya"}, {Name: "Budi"}},
		total:   42,
	}
	service := NewRecordQueryService(repo)

	page, err := service.ListRecords(context.Background(), ListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)

	assert.Len(t, page.Records, 2)
	assert.Equal(t, int64(42), page.PageInfo.Total)
	assert.Equal(t, 21, page.PageInfo.TotalPages)
	assert.True(t, page.PageInfo.HasNext)
	assert.False(t, page.PageInfo.HasPrev)
}

func TestListRecordsEmptyStore(t *testing.T) {
	repo := &fakeRecordRepository{}
	service := NewRecordQueryService(repo)

	page, err := service.ListRecords(context.Background(), ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.NotNil(t, page.Records)
	assert.Empty(t, page.Records)
	assert.Equal(t, int64(0), page.PageInfo.Total)
	assert.Equal(t, 1, page.PageInfo.TotalPages)
	assert.False(t, page.PageInfo.HasNext)
	assert.False(t, page.PageInfo.HasPrev)
}

func TestListRecordsPropagatesCountError(t *testing.T) {
	repo := &fakeRecordRepository{countErr: errors.New("connection reset")}
	service := NewRecordQueryService(repo)

	_, err := service.ListRecords(context.Background(), ListQuery{Page: 1, Limit: 10})
	assert.Error(t, err)
}

func TestListRecordsResolvesPagination(t *testing.T) {
	repo := &fakeRecordRepository{}
	service := NewRecordQueryService(repo)

	_, err := service.ListRecords(context.Background(), ListQuery{Page: 4, Limit: 25})
	require.NoError(t, err)

	assert.Equal(t, 75, repo.lastPagination.Skip)
	assert.Equal(t, 25, repo.lastPagination.Limit)
}

func TestGenderStatsPercentages(t *testing.T) {
	repo := &fakeRecordRepository{
		genderCounts: []domain.Bucket{
			{Value: "Male", Count: 3},
			{Value: "Female", Count: 2},
		},
	}
	service := NewRecordQueryService(repo)

	stats, err := service.GenderStats(context.Background(), StatsFilter{})
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "Male", stats[0].Value)
	assert.Equal(t, int64(3), stats[0].Count)
	assert.InDelta(t, 60.0, stats[0].Percentage, 0.001)

	assert.Equal(t, "Female", stats[1].Value)
	assert.Equal(t, int64(2), stats[1].Count)
	assert.InDelta(t, 40.0, stats[1].Percentage, 0.001)
}

func TestGenderStatsPercentagesSumToHundred(t *testing.T) {
	repo := &fakeRecordRepository{
		genderCounts: []domain.Bucket{
			{Value: "Male", Count: 2},
			{Value: "Female", Count: 1},
		},
	}
	service := NewRecordQueryService(repo)

	stats, err := service.GenderStats(context.Background(), StatsFilter{})
	require.NoError(t, err)

	var sum float64
	for _, stat := range stats {
		sum += stat.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.1)
}

func TestGenderStatsEmptyFilteredSet(t *testing.T) {
	repo := &fakeRecordRepository{}
	service := NewRecordQueryService(repo)

	stats, err := service.GenderStats(context.Background(), StatsFilter{})
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestDashboardStatsComposite(t *testing.T) {
	repo := &fakeRecordRepository{
		total: 5,
		genderCounts: []domain.Bucket{
			{Value: "Male", Count: 3},
			{Value: "Female", Count: 2},
		},
		locationTypes: []domain.Bucket{{Value: "Urban", Count: 4}, {Value: "Sub Urban", Count: 1}},
		interests:     []domain.Bucket{{Value: "Social Media", Count: 5}},
		avgAge:        34.4,
		topLocations: []domain.Bucket{
			{Value: "A"}, {Value: "B"}, {Value: "C"}, {Value: "D"},
			{Value: "E"}, {Value: "F"}, {Value: "G"},
		},
		uniqueBrands: 3,
	}
	service := NewRecordQueryService(repo)

	stats, err := service.DashboardStats(context.Background(), StatsFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(5), stats.TotalRecords)
	assert.Equal(t, 34, stats.AvgAge)
	assert.Equal(t, int64(3), stats.UniqueDeviceCount)
	assert.Len(t, stats.TopLocationsByName, 6)
	require.Len(t, stats.GenderDistribution, 2)
	assert.InDelta(t, 60.0, stats.GenderDistribution[0].Percentage, 0.001)
	assert.Len(t, stats.LocationDistribution, 2)
	assert.Len(t, stats.InterestDistribution, 1)
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	repo := &fakeRecordRepository{}
	service := NewRecordQueryService(repo)

	stats, err := service.DashboardStats(context.Background(), StatsFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalRecords)
	assert.Equal(t, 0, stats.AvgAge)
	assert.NotNil(t, stats.GenderDistribution)
	assert.NotNil(t, stats.LocationDistribution)
	assert.NotNil(t, stats.InterestDistribution)
	assert.NotNil(t, stats.TopLocationsByName)
}
