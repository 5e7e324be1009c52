package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sngm3741/higo-analytics/api/internal/analytics/application"
)

func TestBuildListFilterEmpty(t *testing.T) {
	got := buildListFilter(application.RecordFilter{})
	assert.Empty(t, got)
}

func TestBuildListFilterEquality(t *testing.T) {
	got := buildListFilter(application.RecordFilter{
		Gender:          "Female",
		LocationType:    "Urban",
		DigitalInterest: "Podcast",
		BrandDevice:     "Samsung",
	})

	assert.Equal(t, bson.M{
		"gender":          "Female",
		"locationType":    "Urban",
		"digitalInterest": "Podcast",
		"brandDevice":     "Samsung",
	}, got)
}

func TestBuildListFilterTextSearch(t *testing.T) {
	got := buildListFilter(application.RecordFilter{Search: "  jakarta  "})

	require.Contains(t, got, "$text")
	assert.Equal(t, bson.M{"$search": "jakarta"}, got["$text"])
	assert.Len(t, got, 1)
}

func TestBuildListFilterBlankSearchIgnored(t *testing.T) {
	got := buildListFilter(application.RecordFilter{Search: "   "})
	assert.NotContains(t, got, "$text")
}

func TestBuildBaseMatch(t *testing.T) {
	got := buildBaseMatch(application.StatsFilter{
		Gender:       "Male",
		LocationType: "Sub Urban",
	})

	assert.Equal(t, bson.M{
		"gender":       "Male",
		"locationType": "Sub Urban",
	}, got)
}

func TestBuildBaseMatchIgnoresDates(t *testing.T) {
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	got := buildBaseMatch(application.StatsFilter{Gender: "Female", DateFrom: &from})

	assert.Equal(t, bson.M{"gender": "Female"}, got)
}

func TestAddDateRange(t *testing.T) {
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	match := bson.M{}
	addDateRange(match, application.StatsFilter{DateFrom: &from, DateTo: &to})

	assert.Equal(t, bson.M{"$gte": from, "$lte": to}, match["date"])
}

func TestAddDateRangeOpenEnded(t *testing.T) {
	from := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	match := bson.M{}
	addDateRange(match, application.StatsFilter{DateFrom: &from})

	require.Contains(t, match, "date")
	dateRange, ok := match["date"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, from, dateRange["$gte"])
	assert.NotContains(t, dateRange, "$lte")
}

func TestAddDateRangeNoop(t *testing.T) {
	match := bson.M{"gender": "Male"}
	addDateRange(match, application.StatsFilter{})
	assert.NotContains(t, match, "date")
}

func TestBuildSort(t *testing.T) {
	tests := []struct {
		name string
		sort application.Sort
		want bson.D
	}{
		{name: "default field descending", sort: application.Sort{Descending: true}, want: bson.D{{Key: "createdAt", Value: -1}}},
		{name: "age ascending", sort: application.Sort{Field: "age"}, want: bson.D{{Key: "age", Value: 1}}},
		{name: "date descending", sort: application.Sort{Field: "date", Descending: true}, want: bson.D{{Key: "date", Value: -1}}},
		{name: "name ascending", sort: application.Sort{Field: "name"}, want: bson.D{{Key: "name", Value: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildSort(tt.sort))
		})
	}
}
