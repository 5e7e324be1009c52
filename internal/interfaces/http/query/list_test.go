package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/higo-analytics/api/internal/interfaces/http/common"
)

func TestParseListDefaults(t *testing.T) {
	got, err := ParseList(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 25, got.Limit)
	assert.Equal(t, "createdAt", got.Sort.Field)
	assert.True(t, got.Sort.Descending)
	assert.Empty(t, got.Filter.Gender)
	assert.Empty(t, got.Filter.Search)
}

func TestParseListFull(t *testing.T) {
	values := url.Values{
		"page":            {"3"},
		"limit":           {"50"},
		"gender":          {"Female"},
		"locationType":    {"Urban"},
		"digitalInterest": {"Podcast"},
		"brandDevice":     {"Samsung"},
		"search":          {"jakarta"},
		"sortBy":          {"age"},
		"sortOrder":       {"asc"},
	}

	got, err := ParseList(values)
	require.NoError(t, err)

	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 50, got.Limit)
	assert.Equal(t, "Female", got.Filter.Gender)
	assert.Equal(t, "Urban", got.Filter.LocationType)
	assert.Equal(t, "Podcast", got.Filter.DigitalInterest)
	assert.Equal(t, "Samsung", got.Filter.BrandDevice)
	assert.Equal(t, "jakarta", got.Filter.Search)
	assert.Equal(t, "age", got.Sort.Field)
	assert.False(t, got.Sort.Descending)
}

func TestParseListRejections(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{name: "non-numeric page", values: url.Values{"page": {"abc"}}},
		{name: "zero page", values: url.Values{"page": {"0"}}},
		{name: "negative page", values: url.Values{"page": {"-1"}}},
		{name: "non-numeric limit", values: url.Values{"limit": {"ten"}}},
		{name: "zero limit", values: url.Values{"limit": {"0"}}},
		{name: "limit above maximum", values: url.Values{"limit": {"101"}}},
		{name: "unknown gender", values: url.Values{"gender": {"Other"}}},
		{name: "lowercase gender", values: url.Values{"gender": {"male"}}},
		{name: "unknown sort key", values: url.Values{"sortBy": {"email"}}},
		{name: "unknown sort order", values: url.Values{"sortOrder": {"up"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseList(tt.values)
			require.Error(t, err)
			assert.Equal(t, 400, common.StatusOf(err))
		})
	}
}

func TestParseListLimitBoundary(t *testing.T) {
	got, err := ParseList(url.Values{"limit": {"100"}})
	require.NoError(t, err)
	assert.Equal(t, 100, got.Limit)

	_, err = ParseList(url.Values{"limit": {"101"}})
	assert.Error(t, err)
}

func TestParseListNoPartialDefaults(t *testing.T) {
	// 1 項目でも不正ならクエリ全体を拒否する。
	values := url.Values{
		"page":   {"2"},
		"gender": {"Unknown"},
	}
	_, err := ParseList(values)
	assert.Error(t, err)
}
