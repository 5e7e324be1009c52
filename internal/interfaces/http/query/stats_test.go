package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/higo-analytics/api/internal/interfaces/http/common"
)

func TestParseStatsEmpty(t *testing.T) {
	got, err := ParseStats(url.Values{})
	require.NoError(t, err)

	assert.Empty(t, got.Gender)
	assert.Empty(t, got.LocationType)
	assert.Empty(t, got.DigitalInterest)
	assert.Nil(t, got.DateFrom)
	assert.Nil(t, got.DateTo)
}

func TestParseStatsFilters(t *testing.T) {
	values := url.Values{
		"gender":          {"Male"},
		"locationType":    {"Urban"},
		"digitalInterest": {"Social Media"},
	}

	got, err := ParseStats(values)
	require.NoError(t, err)

	assert.Equal(t, "Male", got.Gender)
	assert.Equal(t, "Urban", got.LocationType)
	assert.Equal(t, "Social Media", got.DigitalInterest)
}

func TestParseStatsDateRange(t *testing.T) {
	values := url.Values{
		"dateFrom": {"2023-01-01"},
		"dateTo":   {"2023-12-31"},
	}

	got, err := ParseStats(values)
	require.NoError(t, err)
	require.NotNil(t, got.DateFrom)
	require.NotNil(t, got.DateTo)

	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), *got.DateFrom)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), *got.DateTo)
}

func TestParseStatsRFC3339Date(t *testing.T) {
	values := url.Values{"dateFrom": {"2023-06-15T08:30:00Z"}}

	got, err := ParseStats(values)
	require.NoError(t, err)
	require.NotNil(t, got.DateFrom)
	assert.Equal(t, time.Date(2023, 6, 15, 8, 30, 0, 0, time.UTC), *got.DateFrom)
}

func TestParseStatsRejections(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{name: "invalid dateFrom", values: url.Values{"dateFrom": {"01/02/2023"}}},
		{name: "invalid dateTo", values: url.Values{"dateTo": {"yesterday"}}},
		{name: "unknown gender", values: url.Values{"gender": {"All"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStats(tt.values)
			require.Error(t, err)
			assert.Equal(t, 400, common.StatusOf(err))
		})
	}
}
