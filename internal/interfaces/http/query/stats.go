package query

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sngm3741/higo-analytics/api/internal/analytics/application"
)

// statsParams は /stats 系エンドポイントのクエリ文字列を写し取った検証対象。
type statsParams struct {
	Gender          string `query:"gender" validate:"omitempty,oneof=Male Female"`
	LocationType    string `query:"locationType"`
	DigitalInterest string `query:"digitalInterest"`
}

// 日付クエリとして受け付けるフォーマット。
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseStats は統計リクエストのクエリ文字列を検証済み StatsFilter へ変換する。
// dateFrom/dateTo は日付（両端含み）として解釈し、解釈できない文字列は拒否する。
func ParseStats(values url.Values) (application.StatsFilter, error) {
	var messages []string

	params := statsParams{
		Gender:          strings.TrimSpace(values.Get("gender")),
		LocationType:    strings.TrimSpace(values.Get("locationType")),
		DigitalInterest: strings.TrimSpace(values.Get("digitalInterest")),
	}

	dateFrom, err := parseDateParam(values, "dateFrom")
	if err != nil {
		messages = append(messages, err.Error())
	}
	dateTo, err := parseDateParam(values, "dateTo")
	if err != nil {
		messages = append(messages, err.Error())
	}

	messages = append(messages, checkStruct(&params)...)
	if len(messages) > 0 {
		return application.StatsFilter{}, validationError(messages)
	}

	return application.StatsFilter{
		Gender:          params.Gender,
		LocationType:    params.LocationType,
		DigitalInterest: params.DigitalInterest,
		DateFrom:        dateFrom,
		DateTo:          dateTo,
	}, nil
}

func parseDateParam(values url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD or RFC3339)", key)
}
