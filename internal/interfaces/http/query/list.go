package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sngm3741/higo-analytics/api/internal/analytics/application"
)

// listParams は /records のクエリ文字列を写し取った検証対象。
type listParams struct {
	Page            int    `query:"page" validate:"min=1"`
	Limit           int    `query:"limit" validate:"min=1,max=100"`
	Gender          string `query:"gender" validate:"omitempty,oneof=Male Female"`
	LocationType    string `query:"locationType"`
	DigitalInterest string `query:"digitalInterest"`
	BrandDevice     string `query:"brandDevice"`
	Search          string `query:"search"`
	SortBy          string `query:"sortBy" validate:"oneof=date name age createdAt"`
	SortOrder       string `query:"sortOrder" validate:"oneof=asc desc"`
}

// ParseList は一覧リクエストのクエリ文字列を検証済み ListQuery へ変換する。
// 欠落項目には既定値（page=1, limit=25, sortBy=createdAt, sortOrder=desc）を
// 適用し、数値化できない・範囲外・列挙外の値は 400 相当のエラーで拒否する。
func ParseList(values url.Values) (application.ListQuery, error) {
	var coercionErrs []string

	page, err := parseIntParam(values, "page", 1)
	if err != nil {
		coercionErrs = append(coercionErrs, err.Error())
	}
	limit, err := parseIntParam(values, "limit", 25)
	if err != nil {
		coercionErrs = append(coercionErrs, err.Error())
	}

	params := listParams{
		Page:            page,
		Limit:           limit,
		Gender:          strings.TrimSpace(values.Get("gender")),
		LocationType:    strings.TrimSpace(values.Get("locationType")),
		DigitalInterest: strings.TrimSpace(values.Get("digitalInterest")),
		BrandDevice:     strings.TrimSpace(values.Get("brandDevice")),
		Search:          strings.TrimSpace(values.Get("search")),
		SortBy:          defaulted(values, "sortBy", "createdAt"),
		SortOrder:       defaulted(values, "sortOrder", "desc"),
	}

	messages := coercionErrs
	if len(coercionErrs) == 0 {
		messages = append(messages, checkStruct(&params)...)
	}
	if len(messages) > 0 {
		return application.ListQuery{}, validationError(messages)
	}

	return application.ListQuery{
		Filter: application.RecordFilter{
			Gender:          params.Gender,
			LocationType:    params.LocationType,
			DigitalInterest: params.DigitalInterest,
			BrandDevice:     params.BrandDevice,
			Search:          params.Search,
		},
		Sort: application.Sort{
			Field:      params.SortBy,
			Descending: params.SortOrder == "desc",
		},
		Page:  params.Page,
		Limit: params.Limit,
	}, nil
}

// parseIntParam は整数クエリを既定値付きで数値化する。数値化の失敗のみを
// ここで扱い、範囲の検証はタグ側に委ねる。
func parseIntParam(values url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return parsed, nil
}

func defaulted(values url.Values, key, fallback string) string {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback
	}
	return raw
}
