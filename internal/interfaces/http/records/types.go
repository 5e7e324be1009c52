package records

import (
	"time"

	"github.com/sngm3741/higo-analytics/api/internal/analytics/application"
	"github.com/sngm3741/higo-analytics/api/internal/analytics/domain"
)

type recordResponse struct {
	ID              string    `json:"_id"`
	Number          int       `json:"number"`
	LocationName    string    `json:"locationName"`
	Date            time.Time `json:"date"`
	LoginHour       string    `json:"loginHour"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	BrandDevice     string    `json:"brandDevice"`
	DigitalInterest string    `json:"digitalInterest"`
	LocationType    string    `json:"locationType"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type paginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type listResponse struct {
	Data       []recordResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// genderStatResponse は集計キーを _id として返す。グルーピング結果の
// キー名はダッシュボード側がそのまま描画に使う。
type genderStatResponse struct {
	Value      string  `json:"_id"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type bucketResponse struct {
	Value string `json:"_id"`
	Count int64  `json:"count"`
}

type dashboardResponse struct {
	TotalRecords         int64                `json:"totalRecords"`
	GenderDistribution   []genderStatResponse `json:"genderDistribution"`
	LocationDistribution []bucketResponse     `json:"locationDistribution"`
	InterestDistribution []bucketResponse     `json:"interestDistribution"`
	AvgAge               int                  `json:"avgAge"`
	TopLocationsByName   []bucketResponse     `json:"topLocationsByName"`
	UniqueDeviceCount    int64                `json:"uniqueDeviceCount"`
}

func buildRecordResponse(record domain.Record) recordResponse {
	return recordResponse{
		ID:              record.ID,
		Number:          record.Number,
		LocationName:    record.LocationName,
		Date:            record.Date,
		LoginHour:       record.LoginHour,
		Name:            record.Name,
		Age:             record.Age,
		Gender:          string(record.Gender),
		Email:           record.Email,
		Phone:           record.Phone,
		BrandDevice:     record.BrandDevice,
		DigitalInterest: record.DigitalInterest,
		LocationType:    record.LocationType,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func buildListResponse(page *application.RecordPage) listResponse {
	items := make([]recordResponse, 0, len(page.Records))
	for _, record := range page.Records {
		items = append(items, buildRecordResponse(record))
	}
	return listResponse{
		Data: items,
		Pagination: paginationResponse{
			Page:       page.PageInfo.Page,
			Limit:      page.PageInfo.Limit,
			Total:      page.PageInfo.Total,
			TotalPages: page.PageInfo.TotalPages,
			HasNext:    page.PageInfo.HasNext,
			HasPrev:    page.PageInfo.HasPrev,
		},
	}
}

func buildGenderStatsResponse(stats []domain.GenderStat) []genderStatResponse {
	items := make([]genderStatResponse, 0, len(stats))
	for _, stat := range stats {
		items = append(items, genderStatResponse{
			Value:      stat.Value,
			Count:      stat.Count,
			Percentage: stat.Percentage,
		})
	}
	return items
}

func buildBucketsResponse(buckets []domain.Bucket) []bucketResponse {
	items := make([]bucketResponse, 0, len(buckets))
	for _, bucket := range buckets {
		items = append(items, bucketResponse{
			Value: bucket.Value,
			Count: bucket.Count,
		})
	}
	return items
}

func buildDashboardResponse(stats *domain.DashboardStats) dashboardResponse {
	return dashboardResponse{
		TotalRecords:         stats.TotalRecords,
		GenderDistribution:   buildGenderStatsResponse(stats.GenderDistribution),
		LocationDistribution: buildBucketsResponse(stats.LocationDistribution),
		InterestDistribution: buildBucketsResponse(stats.InterestDistribution),
		AvgAge:               stats.AvgAge,
		TopLocationsByName:   buildBucketsResponse(stats.TopLocationsByName),
		UniqueDeviceCount:    stats.UniqueDeviceCount,
	}
}
