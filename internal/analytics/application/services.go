package application

import (
	"context"
	"time"

	"github.com/sngm3741/higo-analytics/api/internal/analytics/domain"
)

// RecordFilter expresses the equality predicates of a list query.
// RecordFilter は一覧クエリの等価条件。空フィールドは制約を課さない（指定された条件のみの AND）。
type RecordFilter struct {
	Gender          string
	LocationType    string
	DigitalInterest string
	BrandDevice     string
	Search          string
}

// StatsFilter expresses the optional predicates of a statistics query.
type StatsFilter struct {
	Gender          string
	LocationType    string
	DigitalInterest string
	DateFrom        *time.Time
	DateTo          *time.Time
}

// Sort は一覧クエリの単一キーソート指定。
type Sort struct {
	Field      string
	Descending bool
}

// ListQuery is the validated, defaulted view of a list request.
type ListQuery struct {
	Filter RecordFilter
	Sort   Sort
	Page   int
	Limit  int
}

// RecordRepository は来店記録コレクションへの読み取りポート。
// クエリサービスを特定のストア実装から切り離し、テストではインメモリの
// フェイクに差し替えられるようにする。
type RecordRepository interface {
	Find(ctx context.Context, filter RecordFilter, sort Sort, p Pagination) ([]domain.Record, error)
	Count(ctx context.Context, filter RecordFilter) (int64, error)
	CountFiltered(ctx context.Context, filter StatsFilter) (int64, error)
	GenderCounts(ctx context.Context, filter StatsFilter) ([]domain.Bucket, error)
	LocationTypeCounts(ctx context.Context, filter StatsFilter) ([]domain.Bucket, error)
	InterestCounts(ctx context.Context, filter StatsFilter) ([]domain.Bucket, error)
	AverageAge(ctx context.Context, filter StatsFilter) (float64, error)
	TopLocationNames(ctx context.Context, filter StatsFilter, limit int) ([]domain.Bucket, error)
	DistinctBrandCount(ctx context.Context, filter StatsFilter) (int64, error)
}

// RecordPage is a page of records plus its pagination envelope.
type RecordPage struct {
	Records  []domain.Record
	PageInfo PageInfo
}

// RecordQueryService describes the read use-cases over the record collection.
// RecordQueryService は来店記録の参照ユースケースを提供するリーダーモデル。
type RecordQueryService interface {
	ListRecords(ctx context.Context, query ListQuery) (*RecordPage, error)
	GenderStats(ctx context.Context, filter StatsFilter) ([]domain.GenderStat, error)
	LocationStats(ctx context.Context, filter StatsFilter) ([]domain.Bucket, error)
	InterestStats(ctx context.Context, filter StatsFilter) ([]domain.Bucket, error)
	DashboardStats(ctx context.Context, filter StatsFilter) (*domain.DashboardStats, error)
}
