package application

import (
	"context"
	"math"

	"github.com/sngm3741/higo-analytics/api/internal/analytics/domain"
	"golang.org/x/sync/errgroup"
)

// ダッシュボードの地域別トップ件数。
const topLocationLimit = 6

// recordQueryService implements RecordQueryService.
type recordQueryService struct {
	repo RecordRepository
}

// NewRecordQueryService creates a new RecordQueryService.
func NewRecordQueryService(repo RecordRepository) RecordQueryService {
	return &recordQueryService{repo: repo}
}

// ListRecords はフィルタ済み一覧と、同一フィルタに対する総件数を並行に取得し、
// ページ情報付きで返す。total は常にフィルタ後の全件数であり、ページサイズには依存しない。
func (s *recordQueryService) ListRecords(ctx context.Context, query ListQuery) (*RecordPage, error) {
	pagination := ResolvePagination(query.Page, query.Limit)

	var (
		records []domain.Record
		total   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.repo.Find(gctx, query.Filter, query.Sort, pagination)
		if err != nil {
			return err
		}
		records = found
		return nil
	})
	g.Go(func() error {
		count, err := s.repo.Count(gctx, query.Filter)
		if err != nil {
			return err
		}
		total = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if records == nil {
		records = []domain.Record{}
	}
	return &RecordPage{
		Records:  records,
		PageInfo: NewPageInfo(total, pagination),
	}, nil
}

// GenderStats は性別ごとの件数を降順で返し、グルーピング後にフィルタ内総数に
// 対する百分率（小数 2 桁丸め）を付与する。返却される全グループの百分率の合計は
// 丸め誤差の範囲で 100 になる。
func (s *recordQueryService) GenderStats(ctx context.Context, filter StatsFilter) ([]domain.GenderStat, error) {
	buckets, err := s.repo.GenderCounts(ctx, filter)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, b := range buckets {
		total += b.Count
	}

	stats := make([]domain.GenderStat, 0, len(buckets))
	for _, b := range buckets {
		var pct float64
		if total > 0 {
			pct = math.Round(float64(b.Count)/float64(total)*100*100) / 100
		}
		stats = append(stats, domain.GenderStat{
			Value:      b.Value,
			Count:      b.Count,
			Percentage: pct,
		})
	}
	return stats, nil
}

func (s *recordQueryService) LocationStats(ctx context.Context, filter StatsFilter) ([]domain.Bucket, error) {
	return s.repo.LocationTypeCounts(ctx, filter)
}

func (s *recordQueryService) InterestStats(ctx context.Context, filter StatsFilter) ([]domain.Bucket, error) {
	return s.repo.InterestCounts(ctx, filter)
}

// DashboardStats は 6 つの独立した読み取り集計を並行実行して束ねる。
// グルーピングキーが互いに異なるため単一パイプラインでは導出できず、
// 同一のベースフィルタをそれぞれが独立に適用するファンアウト構成になっている。
func (s *recordQueryService) DashboardStats(ctx context.Context, filter StatsFilter) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.repo.CountFiltered(gctx, filter)
		if err != nil {
			return err
		}
		stats.TotalRecords = total
		return nil
	})
	g.Go(func() error {
		gender, err := s.GenderStats(gctx, filter)
		if err != nil {
			return err
		}
		stats.GenderDistribution = gender
		return nil
	})
	g.Go(func() error {
		locations, err := s.repo.LocationTypeCounts(gctx, filter)
		if err != nil {
			return err
		}
		stats.LocationDistribution = locations
		return nil
	})
	g.Go(func() error {
		interests, err := s.repo.InterestCounts(gctx, filter)
		if err != nil {
			return err
		}
		stats.InterestDistribution = interests
		return nil
	})
	g.Go(func() error {
		avg, err := s.repo.AverageAge(gctx, filter)
		if err != nil {
			return err
		}
		stats.AvgAge = int(math.Round(avg))
		return nil
	})
	g.Go(func() error {
		top, err := s.repo.TopLocationNames(gctx, filter, topLocationLimit)
		if err != nil {
			return err
		}
		stats.TopLocationsByName = top
		return nil
	})
	g.Go(func() error {
		unique, err := s.repo.DistinctBrandCount(gctx, filter)
		if err != nil {
			return err
		}
		stats.UniqueDeviceCount = unique
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if stats.GenderDistribution == nil {
		stats.GenderDistribution = []domain.GenderStat{}
	}
	if stats.LocationDistribution == nil {
		stats.LocationDistribution = []domain.Bucket{}
	}
	if stats.InterestDistribution == nil {
		stats.InterestDistribution = []domain.Bucket{}
	}
	if stats.TopLocationsByName == nil {
		stats.TopLocationsByName = []domain.Bucket{}
	}
	return stats, nil
}
