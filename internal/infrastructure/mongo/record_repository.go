package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/higo-analytics/api/internal/analytics/application"
	"github.com/sngm3741/higo-analytics/api/internal/analytics/domain"
)

// RecordRepository は来店記録コレクションを MongoDB で扱う実装リポジトリ。
type RecordRepository struct {
	records *mongo.Collection
}

// NewRecordRepository は records コレクションを束縛したリポジトリを構築する。
func NewRecordRepository(db *mongo.Database, recordCollection string) *RecordRepository {
	return &RecordRepository{records: db.Collection(recordCollection)}
}

// Find は等価条件＋全文検索の複合フィルタを Mongo クエリへ落とし込み、
// 単一キーでソートした 1 ページ分の記録を返す。
// ソートキーが同値の場合の順序はストア既定の順序に委ねており、実行間で安定しない。
func (r *RecordRepository) Find(ctx context.Context, filter application.RecordFilter, sort application.Sort, p application.Pagination) ([]domain.Record, error) {
	findOpts := options.Find().
		SetSort(buildSort(sort)).
		SetSkip(int64(p.Skip)).
		SetLimit(int64(p.Limit))

	cursor, err := r.records.Find(ctx, buildListFilter(filter), findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]domain.Record, 0)
	for cursor.Next(ctx) {
		var doc RecordDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, mapRecordDocument(doc))
	}
	return records, cursor.Err()
}

// Count は Find と同一のフィルタに対する総件数を返す。
func (r *RecordRepository) Count(ctx context.Context, filter application.RecordFilter) (int64, error) {
	return r.records.CountDocuments(ctx, buildListFilter(filter))
}

// CountFiltered は統計クエリのフィルタに対する総件数を返す。
func (r *RecordRepository) CountFiltered(ctx context.Context, filter application.StatsFilter) (int64, error) {
	return r.records.CountDocuments(ctx, buildBaseMatch(filter))
}

// GenderCounts は性別ごとのグループ件数を件数降順で返す。
// gender 自身はグルーピングキーのため条件には使わず、日付範囲はこの集計のみが適用する。
func (r *RecordRepository) GenderCounts(ctx context.Context, filter application.StatsFilter) ([]domain.Bucket, error) {
	match := bson.M{}
	if filter.LocationType != "" {
		match["locationType"] = filter.LocationType
	}
	if filter.DigitalInterest != "" {
		match["digitalInterest"] = filter.DigitalInterest
	}
	addDateRange(match, filter)
	return r.groupCounts(ctx, "gender", match, 0)
}

// LocationTypeCounts は拠点種別ごとのグループ件数を件数降順で返す。
// locationType 自身と日付範囲は条件に使わない。
func (r *RecordRepository) LocationTypeCounts(ctx context.Context, filter application.StatsFilter) ([]domain.Bucket, error) {
	match := bson.M{}
	if filter.Gender != "" {
		match["gender"] = filter.Gender
	}
	if filter.DigitalInterest != "" {
		match["digitalInterest"] = filter.DigitalInterest
	}
	return r.groupCounts(ctx, "locationType", match, 0)
}

// InterestCounts はデジタル関心ごとのグループ件数を件数降順で返す。
// digitalInterest 自身と日付範囲は条件に使わない。
func (r *RecordRepository) InterestCounts(ctx context.Context, filter application.StatsFilter) ([]domain.Bucket, error) {
	match := bson.M{}
	if filter.Gender != "" {
		match["gender"] = filter.Gender
	}
	if filter.LocationType != "" {
		match["locationType"] = filter.LocationType
	}
	return r.groupCounts(ctx, "digitalInterest", match, 0)
}

// TopLocationNames は拠点名（種別ではなく名称）ごとの件数上位 limit 件を返す。
func (r *RecordRepository) TopLocationNames(ctx context.Context, filter application.StatsFilter, limit int) ([]domain.Bucket, error) {
	return r.groupCounts(ctx, "locationName", buildBaseMatch(filter), limit)
}

// AverageAge はフィルタ内の平均年齢を返す。対象 0 件のときは 0。
func (r *RecordRepository) AverageAge(ctx context.Context, filter application.StatsFilter) (float64, error) {
	pipeline := mongo.Pipeline{}
	if match := buildBaseMatch(filter); len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.M{
		"_id":    nil,
		"avgAge": bson.M{"$avg": "$age"},
	}}})

	cursor, err := r.records.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var row struct {
			AvgAge float64 `bson:"avgAge"`
		}
		if err := cursor.Decode(&row); err != nil {
			return 0, err
		}
		return row.AvgAge, nil
	}
	return 0, cursor.Err()
}

// DistinctBrandCount はフィルタ内のデバイスブランドの異なり数を返す。
// ブランドごとの $group を挟んでから全体を数える 2 段グループで表現する。
func (r *RecordRepository) DistinctBrandCount(ctx context.Context, filter application.StatsFilter) (int64, error) {
	pipeline := mongo.Pipeline{}
	if match := buildBaseMatch(filter); len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.M{"_id": "$brandDevice"}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
		}}},
	)

	cursor, err := r.records.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var row struct {
			Count int64 `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return 0, err
		}
		return row.Count, nil
	}
	return 0, cursor.Err()
}

// groupCounts は単一フィールドによるグループ件数集計の共通パイプライン。
func (r *RecordRepository) groupCounts(ctx context.Context, field string, match bson.M, limit int) ([]domain.Bucket, error) {
	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	)
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cursor, err := r.records.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	buckets := make([]domain.Bucket, 0)
	for cursor.Next(ctx) {
		var row struct {
			Value string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		buckets = append(buckets, domain.Bucket{Value: row.Value, Count: row.Count})
	}
	return buckets, cursor.Err()
}

// buildListFilter は一覧クエリの条件を bson フィルタへ変換する。
// 指定されたフィールドのみを AND で束ね、search はインデックス付きテキスト検索に乗せる。
func buildListFilter(filter application.RecordFilter) bson.M {
	mongoFilter := bson.M{}
	if filter.Gender != "" {
		mongoFilter["gender"] = filter.Gender
	}
	if filter.LocationType != "" {
		mongoFilter["locationType"] = filter.LocationType
	}
	if filter.DigitalInterest != "" {
		mongoFilter["digitalInterest"] = filter.DigitalInterest
	}
	if filter.BrandDevice != "" {
		mongoFilter["brandDevice"] = filter.BrandDevice
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		mongoFilter["$text"] = bson.M{"$search": search}
	}
	return mongoFilter
}

// buildBaseMatch はダッシュボード系集計が共有する等価条件のみの $match を構築する。
// 日付範囲はここでは扱わない。
func buildBaseMatch(filter application.StatsFilter) bson.M {
	match := bson.M{}
	if filter.Gender != "" {
		match["gender"] = filter.Gender
	}
	if filter.LocationType != "" {
		match["locationType"] = filter.LocationType
	}
	if filter.DigitalInterest != "" {
		match["digitalInterest"] = filter.DigitalInterest
	}
	return match
}

// addDateRange は来店日の範囲条件（両端含み）を match へ追記する。
func addDateRange(match bson.M, filter application.StatsFilter) {
	if filter.DateFrom == nil && filter.DateTo == nil {
		return
	}
	dateRange := bson.M{}
	if filter.DateFrom != nil {
		dateRange["$gte"] = *filter.DateFrom
	}
	if filter.DateTo != nil {
		dateRange["$lte"] = *filter.DateTo
	}
	match["date"] = dateRange
}

// buildSort は検証済みのソート指定を Mongo のソートドキュメントへ変換する。
func buildSort(sort application.Sort) bson.D {
	field := sort.Field
	if field == "" {
		field = "createdAt"
	}
	direction := 1
	if sort.Descending {
		direction = -1
	}
	return bson.D{{Key: field, Value: direction}}
}
