package domain

// GenderStat is one gender bucket with its share of the filtered total.
type GenderStat struct {
	Value      string
	Count      int64
	Percentage float64
}

// Bucket is a grouped count for one categorical value.
type Bucket struct {
	Value string
	Count int64
}

// DashboardStats はダッシュボード向けの複合統計。各フィールドは同一の
// ベースフィルタを独立に適用した読み取り専用集計の結果で、共有の中間結果は持たない。
type DashboardStats struct {
	TotalRecords         int64
	GenderDistribution   []GenderStat
	LocationDistribution []Bucket
	InterestDistribution []Bucket
	AvgAge               int
	TopLocationsByName   []Bucket
	UniqueDeviceCount    int64
}
