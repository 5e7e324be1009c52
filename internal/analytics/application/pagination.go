package application

// DefaultLimit と MaxLimit は 1 ページあたりの件数の既定値と上限。
const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100
)

// Pagination holds resolved offset-based paging values.
type Pagination struct {
	Page  int
	Limit int
	Skip  int
}

// PageInfo is the envelope computed from a total count and a Pagination.
type PageInfo struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// ResolvePagination はページ/件数の組を skip/limit へ変換する。
// 入力はバリデータ通過済みの前提だが、防御的に再クランプする。
func ResolvePagination(page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// NewPageInfo は総件数とページ指定から応答用のページ情報を組み立てる。
// total が 0 でも totalPages は最低 1 を保証し、「1/1 ページ・空」の表示を可能にする。
func NewPageInfo(total int64, p Pagination) PageInfo {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return PageInfo{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
