// Package records は来店記録 API（一覧と統計）の HTTP ハンドラ群。
// 検証済みクエリをアプリケーションサービス呼び出しへ変換し、JSON エンベロープに
// 整形するだけの薄い層で、ドメインロジックは持たない。
package records

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/sngm3741/higo-analytics/api/internal/analytics/application"
	"github.com/sngm3741/higo-analytics/api/internal/interfaces/http/common"
)

// Handler wires record HTTP endpoints to the query service.
type Handler struct {
	logger  zerolog.Logger
	queries application.RecordQueryService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger  zerolog.Logger
	Queries application.RecordQueryService
}

// NewHandler constructs a record HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:  cfg.Logger,
		queries: cfg.Queries,
	}
}

// Register mounts all record routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/records", h.listHandler())
	r.Get("/stats/gender", h.genderStatsHandler())
	r.Get("/stats/location", h.locationStatsHandler())
	r.Get("/stats/interest", h.interestStatsHandler())
	r.Get("/stats/dashboard", h.dashboardStatsHandler())
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("record query failed")
	common.WriteError(h.logger, w, http.StatusInternalServerError, "Server Error", "An error occurred processing your request")
}
