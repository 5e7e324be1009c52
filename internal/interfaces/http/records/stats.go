package records

import (
	"net/http"

	"github.com/sngm3741/higo-analytics/api/internal/interfaces/http/common"
	"github.com/sngm3741/higo-analytics/api/internal/interfaces/http/query"
)

// genderStatsHandler は性別分布（件数と百分率）を返す。
func (h *Handler) genderStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := query.ParseStats(r.URL.Query())
		if err != nil {
			common.WriteError(h.logger, w, common.StatusOf(err), err.Error(), "Invalid query parameters")
			return
		}

		stats, err := h.queries.GenderStats(r.Context(), filter)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		common.WriteSuccess(h.logger, w, http.StatusOK, buildGenderStatsResponse(stats), "Gender statistics retrieved successfully")
	}
}

// locationStatsHandler は拠点種別分布を返す。
func (h *Handler) locationStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := query.ParseStats(r.URL.Query())
		if err != nil {
			common.WriteError(h.logger, w, common.StatusOf(err), err.Error(), "Invalid query parameters")
			return
		}

		stats, err := h.queries.LocationStats(r.Context(), filter)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		common.WriteSuccess(h.logger, w, http.StatusOK, buildBucketsResponse(stats), "Location statistics retrieved successfully")
	}
}

// interestStatsHandler はデジタル関心分布を返す。
func (h *Handler) interestStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := query.ParseStats(r.URL.Query())
		if err != nil {
			common.WriteError(h.logger, w, common.StatusOf(err), err.Error(), "Invalid query parameters")
			return
		}

		stats, err := h.queries.InterestStats(r.Context(), filter)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		common.WriteSuccess(h.logger, w, http.StatusOK, buildBucketsResponse(stats), "Interest statistics retrieved successfully")
	}
}

// dashboardStatsHandler はダッシュボード向けの複合統計を返す。
func (h *Handler) dashboardStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := query.ParseStats(r.URL.Query())
		if err != nil {
			common.WriteError(h.logger, w, common.StatusOf(err), err.Error(), "Invalid query parameters")
			return
		}

		stats, err := h.queries.DashboardStats(r.Context(), filter)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		common.WriteSuccess(h.logger, w, http.StatusOK, buildDashboardResponse(stats), "Dashboard statistics retrieved successfully")
	}
}
