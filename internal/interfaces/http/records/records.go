package records

import (
	"net/http"

	"github.com/sngm3741/higo-analytics/api/internal/interfaces/http/common"
	"github.com/sngm3741/higo-analytics/api/internal/interfaces/http/query"
)

// listHandler はフィルタ・全文検索・ソート・ページング付きの記録一覧を返す。
func (h *Handler) listHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listQuery, err := query.ParseList(r.URL.Query())
		if err != nil {
			common.WriteError(h.logger, w, common.StatusOf(err), err.Error(), "Invalid query parameters")
			return
		}

		page, err := h.queries.ListRecords(r.Context(), listQuery)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		common.WriteSuccess(h.logger, w, http.StatusOK, buildListResponse(page), "Records retrieved successfully")
	}
}
