package casereport

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) submitOp() huma.Operation {
	return huma.Operation{
		OperationID:   "cases-submit",
		Method:        http.MethodPost,
		Path:          "/api/cases",
		Summary:       "Отправить отчёт о случае заболевания",
		Tags:          []string{"cases"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "cases-list",
		Method:      http.MethodGet,
		Path:        "/api/cases",
		Summary:     "Список отчётов, новые сверху",
		Tags:        []string{"cases"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
