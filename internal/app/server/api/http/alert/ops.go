package alert

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "alerts-list",
		Method:      http.MethodGet,
		Path:        "/api/alerts",
		Summary:     "Активные объявления, новые сверху",
		Tags:        []string{"alerts"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "alerts-create",
		Method:        http.MethodPost,
		Path:          "/api/alerts",
		Summary:       "Создать объявление",
		Tags:          []string{"alerts"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}
