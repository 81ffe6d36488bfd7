package watertest

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) submitOp() huma.Operation {
	return huma.Operation{
		OperationID:   "water-tests-submit",
		Method:        http.MethodPost,
		Path:          "/api/water-tests",
		Summary:       "Отправить результат анализа воды",
		Tags:          []string{"water-tests"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "water-tests-list",
		Method:      http.MethodGet,
		Path:        "/api/water-tests",
		Summary:     "Список анализов воды, новые сверху",
		Tags:        []string{"water-tests"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
