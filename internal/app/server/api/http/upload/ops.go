package upload

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) uploadOp() huma.Operation {
	return huma.Operation{
		OperationID:  "upload-image",
		Method:       http.MethodPost,
		Path:         "/api/upload-image",
		Summary:      "Загрузить фотографию к отчёту",
		Tags:         []string{"uploads"},
		MaxBodyBytes: h.maxBytes + multipartOverhead,
		Security:     []map[string][]string{{"bearer": {}}},
		Middlewares:  h.middleware,
	}
}
