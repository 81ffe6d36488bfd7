package upload

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"healthwatch/internal/app/server/api/http/httperr"
	"healthwatch/internal/infrastructure/blob"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	msgNoFile   = "No file uploaded"
	msgNotImage = "Only image files are allowed"
	msgTooLarge = "File too large"
	msgFailed   = "Server error during file upload"
)

// multipartOverhead: запас на границы и заголовки multipart сверх размера файла.
const multipartOverhead = 64 << 10

type Handler struct {
	store      blob.Store
	maxBytes   int64
	urlPrefix  string
	now        func() time.Time
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(store blob.Store, maxBytes int64, urlPrefix string, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		maxBytes:   maxBytes,
		urlPrefix:  strings.TrimRight(urlPrefix, "/"),
		now:        time.Now,
		log:        log.With("component", "upload_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.uploadOp(), h.upload)
}

func (h *Handler) upload(ctx context.Context, input *uploadInput) (*uploadOutput, error) {
	form := input.RawBody.Data()
	if form == nil || !form.Image.IsSet || form.Image.File == nil {
		return nil, httperr.New(http.StatusBadRequest, msgNoFile)
	}
	file := form.Image
	defer file.Close()

	if file.Size > h.maxBytes {
		return nil, httperr.New(http.StatusRequestEntityTooLarge, msgTooLarge)
	}

	contentType, err := sniff(file)
	if err != nil {
		h.log.Error("failed to read upload", "error", err)
		return nil, httperr.New(http.StatusInternalServerError, msgFailed)
	}
	if !blob.IsImage(contentType) {
		return nil, httperr.New(http.StatusBadRequest, msgNotImage)
	}

	name := blob.NewName(h.now(), contentType)
	if err := h.store.Put(ctx, name, contentType, file, file.Size); err != nil {
		h.log.Error("failed to store upload", "name", name, "error", err)
		return nil, httperr.New(http.StatusInternalServerError, msgFailed)
	}

	h.log.Info("image uploaded", "name", name, "declared_type", file.ContentType, "size", file.Size, "content_type", contentType)
	return &uploadOutput{
		Body: UploadResponse{
			Message:  "Image uploaded successfully",
			ImageURL: h.urlPrefix + "/" + name,
		},
	}, nil
}

// sniff определяет тип по первым байтам файла. Заголовок части и имя файла
// задаёт клиент, поэтому они не учитываются.
func sniff(file huma.FormFile) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}
