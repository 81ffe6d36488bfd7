// Package blob stores uploaded images and serves them back under a stable name.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

var (
	ErrNotFound    = errors.New("blob not found")
	ErrInvalidName = errors.New("invalid blob name")
)

type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Store is implemented by the local disk and the S3 backends.
type Store interface {
	Put(ctx context.Context, name, contentType string, body io.Reader, size int64) error
	Open(ctx context.Context, name string) (*Object, error)
}

// imageTypes: загружаемые типы и расширение, под которым файл хранится.
// Тип определяется по содержимому файла, имя от клиента не используется.
var imageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// IsImage reports whether contentType may be stored and served back.
func IsImage(contentType string) bool {
	_, ok := imageTypes[contentType]
	return ok
}

// NewName returns "<unix-millis>-<uuid><ext>" with the extension fixed by contentType.
// An unknown type gets no extension.
func NewName(now time.Time, contentType string) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString(), imageTypes[contentType])
}

// typeByName resolves the content type back from a stored name.
func typeByName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	for ct, e := range imageTypes {
		if e == ext {
			return ct
		}
	}
	return ""
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}

// Handler serves GET <prefix>/<name> from store.
func Handler(prefix string, store Store, log *slog.Logger) http.Handler {
	log = log.With("component", "blob_handler")
	return http.StripPrefix(prefix+"/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if err := validName(name); err != nil {
			http.NotFound(w, r)
			return
		}

		obj, err := store.Open(r.Context(), name)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Error("failed to open blob", "name", name, "error", err)
			}
			http.NotFound(w, r)
			return
		}
		defer obj.Body.Close()

		// всё, что не картинка из списка, отдаётся как вложение
		if IsImage(obj.ContentType) {
			w.Header().Set("Content-Type", obj.ContentType)
		} else {
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Header().Set("Content-Disposition", "attachment")
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if _, err := io.Copy(w, obj.Body); err != nil {
			log.Debug("blob copy interrupted", "name", name, "error", err)
		}
	}))
}
