package handler

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"storefront/config"
	"storefront/internal/delivery/http/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// maxUploadBytes caps product image uploads at 5 MiB.
const maxUploadBytes = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler stores product images on disk and returns the path the
// catalog records reference.
type UploadHandler struct {
	dir    string
	logger *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler, injected by Fx.
func NewUploadHandler(cfg *config.Config, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{dir: cfg.Upload.Dir, logger: logger}
}

// Upload handles a multipart image upload. The stored name is a UUID with
// the original extension, so client-supplied names never hit the
// filesystem.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "An image file is required")
	}

	if fileHeader.Size > maxUploadBytes {
		return response.BadRequest(c, "FILE_TOO_LARGE", "Image exceeds the 5 MiB limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return response.BadRequest(c, "UNSUPPORTED_TYPE", "Only jpg, jpeg, png, gif and webp images are accepted")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "open uploaded file")
	}
	defer src.Close()

	if err := os.MkdirAll(h.dir, 0o750); err != nil {
		return errors.Wrap(err, "create upload directory")
	}

	name := uuid.New().String() + ext
	target := filepath.Join(h.dir, name)

	dst, err := os.Create(target)
	if err != nil {
		return errors.Wrap(err, "create image file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrap(err, "write image file")
	}

	h.logger.Info("Stored uploaded image", slog.String("file", name), slog.Int64("bytes", fileHeader.Size))

	return response.Success(c, http.StatusCreated, map[string]string{
		"filename": name,
		"path":     target,
	}, "Image uploaded successfully")
}
