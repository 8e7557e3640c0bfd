package handler

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"storefront/config"
	"storefront/internal/delivery/http/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// carouselURLPrefix is where the static route serves carousel files from.
const carouselURLPrefix = "/images/carousel/"

// CarouselHandler manages the homepage carousel images. They are plain
// files in a directory; there is no database record behind them.
type CarouselHandler struct {
	dir    string
	logger *slog.Logger
}

// NewCarouselHandler is the constructor for CarouselHandler, injected by Fx.
func NewCarouselHandler(cfg *config.Config, logger *slog.Logger) *CarouselHandler {
	return &CarouselHandler{dir: cfg.Upload.CarouselDir, logger: logger}
}

type carouselImage struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// List returns every image currently in the carousel directory.
func (h *CarouselHandler) List(c echo.Context) error {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return response.Success(c, http.StatusOK, map[string]any{"images": []carouselImage{}}, "Carousel images retrieved successfully")
		}

		return errors.Wrap(err, "read carousel directory")
	}

	images := make([]carouselImage, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !allowedImageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		images = append(images, carouselImage{
			Filename: entry.Name(),
			URL:      path.Join(carouselURLPrefix, entry.Name()),
		})
	}

	return response.Success(c, http.StatusOK, map[string]any{"images": images}, "Carousel images retrieved successfully")
}

// Upload stores a new carousel image under a UUID name.
func (h *CarouselHandler) Upload(c echo.Context) error {
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
		return errors.Wrap(err, "create carousel directory")
	}

	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		return errors.Wrap(err, "create image file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrap(err, "write image file")
	}

	h.logger.Info("Stored carousel image", slog.String("file", name), slog.Int64("bytes", fileHeader.Size))

	return response.Success(c, http.StatusCreated, carouselImage{
		Filename: name,
		URL:      path.Join(carouselURLPrefix, name),
	}, "Carousel image uploaded successfully")
}

// Delete removes a carousel image by filename. Names carrying path
// separators never reach the filesystem.
func (h *CarouselHandler) Delete(c echo.Context) error {
	filename := c.Param("filename")
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid filename")
	}

	if err := os.Remove(filepath.Join(h.dir, filename)); err != nil {
		if os.IsNotExist(err) {
			return response.NotFound(c, "NOT_FOUND", "Carousel image not found")
		}

		return errors.Wrap(err, "delete carousel image")
	}

	h.logger.Info("Deleted carousel image", slog.String("file", filename))

	return response.Success(c, http.StatusOK, map[string]string{"message": "Carousel image deleted"}, "Carousel image deleted successfully")
}
