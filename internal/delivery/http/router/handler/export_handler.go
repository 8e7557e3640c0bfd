package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ExportHandler holds dependencies for the manual snapshot export handler.
type ExportHandler struct {
	uc     usecase.ExportUsecase
	logger *slog.Logger
}

// NewExportHandler is the constructor for ExportHandler, injected by Fx.
func NewExportHandler(uc usecase.ExportUsecase, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, logger: logger}
}

// Export handles an explicit snapshot export request. Unlike the implicit
// export after mutations, failures here surface to the caller.
func (h *ExportHandler) Export(c echo.Context) error {
	result, err := h.uc.Export(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"path":       result.Path,
		"version":    result.Version,
		"products":   result.ProductCount,
		"categories": result.CategoryCount,
	}, "Snapshot exported successfully")
}

// GetData serves the snapshot assembled on the fly for public reads. The
// body is the raw document, not the response envelope, because it is the
// same shape the storefront loads from the static file.
func (h *ExportHandler) GetData(c echo.Context) error {
	doc, err := h.uc.Document(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, doc)
}
