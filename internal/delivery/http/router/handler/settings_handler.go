package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SettingsHandler holds dependencies for site settings handlers.
type SettingsHandler struct {
	uc       usecase.SettingsUsecase
	exporter usecase.ExportUsecase
	logger   *slog.Logger
}

// NewSettingsHandler is the constructor for SettingsHandler, injected by Fx.
func NewSettingsHandler(uc usecase.SettingsUsecase, exporter usecase.ExportUsecase, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{uc: uc, exporter: exporter, logger: logger}
}

type settingRequest struct {
	Value string `json:"value"`
}

type carouselRequest struct {
	ShowCarousel bool `json:"showCarousel"`
}

// List handles retrieval of all settings.
func (h *SettingsHandler) List(c echo.Context) error {
	settings, err := h.uc.ListSettings(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Settings retrieved successfully")
}

// Get handles retrieval of a single setting by key. A missing key is a
// 200 with a null value, not a 404, so the storefront can render unset
// settings without special-casing errors.
func (h *SettingsHandler) Get(c echo.Context) error {
	key := c.Param("key")

	setting, err := h.uc.GetSetting(c.Request().Context(), key)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"key":   setting.Key,
		"value": setting.Value,
	}, "Setting retrieved successfully")
}

// Upsert handles creation or replacement of a setting value.
func (h *SettingsHandler) Upsert(c echo.Context) error {
	key := c.Param("key")

	var input settingRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid setting input")
	}

	setting, err := h.uc.UpsertSetting(c.Request().Context(), key, input.Value)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, setting, "Setting saved successfully")
}

// UpdateCarousel handles the carousel visibility toggle. The flag lives in
// the exported snapshot only, so this goes straight to the exporter.
func (h *SettingsHandler) UpdateCarousel(c echo.Context) error {
	var input carouselRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid carousel input")
	}

	result, err := h.exporter.SetCarouselVisibility(c.Request().Context(), input.ShowCarousel)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"showCarousel": input.ShowCarousel,
		"version":      result.Version,
	}, "Carousel visibility updated successfully")
}
