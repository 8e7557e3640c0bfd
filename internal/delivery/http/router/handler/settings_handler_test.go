package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsUsecase struct {
	values map[string]string
}

func (f *fakeSettingsUsecase) GetSetting(_ context.Context, key string) (*usecase.SettingValue, error) {
	result := &usecase.SettingValue{Key: key}
	if v, ok := f.values[key]; ok {
		result.Value = &v
	}

	return result, nil
}

func (f *fakeSettingsUsecase) ListSettings(context.Context) ([]*entity.Setting, error) {
	return nil, nil
}

func (f *fakeSettingsUsecase) UpsertSetting(_ context.Context, key, value string) (*entity.Setting, error) {
	return &entity.Setting{Key: key, Value: value}, nil
}

func settingsGetContext(t *testing.T, key string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("key")
	c.SetParamValues(key)

	return c, rec
}

func TestSettingsGet_MissingKeyIsNullValue(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewSettingsHandler(&fakeSettingsUsecase{}, nil, logger)

	c, rec := settingsGetContext(t, "store_name")
	require.NoError(t, h.Get(c))

	require.Equal(t, http.StatusOK, rec.Code, "absent settings are not errors")

	var envelope struct {
		Data struct {
			Key   string  `json:"key"`
			Value *string `json:"value"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "store_name", envelope.Data.Key)
	assert.Nil(t, envelope.Data.Value)
}

func TestSettingsGet_ExistingKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewSettingsHandler(&fakeSettingsUsecase{values: map[string]string{"store_name": "Corner Shop"}}, nil, logger)

	c, rec := settingsGetContext(t, "store_name")
	require.NoError(t, h.Get(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"value":"Corner Shop"`)
}
