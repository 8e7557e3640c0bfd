package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"storefront/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCarouselFixture(t *testing.T) *CarouselHandler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upload.CarouselDir = t.TempDir()

	return NewCarouselHandler(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func carouselContext(t *testing.T, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func multipartImage(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("not really image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestCarouselList_EmptyAndMissingDir(t *testing.T) {
	h := newCarouselFixture(t)

	c, rec := carouselContext(t, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"images":[]`)

	// A directory that does not exist yet behaves the same.
	h.dir = filepath.Join(t.TempDir(), "never-created")
	c, rec = carouselContext(t, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"images":[]`)
}

func TestCarouselUpload_StoresAndLists(t *testing.T) {
	h := newCarouselFixture(t)

	body, contentType := multipartImage(t, "image", "banner.png")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	c, rec := carouselContext(t, req)

	require.NoError(t, h.Upload(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var uploaded struct {
		Data carouselImage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	assert.Equal(t, ".png", filepath.Ext(uploaded.Data.Filename))
	assert.Equal(t, "/images/carousel/"+uploaded.Data.Filename, uploaded.Data.URL)

	entries, err := os.ReadDir(h.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	c, rec = carouselContext(t, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, h.List(c))
	assert.Contains(t, rec.Body.String(), uploaded.Data.Filename)
}

func TestCarouselUpload_RejectsUnsupportedType(t *testing.T) {
	h := newCarouselFixture(t)

	body, contentType := multipartImage(t, "image", "malware.exe")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	c, rec := carouselContext(t, req)

	require.NoError(t, h.Upload(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCarouselDelete_RemovesFile(t *testing.T) {
	h := newCarouselFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "old.jpg"), []byte("x"), 0o644))

	c, rec := carouselContext(t, httptest.NewRequest(http.MethodDelete, "/", nil))
	c.SetParamNames("filename")
	c.SetParamValues("old.jpg")

	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := os.Stat(filepath.Join(h.dir, "old.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestCarouselDelete_MissingFile(t *testing.T) {
	h := newCarouselFixture(t)

	c, rec := carouselContext(t, httptest.NewRequest(http.MethodDelete, "/", nil))
	c.SetParamNames("filename")
	c.SetParamValues("gone.jpg")

	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCarouselDelete_RejectsPathTraversal(t *testing.T) {
	h := newCarouselFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "keep.jpg"), []byte("x"), 0o644))

	for _, name := range []string{"../keep.jpg", "..", ".hidden", "a/b.jpg"} {
		c, rec := carouselContext(t, httptest.NewRequest(http.MethodDelete, "/", nil))
		c.SetParamNames("filename")
		c.SetParamValues(name)

		require.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "filename %q", name)
	}

	_, err := os.Stat(filepath.Join(h.dir, "keep.jpg"))
	assert.NoError(t, err)
}
