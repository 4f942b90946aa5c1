package static

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>LED</h1>"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "app.js"), []byte("console.log(1)"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))
	return root
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServe_IndexForRoot(t *testing.T) {
	h, err := New(writeSite(t), "index.html", testLogger())
	require.NoError(t, err)
	assert.True(t, h.Available())

	rec := get(h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>LED</h1>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestServe_File(t *testing.T) {
	h, err := New(writeSite(t), "", testLogger())
	require.NoError(t, err)

	rec := get(h, "/assets/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())
}

func TestServe_NotFound(t *testing.T) {
	h, err := New(writeSite(t), "index.html", testLogger())
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, get(h, "/missing.css").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/empty/").Code)
}

func TestServe_NoTraversal(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "www")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret"), []byte("x"), 0644))

	h, err := New(root, "index.html", testLogger())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = "/../secret"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestNew_MissingRootServes503(t *testing.T) {
	h, err := New(filepath.Join(t.TempDir(), "nope"), "index.html", testLogger())
	require.Error(t, err)
	require.NotNil(t, h)
	assert.False(t, h.Available())

	rec := get(h, "/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "filesystem unavailable")
}

func TestNew_RootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	h, err := New(file, "index.html", testLogger())
	assert.Error(t, err)
	assert.False(t, h.Available())
}
