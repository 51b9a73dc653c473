package docs

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetgate/pkg/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	for _, filename := range pageFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte("# Heading\n\nBody.\n"), 0o644))
	}
	service, err := NewService(dir)
	require.NoError(t, err)

	log := slog.New(slog.DiscardHandler)
	router := chi.NewRouter()
	NewHandler(service, log, nil).Register(router)
	return router
}

func TestHandlePage_ServesHTML(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/docs/faq"))

	testutil.AssertStatusOK(t, rr)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, string(testutil.ReadBody(t, rr)), "<h1>Heading</h1>")
}

func TestHandlePage_UnknownPageIs404(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/docs/secrets"))

	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}
