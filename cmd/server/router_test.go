package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetgate/internal/asset"
	"fleetgate/internal/customer"
	"fleetgate/internal/device"
	"fleetgate/internal/docs"
)

func writeDocsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"about.md", "faq.md", "privacy.md", "terms.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# Page\n\nBody.\n"), 0o644))
	}
	return dir
}

// All domain handlers must compose onto one parent router; a registration
// conflict here would keep the server from booting at all.
func TestNewRouter_ComposesAllHandlers(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	baseURL := "https://portal.example.com"

	tokens := customer.NewTokenService("test-key", time.Hour)
	customerService := customer.New(customer.NewMemoryStore(), tokens, nil, baseURL, customer.WithLogger(log))
	assetService := asset.New(asset.NewMemoryStore(), device.NewMemoryStore(), []string{"default"}, nil, baseURL, asset.WithLogger(log))
	docsService, err := docs.NewService(writeDocsDir(t))
	require.NoError(t, err)

	router := newRouter(log, nil, customerService, assetService, docsService, tokens, baseURL)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/docs/about", "").Code)

	rr := do(http.MethodPost, "/customers/register", `{
		"first_name": "Ada",
		"username": "ada@example.com",
		"password1": "Str0ng!pass",
		"password2": "Str0ng!pass"
	}`)
	assert.Equal(t, http.StatusCreated, rr.Code)

	// Asset routes sit behind RequireAuth.
	rr = do(http.MethodGet, "/assets/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
