package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePages(t *testing.T, overrides map[Page]string) string {
	t.Helper()
	dir := t.TempDir()
	for page, filename := range pageFiles {
		body := "# " + string(page) + "\n\nSome prose.\n"
		if override, ok := overrides[page]; ok {
			body = override
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(body), 0o644))
	}
	return dir
}

func TestNewService_RendersAllPages(t *testing.T) {
	dir := writePages(t, nil)
	service, err := NewService(dir)
	require.NoError(t, err)

	for page := range pageFiles {
		html, ok := service.Render(page)
		assert.True(t, ok)
		assert.Contains(t, string(html), "<h1>")
	}
}

func TestNewService_FailsOnMissingFile(t *testing.T) {
	dir := writePages(t, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, "faq.md")))

	_, err := NewService(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "faq")
}

func TestRender_UnknownPage(t *testing.T) {
	service, err := NewService(writePages(t, nil))
	require.NoError(t, err)

	_, ok := service.Render(Page("internal-runbook"))
	assert.False(t, ok)
}

func TestRender_StripsUnsafeMarkup(t *testing.T) {
	dir := writePages(t, map[Page]string{
		PageAbout: "# About\n\n<script>alert(1)</script>\n\n<a href=\"https://example.com\" onclick=\"x()\">link</a>\n",
	})
	service, err := NewService(dir)
	require.NoError(t, err)

	html, ok := service.Render(PageAbout)
	require.True(t, ok)
	assert.NotContains(t, string(html), "<script>")
	assert.NotContains(t, string(html), "onclick")
	assert.Contains(t, string(html), `href="https://example.com"`)
}
