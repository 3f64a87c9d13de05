package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportforge/internal/config"
	"reportforge/internal/intelligence"
)

type stubGenerator struct {
	data []byte
	err  error
}

func (s *stubGenerator) Generate(_ context.Context, _ []intelligence.Section) ([]byte, error) {
	return s.data, s.err
}

func testServer(t *testing.T, gen Generator) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Server.OutputDir = t.TempDir()
	return New(cfg, gen)
}

func TestHealthHandler(t *testing.T) {
	srv := testServer(t, &stubGenerator{})

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestGenerateHandler_Success(t *testing.T) {
	pdf := append([]byte("%PDF-1.3 "), make([]byte, 2048)...)
	srv := testServer(t, &stubGenerator{data: pdf})

	body, _ := json.Marshal(GenerateRequest{
		Sections: []intelligence.Section{{Header: "H", Content: "c"}},
		Filename: "quarterly.pdf",
	})
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest("POST", "/generate-pdf", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Filename, "quarterly_"))
	assert.True(t, strings.HasSuffix(resp.Filename, ".pdf"))
	assert.Equal(t, "/download/"+resp.Filename, resp.DownloadURL)

	t.Run("Download round trip", func(t *testing.T) {
		dl := httptest.NewRecorder()
		srv.Routes().ServeHTTP(dl, httptest.NewRequest("GET", resp.DownloadURL, nil))

		require.Equal(t, http.StatusOK, dl.Code)
		assert.Equal(t, "application/pdf", dl.Header().Get("Content-Type"))
		assert.Equal(t, pdf, dl.Body.Bytes())
	})
}

func TestGenerateHandler_InvalidInputIsBadRequest(t *testing.T) {
	srv := testServer(t, &stubGenerator{err: errors.New("invalid input: no sections provided")})

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest("POST", "/generate-pdf", strings.NewReader(`{"sections": []}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no sections")
}

func TestGenerateHandler_PipelineFailureIsServerError(t *testing.T) {
	srv := testServer(t, &stubGenerator{err: errors.New("document rendering failed: boom")})

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest("POST", "/generate-pdf", strings.NewReader(`{"sections": [{"header": "H", "content": "c"}]}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerateHandler_MalformedBody(t *testing.T) {
	srv := testServer(t, &stubGenerator{})

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest("POST", "/generate-pdf", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadHandler_NotFound(t *testing.T) {
	srv := testServer(t, &stubGenerator{})

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest("GET", "/download/missing.pdf", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuildFilename(t *testing.T) {
	name := buildFilename("report.pdf")
	assert.True(t, strings.HasPrefix(name, "report_"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	name = buildFilename("")
	assert.True(t, strings.HasPrefix(name, "document_"))

	// Path components are stripped from the requested name.
	name = buildFilename("../../etc/passwd")
	assert.True(t, strings.HasPrefix(name, "passwd_"))

	assert.NotEqual(t, buildFilename("a.pdf"), buildFilename("a.pdf"))
}
