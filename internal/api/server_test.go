package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/coursecheck/internal/config"
	"github.com/dgallion1/coursecheck/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validLesson = "# Lesson\n\n?---?\n\n# Pick one\n\n- [x] yes\n- [ ] no\n"

const invalidLesson = "# Lesson\n\n?---?\n\n# Pick one\n\n- [ ] yes\n- [ ] no\n"

func newTestServer(t *testing.T, contentPath string) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		APIKey:             "secret",
		ContentPath:        contentPath,
		WorkerCount:        1,
		MaxQueueSize:       4,
		MaxConcurrentFiles: 2,
		MaxUploadBytes:     4096,
		JobTTL:             time.Hour,
	}
	orch := pipeline.NewOrchestrator(cfg, nil, log)
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)
	return NewServer(orch, log, cfg)
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats/runs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/runs", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLintLesson_RawBody(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/api/lint/lesson?path=topics/a.md", strings.NewReader(validLesson))
	req.Header.Set("Content-Type", "text/markdown")
	rec := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Len(t, body["content_sha256"], 64)
	result := body["result"].(map[string]any)
	assert.Equal(t, "topics/a.md", result["path"])
	assert.Equal(t, float64(1), result["question_count"])
}

func TestLintLesson_ViolationIsStill200(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/api/lint/lesson", strings.NewReader(invalidLesson))
	rec := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "lesson file 'lesson.md': question 1: no answer checked in single-answer question", body["message"])
}

func TestLintLesson_Multipart(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "../../intro.md")
	require.NoError(t, err)
	_, err = fw.Write([]byte(validLesson))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/lint/lesson", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode(t, rec)["result"].(map[string]any)
	assert.Equal(t, "intro.md", result["path"])
}

func TestLintLesson_Rejects(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/api/lint/lesson?path=notes.txt", strings.NewReader(validLesson))
	assert.Equal(t, http.StatusBadRequest, do(t, s, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/api/lint/lesson", strings.NewReader(strings.Repeat("x", 5000)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, do(t, s, req).Code)
}

func TestRuns_SubmitAndPoll(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "courses", "demo", "topics")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte(invalidLesson), 0o644))
	s := newTestServer(t, root)

	rec := do(t, s, httptest.NewRequest(http.MethodPost, "/api/lint/runs", nil))
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	submitted := decode(t, rec)
	runID := submitted["run_id"].(string)
	assert.Equal(t, "/api/lint/runs/"+runID, submitted["poll_url"])

	var snap map[string]any
	require.Eventually(t, func() bool {
		rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/lint/runs/"+runID, nil))
		if rec.Code != http.StatusOK {
			return false
		}
		snap = decode(t, rec)
		return snap["status"] == string(pipeline.StatusCompleted)
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, false, snap["ok"])
	progress := snap["progress"].(map[string]any)
	assert.Equal(t, float64(1), progress["files_failed"])

	stats := decode(t, do(t, s, httptest.NewRequest(http.MethodGet, "/api/stats/runs", nil)))
	runStats := stats["stats"].(map[string]any)
	assert.Equal(t, float64(1), runStats["count"])
	assert.Equal(t, float64(1), runStats["failed"])
}

func TestRuns_UnknownID(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/lint/runs/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a.md", sanitizeFilename("dir/a.md"))
	assert.Equal(t, "unnamed", sanitizeFilename(""))
	assert.Equal(t, "unnamed", sanitizeFilename("/"))
}
