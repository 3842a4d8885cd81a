package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/coursecheck/internal/lint"
	"github.com/dgallion1/coursecheck/internal/parser"
	"github.com/dgallion1/coursecheck/internal/pipeline"
	"github.com/dgallion1/coursecheck/internal/quiz"
	"github.com/go-chi/chi/v5"
)

// handleLintLesson validates a single lesson sent as the raw request body or
// as the multipart field "file". The response is 200 whether or not the
// lesson passes.
func (s *Server) handleLintLesson(w http.ResponseWriter, r *http.Request) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	var (
		data     []byte
		filename string
		err      error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		data, filename, err = s.readUpload(r)
	} else {
		data, err = io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxUploadBytes+1))
	}
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, fmt.Sprintf("lesson exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("lesson exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	path := r.FormValue("path")
	if path == "" {
		path = filename
	}
	if path == "" {
		path = "lesson.md"
	}
	if !parser.IsSupportedExtension(path) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(path)), http.StatusBadRequest)
		return
	}

	opts := quiz.Options{StrictHeadings: s.strictHeadings(r)}
	res := lint.LintLesson(path, data, opts, s.log)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":             res.OK(),
		"content_sha256": pipeline.ContentHashHex(data),
		"result":         res,
		"message":        res.Message(),
	})
}

func (s *Server) readUpload(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("invalid multipart form: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("file is required: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	return data, sanitizeFilename(header.Filename), nil
}

// handleSubmitRun queues a full content run over the configured root.
func (s *Server) handleSubmitRun(w http.ResponseWriter, r *http.Request) {
	job := pipeline.NewJob(s.cfg.ContentPath, s.strictHeadings(r))
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"run_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/lint/runs/%s", job.ID),
	})
}

func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	job := s.orchestrator.GetJob(runID)
	if job == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(job.Snapshot())
}

// strictHeadings reads the "strict" query parameter, falling back to the
// configured default.
func (s *Server) strictHeadings(r *http.Request) bool {
	if v := r.URL.Query().Get("strict"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return s.cfg.StrictHeadings
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
