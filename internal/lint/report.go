package lint

import (
	"fmt"
	"time"

	"github.com/dgallion1/coursecheck/internal/course"
	"github.com/dgallion1/coursecheck/internal/quiz"
)

// FileResult is the outcome of linting one lesson file.
type FileResult struct {
	Path          string         `json:"path"`
	HasQuiz       bool           `json:"has_quiz"`
	QuestionCount int            `json:"question_count"`
	Error         *FileError     `json:"error,omitempty"`
	Warnings      []quiz.Warning `json:"warnings,omitempty"`
}

// FileError is the single failure reported for a lesson file.
type FileError struct {
	Kind     string `json:"kind"` // quiz.Kind, or "io" / "parse"
	Question int    `json:"question,omitempty"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

// OK reports whether the file passed.
func (r FileResult) OK() bool { return r.Error == nil }

// Message renders the failure with the file path, e.g.
// "lesson file 'a.md': question 2: no answer checked in single-answer question".
func (r FileResult) Message() string {
	if r.Error == nil {
		return ""
	}
	if r.Error.Question > 0 {
		return fmt.Sprintf("lesson file '%s': question %d: %s", r.Path, r.Error.Question, r.Error.Message)
	}
	return fmt.Sprintf("lesson file '%s': %s", r.Path, r.Error.Message)
}

// Report is the result of a full content run.
type Report struct {
	Root       string             `json:"root"`
	StartedAt  time.Time          `json:"started_at"`
	Duration   time.Duration      `json:"duration_ns"`
	LoadError  string             `json:"load_error,omitempty"`
	Structure  []course.Violation `json:"structure,omitempty"`
	Files      []FileResult       `json:"files"`
	FilesTotal int                `json:"files_total"`
	FilesBad   int                `json:"files_failed"`
	Warnings   int                `json:"warnings"`
}

// OK reports whether the run found no violations.
func (r *Report) OK() bool {
	return r.LoadError == "" && len(r.Structure) == 0 && r.FilesBad == 0
}

// Failures lists every finding as one line of text.
func (r *Report) Failures() []string {
	var out []string
	if r.LoadError != "" {
		out = append(out, "loading course structure: "+r.LoadError)
	}
	for _, v := range r.Structure {
		out = append(out, v.String())
	}
	for _, f := range r.Files {
		if !f.OK() {
			out = append(out, f.Message())
		}
	}
	return out
}
