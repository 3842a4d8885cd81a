package lint

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/dgallion1/coursecheck/internal/parser"
	"github.com/dgallion1/coursecheck/internal/quiz"
)

// DefaultLessonGlobs match lesson bodies relative to the content root.
var DefaultLessonGlobs = []string{
	"courses/*/topics/*.md",
	"courses/*/topics/*/*.md",
}

// Discover lists lesson files below root matching any of globs.
func Discover(root string, globs []string) ([]string, error) {
	if len(globs) == 0 {
		globs = DefaultLessonGlobs
	}
	seen := make(map[string]bool)
	var files []string
	for _, g := range globs {
		matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(g)))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if seen[m] || !parser.IsSupportedExtension(m) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// LintLesson validates the question section of one lesson source.
func LintLesson(path string, src []byte, opts quiz.Options, log *slog.Logger) FileResult {
	res := FileResult{Path: path}

	p, err := parser.ForFile(path)
	if err != nil {
		res.Error = &FileError{Kind: "parse", Message: err.Error()}
		return res
	}
	doc, err := p.Parse(bytes.NewReader(src), filepath.Base(path))
	if err != nil {
		res.Error = &FileError{Kind: "parse", Message: err.Error()}
		return res
	}

	qr, err := quiz.ValidateDocument(doc, opts)
	res.HasQuiz = qr.HasQuiz
	res.QuestionCount = len(qr.Questions)
	res.Warnings = qr.Warnings
	for _, w := range qr.Warnings {
		log.Warn("lesson warning", "file", path, "question", w.Question, "line", w.Line, "warning", w.Message)
	}
	if err != nil {
		var v *quiz.Violation
		if errors.As(err, &v) {
			res.Error = &FileError{Kind: string(v.Kind), Question: v.Question, Line: v.Line, Message: v.Err.Error()}
		} else {
			res.Error = &FileError{Kind: "parse", Message: err.Error()}
		}
	}
	return res
}

// LintFile reads and validates a lesson file.
func LintFile(path string, opts quiz.Options, log *slog.Logger) FileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileResult{Path: path, Error: &FileError{Kind: "io", Message: "lesson file not found"}}
		}
		return FileResult{Path: path, Error: &FileError{Kind: "io", Message: err.Error()}}
	}
	return LintLesson(path, src, opts, log)
}
