package course

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFiles creates files below root from a map of relative path to content.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// validContent is a consistent two-level course.
func validContent() map[string]string {
	return map[string]string{
		"authors.json": `{"authors":[{"id":"ana","name":"Ana"},{"id":"bo","name":"Bo"}]}`,
		"courses/monix/index.json": `{"name":"Monix","levels":["beginner","intermediate"],"image":"i.png",
			"video":"v.mp4","desc":"d","language":"en","scope":["scala"]}`,
		"courses/monix/beginner.json": `{"name":"Beginner","desc":"d",
			"ranges":[{"topicId":"basics","lessonStart":"intro","lessonEnd":"tasks"}]}`,
		"courses/monix/intermediate.json": `{"name":"Intermediate","desc":"d",
			"ranges":[{"topicId":"streams","lessonStart":"observable","lessonEnd":"observable"}]}`,
		"courses/monix/topics/index.json": `{"topics":["basics","streams"]}`,
		"courses/monix/topics/basics/index.json": `{"name":"Basics","desc":"d","lessons":[
			{"id":"intro","title":"Intro","authorIds":["ana"],"duration":5},
			{"id":"tasks","title":"Tasks","authorIds":["ana","bo"],"duration":10,
			 "prerequisites":[{"lessonId":"intro","topicId":"basics"}]}]}`,
		"courses/monix/topics/streams/index.json": `{"name":"Streams","desc":"d","lessons":[
			{"id":"observable","title":"Observable","authorIds":["bo"],"duration":15,
			 "prerequisites":[{"lessonId":"tasks","topicId":"basics"}]}]}`,
	}
}

func setupContent(t *testing.T, overrides map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files := validContent()
	for k, v := range overrides {
		files[k] = v
	}
	writeFiles(t, root, files)
	return root
}
