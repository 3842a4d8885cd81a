package course

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Paths of descriptors relative to the content root.
func CoursesDir(root string) string { return filepath.Join(root, "courses") }

func CourseIndexPath(root, courseID string) string {
	return filepath.Join(root, "courses", courseID, "index.json")
}

func LevelPath(root, courseID, level string) string {
	return filepath.Join(root, "courses", courseID, level+".json")
}

func TopicsIndexPath(root, courseID string) string {
	return filepath.Join(root, "courses", courseID, "topics", "index.json")
}

func TopicIndexPath(root, courseID, topicID string) string {
	return filepath.Join(root, "courses", courseID, "topics", topicID, "index.json")
}

func AuthorsPath(root string) string { return filepath.Join(root, "authors.json") }

// Load reads all course descriptors below root. Courses are the directories
// of root/courses holding an index.json.
func Load(root string) (*Structure, error) {
	ids, err := discoverCourses(root)
	if err != nil {
		return nil, err
	}

	s := &Structure{
		Root:   root,
		Topics: make(map[string][]Topic),
	}

	if s.Authors, err = loadAuthors(root); err != nil {
		return nil, err
	}

	for _, id := range ids {
		c, err := loadCourse(root, id)
		if err != nil {
			return nil, err
		}
		s.Courses = append(s.Courses, c)

		for _, lvl := range c.Levels {
			l, err := loadLevel(root, id, lvl)
			if err != nil {
				return nil, err
			}
			s.Levels = append(s.Levels, l)
		}

		topics, err := loadTopics(root, id)
		if err != nil {
			return nil, err
		}
		s.Topics[id] = topics
	}
	return s, nil
}

func discoverCourses(root string) ([]string, error) {
	entries, err := os.ReadDir(CoursesDir(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("courses directory not found in %s", root)
		}
		return nil, fmt.Errorf("reading courses directory: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(CourseIndexPath(root, e.Name())); err == nil {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// readJSON decodes path into v, naming what in errors.
func readJSON(path, what string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s not found (%s)", what, path)
		}
		return fmt.Errorf("reading %s: %w", what, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s is malformed, cause: %w", what, err)
	}
	return nil
}

func required(what string, fields map[string]bool) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !fields[k] {
			return fmt.Errorf("%s is malformed, cause: missing key %q", what, k)
		}
	}
	return nil
}

func loadAuthors(root string) ([]Author, error) {
	path := AuthorsPath(root)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	var doc struct {
		Authors []Author `json:"authors"`
	}
	if err := readJSON(path, "Authors file", &doc); err != nil {
		return nil, err
	}
	return doc.Authors, nil
}

func loadCourse(root, id string) (Course, error) {
	what := fmt.Sprintf("Course %s index", id)
	var raw struct {
		Course
		Levels *[]string `json:"levels"`
		Name   *string   `json:"name"`
	}
	if err := readJSON(CourseIndexPath(root, id), what, &raw); err != nil {
		return Course{}, err
	}
	if err := required(what, map[string]bool{"name": raw.Name != nil, "levels": raw.Levels != nil}); err != nil {
		return Course{}, err
	}
	c := raw.Course
	c.ID = id
	c.Name = *raw.Name
	c.Levels = *raw.Levels
	return c, nil
}

func loadLevel(root, courseID, level string) (Level, error) {
	what := fmt.Sprintf("Level %s file for course %s", level, courseID)
	var raw struct {
		Level
		Ranges *[]TopicRange `json:"ranges"`
	}
	if err := readJSON(LevelPath(root, courseID, level), what, &raw); err != nil {
		return Level{}, err
	}
	if err := required(what, map[string]bool{"ranges": raw.Ranges != nil}); err != nil {
		return Level{}, err
	}
	l := raw.Level
	l.Level = level
	l.CourseID = courseID
	l.Ranges = *raw.Ranges
	return l, nil
}

func loadTopics(root, courseID string) ([]Topic, error) {
	what := fmt.Sprintf("Topics index for course %s", courseID)
	var index struct {
		Topics *[]string `json:"topics"`
	}
	if err := readJSON(TopicsIndexPath(root, courseID), what, &index); err != nil {
		return nil, err
	}
	if err := required(what, map[string]bool{"topics": index.Topics != nil}); err != nil {
		return nil, err
	}

	topics := make([]Topic, 0, len(*index.Topics))
	for _, id := range *index.Topics {
		t, err := loadTopic(root, courseID, id)
		if err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, nil
}

func loadTopic(root, courseID, topicID string) (Topic, error) {
	what := fmt.Sprintf("Topic %s index", topicID)
	var raw struct {
		Topic
		Lessons *[]Lesson `json:"lessons"`
	}
	if err := readJSON(TopicIndexPath(root, courseID, topicID), what, &raw); err != nil {
		return Topic{}, err
	}
	if err := required(what, map[string]bool{"lessons": raw.Lessons != nil}); err != nil {
		return Topic{}, err
	}
	t := raw.Topic
	t.ID = topicID
	t.Lessons = *raw.Lessons
	for i := range t.Lessons {
		t.Lessons[i].TopicID = topicID
		if t.Lessons[i].Prerequisites == nil {
			t.Lessons[i].Prerequisites = []LessonRef{}
		}
	}
	return t, nil
}
