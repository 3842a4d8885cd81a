package course

import "fmt"

// Names identify the check that produced a violation.
const (
	NameJSONSyntax        = "json-syntax"
	NameJSONSchema        = "json-schema"
	NameLevelNames        = "level-names"
	NameTopicRangesExist  = "topic-ranges-exist"
	NameRangeLessonsExist = "range-lessons-exist"
	NameRangeOrder        = "range-order"
	NameLessonUnique      = "lesson-unique"
	NameAuthorsExist      = "authors-exist"
	NamePrerequisites     = "prerequisites"
)

// Violation is a course metadata inconsistency.
type Violation struct {
	Check   string `json:"check"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Path != "" {
		return fmt.Sprintf("[%s] %s: %s", v.Check, v.Path, v.Message)
	}
	return fmt.Sprintf("[%s] %s", v.Check, v.Message)
}
