package course

import (
	"fmt"
	"slices"
)

// CheckStructure runs every cross-reference check on s.
func CheckStructure(s *Structure) []Violation {
	var out []Violation
	out = append(out, CheckLevelNames(s)...)
	out = append(out, CheckTopicRanges(s)...)
	out = append(out, CheckRangeLessons(s)...)
	out = append(out, CheckRangeOrder(s)...)
	out = append(out, CheckLessonsUnique(s)...)
	out = append(out, CheckAuthors(s)...)
	out = append(out, CheckPrerequisites(s)...)
	return out
}

func CheckLevelNames(s *Structure) []Violation {
	var out []Violation
	for _, c := range s.Courses {
		for _, lvl := range c.Levels {
			if _, ok := LevelOrdinals[lvl]; !ok {
				out = append(out, Violation{
					Check:   NameLevelNames,
					Path:    CourseIndexPath(s.Root, c.ID),
					Message: fmt.Sprintf("level %s in course %s must be either beginner, intermediate or advanced", lvl, c.ID),
				})
			}
		}
	}
	return out
}

func CheckTopicRanges(s *Structure) []Violation {
	var out []Violation
	for _, l := range s.Levels {
		for _, r := range l.Ranges {
			if _, ok := s.Topic(l.CourseID, r.TopicID); !ok {
				out = append(out, Violation{
					Check:   NameTopicRangesExist,
					Path:    LevelPath(s.Root, l.CourseID, l.Level),
					Message: fmt.Sprintf("topic with id %s doesn't exist (referenced in %s/%s level)", r.TopicID, l.CourseID, l.Level),
				})
			}
		}
	}
	return out
}

// CheckRangeLessons reports range bounds naming lessons the topic lacks.
// Ranges of missing topics are left to CheckTopicRanges.
func CheckRangeLessons(s *Structure) []Violation {
	var out []Violation
	for _, l := range s.Levels {
		for _, r := range l.Ranges {
			t, ok := s.Topic(l.CourseID, r.TopicID)
			if !ok {
				continue
			}
			ids := t.LessonIDs()
			for _, id := range []string{r.LessonStart, r.LessonEnd} {
				if !slices.Contains(ids, id) {
					out = append(out, Violation{
						Check:   NameRangeLessonsExist,
						Path:    LevelPath(s.Root, l.CourseID, l.Level),
						Message: fmt.Sprintf("lesson with id %s doesn't exist in topic %s (referenced in %s/%s topic range)", id, t.ID, l.CourseID, l.Level),
					})
				}
			}
		}
	}
	return out
}

func CheckRangeOrder(s *Structure) []Violation {
	var out []Violation
	for _, l := range s.Levels {
		for _, r := range l.Ranges {
			t, ok := s.Topic(l.CourseID, r.TopicID)
			if !ok {
				continue
			}
			ids := t.LessonIDs()
			start, end := slices.Index(ids, r.LessonStart), slices.Index(ids, r.LessonEnd)
			if start < 0 || end < 0 {
				continue
			}
			if start > end {
				out = append(out, Violation{
					Check:   NameRangeOrder,
					Path:    LevelPath(s.Root, l.CourseID, l.Level),
					Message: fmt.Sprintf("range %s..%s of topic %s: start lesson must not come after end lesson", r.LessonStart, r.LessonEnd, t.ID),
				})
			}
		}
	}
	return out
}

func CheckLessonsUnique(s *Structure) []Violation {
	var out []Violation
	for _, courseID := range s.courseIDs() {
		for _, t := range s.Topics[courseID] {
			seen := make(map[string]int)
			for _, l := range t.Lessons {
				seen[l.ID]++
				if seen[l.ID] == 2 {
					out = append(out, Violation{
						Check:   NameLessonUnique,
						Path:    TopicIndexPath(s.Root, courseID, t.ID),
						Message: fmt.Sprintf("lesson %s is duplicated in topic %s", l.ID, t.ID),
					})
				}
			}
		}
	}
	return out
}

func CheckAuthors(s *Structure) []Violation {
	known := make(map[string]bool, len(s.Authors))
	for _, a := range s.Authors {
		known[a.ID] = true
	}
	var out []Violation
	for _, courseID := range s.courseIDs() {
		for _, t := range s.Topics[courseID] {
			for _, l := range t.Lessons {
				for _, a := range l.AuthorIDs {
					if !known[a] {
						out = append(out, Violation{
							Check:   NameAuthorsExist,
							Path:    TopicIndexPath(s.Root, courseID, t.ID),
							Message: fmt.Sprintf("lesson %s/%s/%s author %s is not included in authors.json file", courseID, t.ID, l.ID, a),
						})
					}
				}
			}
		}
	}
	return out
}

// placement records where a lesson is taught.
type placement struct {
	course   string
	ordinals []int
}

// placements maps every lesson covered by a level range to its course and
// level ordinals.
func (s *Structure) placements() map[LessonRef]*placement {
	out := make(map[LessonRef]*placement)
	for _, l := range s.Levels {
		ord, ok := LevelOrdinals[l.Level]
		if !ok {
			continue
		}
		for _, r := range l.Ranges {
			t, ok := s.Topic(l.CourseID, r.TopicID)
			if !ok {
				continue
			}
			ids := t.LessonIDs()
			start, end := slices.Index(ids, r.LessonStart), slices.Index(ids, r.LessonEnd)
			if start < 0 || end < 0 || start > end {
				continue
			}
			for _, id := range ids[start : end+1] {
				ref := LessonRef{LessonID: id, TopicID: t.ID}
				p := out[ref]
				if p == nil {
					p = &placement{course: l.CourseID}
					out[ref] = p
				}
				p.ordinals = append(p.ordinals, ord)
			}
		}
	}
	return out
}

// CheckPrerequisites verifies that each prerequisite is taught, belongs to
// the lesson's course and is taught at or below one of the lesson's levels.
func CheckPrerequisites(s *Structure) []Violation {
	placed := s.placements()
	var out []Violation
	for _, courseID := range s.courseIDs() {
		for _, t := range s.Topics[courseID] {
			for _, l := range t.Lessons {
				path := TopicIndexPath(s.Root, courseID, t.ID)
				lp := placed[l.Ref()]
				for _, pre := range l.Prerequisites {
					fail := func(format string) {
						out = append(out, Violation{
							Check:   NamePrerequisites,
							Path:    path,
							Message: fmt.Sprintf(format, l.Ref(), pre),
						})
					}
					pp, ok := placed[pre]
					if !ok {
						fail("lesson's %s prerequisite %s doesn't exist")
						continue
					}
					if lp == nil {
						continue
					}
					if lp.course != pp.course {
						fail("lesson's %s prerequisite %s doesn't exist at the lesson's course")
						continue
					}
					if slices.Min(pp.ordinals) > slices.Max(lp.ordinals) {
						fail("lesson's %s prerequisite %s doesn't overlap with the lesson's levels")
					}
				}
			}
		}
	}
	return out
}

func (s *Structure) courseIDs() []string {
	ids := make([]string, 0, len(s.Courses))
	for _, c := range s.Courses {
		ids = append(ids, c.ID)
	}
	return ids
}
