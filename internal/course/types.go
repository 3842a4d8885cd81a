package course

// Author is an entry of authors.json.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Course is a course index descriptor.
type Course struct {
	ID          string   `json:"-"`
	Name        string   `json:"name"`
	Levels      []string `json:"levels"`
	Image       string   `json:"image"`
	Video       string   `json:"video"`
	Description string   `json:"desc"`
	Language    string   `json:"language"`
	Scope       []string `json:"scope"`
}

// TopicRange selects the lessons lessonStart..lessonEnd of a topic.
type TopicRange struct {
	TopicID     string `json:"topicId"`
	LessonStart string `json:"lessonStart"`
	LessonEnd   string `json:"lessonEnd"`
}

// Level is a course level descriptor, e.g. beginner.json.
type Level struct {
	Level       string       `json:"-"`
	CourseID    string       `json:"-"`
	Name        string       `json:"name"`
	Description string       `json:"desc"`
	Ranges      []TopicRange `json:"ranges"`
}

// LessonRef points at a lesson of a topic.
type LessonRef struct {
	LessonID string `json:"lessonId"`
	TopicID  string `json:"topicId"`
}

func (r LessonRef) String() string {
	return r.TopicID + "/" + r.LessonID
}

// Lesson is a lesson entry of a topic index.
type Lesson struct {
	ID            string      `json:"id"`
	TopicID       string      `json:"-"`
	Title         string      `json:"title"`
	AuthorIDs     []string    `json:"authorIds"`
	Duration      int         `json:"duration"`
	Prerequisites []LessonRef `json:"prerequisites"`
}

// Ref returns the reference to this lesson.
func (l Lesson) Ref() LessonRef {
	return LessonRef{LessonID: l.ID, TopicID: l.TopicID}
}

// Topic is a topic index descriptor.
type Topic struct {
	ID          string   `json:"-"`
	Name        string   `json:"name"`
	Description string   `json:"desc"`
	Lessons     []Lesson `json:"lessons"`
}

// LessonIDs returns the topic's lesson IDs in order.
func (t Topic) LessonIDs() []string {
	ids := make([]string, len(t.Lessons))
	for i, l := range t.Lessons {
		ids[i] = l.ID
	}
	return ids
}

// Structure is the loaded course metadata. It is not modified after Load.
type Structure struct {
	Root    string
	Authors []Author
	Courses []Course
	Levels  []Level
	Topics  map[string][]Topic // by course ID
}

// Topic looks up a topic of a course.
func (s *Structure) Topic(courseID, topicID string) (Topic, bool) {
	for _, t := range s.Topics[courseID] {
		if t.ID == topicID {
			return t, true
		}
	}
	return Topic{}, false
}

// LevelOrdinals ranks the allowed level names.
var LevelOrdinals = map[string]int{
	"beginner":     0,
	"intermediate": 1,
	"advanced":     2,
}
