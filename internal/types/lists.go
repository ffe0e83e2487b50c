package types

// Resource is one entry of a key resources list.
type Resource struct {
	Image string `json:"image"`
	Href  string `json:"href"`
	Text  string `json:"text"`
}

// KeyResourcesContent is the body of a key resources list.
type KeyResourcesContent struct {
	Title     string     `json:"title"`
	Resources []Resource `json:"resources" validate:"required,dive"`
}

// KeyResourcesModule lists further reading for a lesson.
type KeyResourcesModule struct {
	Content KeyResourcesContent `json:"content"`
}

// Kind implements Module.
func (m *KeyResourcesModule) Kind() Kind { return KindKeyResources }

// Validate implements Module.
func (m *KeyResourcesModule) Validate() error { return validateModule(m) }

// Takeaway is a card with an illustration, a title and a description.
// Learning objectives use the same card.
type Takeaway struct {
	Image       string `json:"image"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TakeawaysContent is the body shared by key takeaways and learning objectives.
type TakeawaysContent struct {
	Title     string     `json:"title"`
	Intro     string     `json:"intro"`
	Takeaways []Takeaway `json:"takeaways" validate:"required,dive"`
}

// KeyTakeawaysModule summarises what a lesson taught.
type KeyTakeawaysModule struct {
	Content TakeawaysContent `json:"content"`
}

// Kind implements Module.
func (m *KeyTakeawaysModule) Kind() Kind { return KindKeyTakeaways }

// Validate implements Module.
func (m *KeyTakeawaysModule) Validate() error { return validateModule(m) }

// LearningObjectivesModule announces what a lesson will teach.
type LearningObjectivesModule struct {
	Content TakeawaysContent `json:"content"`
}

// Kind implements Module.
func (m *LearningObjectivesModule) Kind() Kind { return KindLearningObjectives }

// Validate implements Module.
func (m *LearningObjectivesModule) Validate() error { return validateModule(m) }

// LessonThumbnail is one lesson in a list of lessons.
type LessonThumbnail struct {
	Image string      `json:"image"`
	Title string      `json:"title"`
	Type  LessonType  `json:"type" validate:"lesson_type"`
	State LessonState `json:"state" validate:"lesson_state"`
}

// ListOfLessonsContent is the body of a list of lessons.
type ListOfLessonsContent struct {
	Title   string            `json:"title"`
	Lessons []LessonThumbnail `json:"lessons" validate:"required,dive"`
}

// ListOfLessonsModule shows the lessons of a chapter with their progress.
type ListOfLessonsModule struct {
	Content ListOfLessonsContent `json:"content"`
}

// Kind implements Module.
func (m *ListOfLessonsModule) Kind() Kind { return KindListOfLessons }

// Validate implements Module.
func (m *ListOfLessonsModule) Validate() error { return validateModule(m) }
