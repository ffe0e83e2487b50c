package types

// OutroTitle is a title broken over two lines.
type OutroTitle struct {
	FirstLine  string `json:"first_line"`
	SecondLine string `json:"second_line"`
}

// OutroQuiz points the learner at the quiz that closes a chapter.
type OutroQuiz struct {
	Intro     string `json:"intro"`
	Title     string `json:"title"`
	CTA       string `json:"cta"`
	ButtonCTA string `json:"buttonCta"`
	Image     string `json:"image"`
}

// ModuleChapterOutroContent is the body of a module or chapter outro.
type ModuleChapterOutroContent struct {
	Intro    string     `json:"intro"`
	Title    OutroTitle `json:"title"`
	Subtitle string     `json:"subtitle"`
	Body     string     `json:"body"`
	Quiz     OutroQuiz  `json:"quiz"`
}

// ModuleChapterOutroModule closes a module or chapter.
type ModuleChapterOutroModule struct {
	Content ModuleChapterOutroContent `json:"content"`
}

// Kind implements Module.
func (m *ModuleChapterOutroModule) Kind() Kind { return KindModuleChapterOutro }

// Validate implements Module.
func (m *ModuleChapterOutroModule) Validate() error { return validateModule(m) }
