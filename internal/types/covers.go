package types

// CaptionedImage is an image rendered with a caption underneath.
type CaptionedImage struct {
	Src     string `json:"src"`
	Caption string `json:"caption"`
}

// C1Content is the body of a C1 cover.
type C1Content struct {
	Image    string `json:"image"`
	LessonID string `json:"lessonId"`
	Intro    string `json:"intro"`
	Title    string `json:"title"`
	CTA      string `json:"cta"`
}

// C1Module is the cover shown at the start of a chapter.
type C1Module struct {
	Content C1Content `json:"content"`
}

// Kind implements Module.
func (m *C1Module) Kind() Kind { return KindC1 }

// Validate implements Module.
func (m *C1Module) Validate() error { return validateModule(m) }

// CoverCaseStudyContent is the body of a case study cover.
type CoverCaseStudyContent struct {
	Image CaptionedImage `json:"image"`
	Intro string         `json:"intro"`
	Title string         `json:"title"`
}

// CoverCaseStudyModule is the cover of a case study.
type CoverCaseStudyModule struct {
	Colorscheme Colorscheme           `json:"colorscheme" validate:"colorscheme"`
	Content     CoverCaseStudyContent `json:"content"`
}

// Kind implements Module.
func (m *CoverCaseStudyModule) Kind() Kind { return KindCoverCaseStudy }

// Validate implements Module.
func (m *CoverCaseStudyModule) Validate() error { return validateModule(m) }

// CoverPartContent is the body of a part cover.
type CoverPartContent struct {
	Image string `json:"image"`
	Intro string `json:"intro"`
	Title string `json:"title"`
}

// CoverPartModule is the cover of a module part.
type CoverPartModule struct {
	Colorscheme Colorscheme      `json:"colorscheme" validate:"colorscheme"`
	Content     CoverPartContent `json:"content"`
}

// Kind implements Module.
func (m *CoverPartModule) Kind() Kind { return KindCoverPart }

// Validate implements Module.
func (m *CoverPartModule) Validate() error { return validateModule(m) }

// CoverSubpartContent is the body of a subpart cover.
type CoverSubpartContent struct {
	Image CaptionedImage `json:"image"`
	Intro string         `json:"intro"`
	Title string         `json:"title"`
}

// CoverSubpartModule is the cover of a lesson part.
type CoverSubpartModule struct {
	Colorscheme Colorscheme         `json:"colorscheme" validate:"colorscheme"`
	Content     CoverSubpartContent `json:"content"`
}

// Kind implements Module.
func (m *CoverSubpartModule) Kind() Kind { return KindCoverSubpart }

// Validate implements Module.
func (m *CoverSubpartModule) Validate() error { return validateModule(m) }

// L1Content is the body of an L1 cover.
type L1Content struct {
	Image    string `json:"image"`
	LessonID string `json:"lessonId"`
	Intro    string `json:"intro"`
	Title    string `json:"title"`
}

// L1Module is the cover shown at the start of a lesson.
type L1Module struct {
	Content L1Content `json:"content"`
}

// Kind implements Module.
func (m *L1Module) Kind() Kind { return KindL1 }

// Validate implements Module.
func (m *L1Module) Validate() error { return validateModule(m) }

// M1Content is the body of an M1 cover.
type M1Content struct {
	Image    string `json:"image"`
	LessonID string `json:"lessonId"`
	Title    string `json:"title"`
	CTA      string `json:"cta"`
}

// M1Module is the cover shown at the start of a module.
type M1Module struct {
	Content M1Content `json:"content"`
}

// Kind implements Module.
func (m *M1Module) Kind() Kind { return KindM1 }

// Validate implements Module.
func (m *M1Module) Validate() error { return validateModule(m) }
