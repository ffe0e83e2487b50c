package types

// The shapes below are produced by the frame pipeline but have no declaration
// on the renderer side yet. They follow the same rules: every field required.

// QuoteContent is the body of a large quote.
type QuoteContent struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// QuoteModule is a large quote with the name of its author.
type QuoteModule struct {
	Content QuoteContent `json:"content"`
}

// Kind implements Module.
func (m *QuoteModule) Kind() Kind { return KindQuote }

// Validate implements Module.
func (m *QuoteModule) Validate() error { return validateModule(m) }

// Concept is a definition card in a key concepts frame.
type Concept struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Source string `json:"source"`
}

// KeyConceptsContent is the body of a key concepts frame.
type KeyConceptsContent struct {
	Title    string    `json:"title"`
	Intro    string    `json:"intro"`
	Concepts []Concept `json:"concepts" validate:"required,dive"`
}

// KeyConceptsModule defines the concepts introduced by a lesson.
type KeyConceptsModule struct {
	Colorscheme Colorscheme        `json:"colorscheme" validate:"colorscheme"`
	Content     KeyConceptsContent `json:"content"`
}

// Kind implements Module.
func (m *KeyConceptsModule) Kind() Kind { return KindKeyConcepts }

// Validate implements Module.
func (m *KeyConceptsModule) Validate() error { return validateModule(m) }

// PhotoVerticalContent is the body of a vertical photo frame.
type PhotoVerticalContent struct {
	Image CaptionedImage `json:"image"`
}

// PhotoVerticalModule is a full-height photo with a caption.
type PhotoVerticalModule struct {
	Colorscheme Colorscheme          `json:"colorscheme" validate:"colorscheme"`
	Content     PhotoVerticalContent `json:"content"`
}

// Kind implements Module.
func (m *PhotoVerticalModule) Kind() Kind { return KindPhotoVertical }

// Validate implements Module.
func (m *PhotoVerticalModule) Validate() error { return validateModule(m) }

// TextElement is one paragraph of a text frame; ID names its text style.
type TextElement struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// TextContent is the body of a text frame.
type TextContent struct {
	Texts []TextElement `json:"texts" validate:"required,dive"`
}

// TextModule is a run of styled paragraphs.
type TextModule struct {
	Colorscheme Colorscheme `json:"colorscheme" validate:"colorscheme"`
	Content     TextContent `json:"content"`
}

// Kind implements Module.
func (m *TextModule) Kind() Kind { return KindText }

// Validate implements Module.
func (m *TextModule) Validate() error { return validateModule(m) }
