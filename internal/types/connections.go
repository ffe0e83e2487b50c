package types

// ConnectionBackContent is the body of a connection back to earlier material.
type ConnectionBackContent struct {
	Intro string `json:"intro"`
	Title string `json:"title"`
	CTA   string `json:"cta"`
}

// ConnectionBackModule links back to a previous lesson.
type ConnectionBackModule struct {
	Colorscheme Colorscheme           `json:"colorscheme" validate:"colorscheme"`
	Content     ConnectionBackContent `json:"content"`
}

// Kind implements Module.
func (m *ConnectionBackModule) Kind() Kind { return KindConnectionBack }

// Validate implements Module.
func (m *ConnectionBackModule) Validate() error { return validateModule(m) }

// ConnectionNextContent is the body of a connection to the next lesson.
type ConnectionNextContent struct {
	Image string `json:"image"`
	Intro string `json:"intro"`
	Title string `json:"title"`
	CTA   string `json:"cta"`
}

// ConnectionNextModule links forward to the next lesson.
type ConnectionNextModule struct {
	Colorscheme Colorscheme           `json:"colorscheme" validate:"colorscheme"`
	Content     ConnectionNextContent `json:"content"`
}

// Kind implements Module.
func (m *ConnectionNextModule) Kind() Kind { return KindConnectionNext }

// Validate implements Module.
func (m *ConnectionNextModule) Validate() error { return validateModule(m) }
