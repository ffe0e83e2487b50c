package frames

import (
	"regexp"
	"strings"

	"github.com/jonathan/academy-frames/internal/figma"
	"github.com/jonathan/academy-frames/internal/types"
)

var quizName = regexp.MustCompile(`(?i)quiz`)

func extractKeyResources(r reader, _ types.Colorscheme) (types.Module, error) {
	var m types.KeyResourcesModule
	var err error
	if m.Content.Title, err = r.text(patternTitle); err != nil {
		return nil, err
	}

	cards, err := r.groups("resources?", true)
	if err != nil {
		return nil, err
	}
	m.Content.Resources = make([]types.Resource, 0, len(cards))
	for _, card := range cards {
		res, err := resource(card)
		if err != nil {
			return nil, err
		}
		m.Content.Resources = append(m.Content.Resources, res)
	}
	return &m, nil
}

func resource(r reader) (types.Resource, error) {
	var res types.Resource

	hasGroup, err := r.has(figma.NodeGroup, patternImage)
	if err != nil {
		return res, err
	}
	if hasGroup {
		res.Image, err = r.image()
	} else {
		res.Image, err = r.imageSource()
	}
	if err != nil {
		return res, err
	}

	textNode, err := r.find(figma.NodeText, "^text$")
	if err != nil {
		return res, err
	}
	res.Text = r.sanitizer.Text(textNode.Characters)

	// An explicit href layer wins over a link on the text itself.
	if res.Href, err = r.textOr("href", ""); err != nil {
		return res, err
	}
	if res.Href == "" {
		res.Href = strings.TrimSpace(textNode.HyperlinkURL())
	}
	return res, nil
}

func takeaways(r reader) (types.TakeawaysContent, error) {
	var c types.TakeawaysContent
	var err error
	if c.Title, err = r.text(patternTitle); err != nil {
		return c, err
	}
	if c.Intro, err = r.text(patternIntro); err != nil {
		return c, err
	}

	cards, err := r.groups("objectives|takeaways", true)
	if err != nil {
		return c, err
	}
	c.Takeaways = make([]types.Takeaway, 0, len(cards))
	for _, card := range cards {
		var t types.Takeaway
		if t.Image, err = card.image(); err != nil {
			return c, err
		}
		if t.Title, err = card.textOr(patternTitle, ""); err != nil {
			return c, err
		}
		if t.Description, err = card.textOr("description", ""); err != nil {
			return c, err
		}
		c.Takeaways = append(c.Takeaways, t)
	}
	return c, nil
}

func extractKeyTakeaways(r reader, _ types.Colorscheme) (types.Module, error) {
	content, err := takeaways(r)
	if err != nil {
		return nil, err
	}
	return &types.KeyTakeawaysModule{Content: content}, nil
}

func extractLearningObjectives(r reader, _ types.Colorscheme) (types.Module, error) {
	content, err := takeaways(r)
	if err != nil {
		return nil, err
	}
	return &types.LearningObjectivesModule{Content: content}, nil
}

func extractListOfLessons(r reader, _ types.Colorscheme) (types.Module, error) {
	var m types.ListOfLessonsModule
	var err error
	if m.Content.Title, err = r.text(patternTitle); err != nil {
		return nil, err
	}

	cards, err := r.groups("lessons?", true)
	if err != nil {
		return nil, err
	}
	m.Content.Lessons = make([]types.LessonThumbnail, 0, len(cards))
	for _, card := range cards {
		lesson, err := lessonThumbnail(card)
		if err != nil {
			return nil, err
		}
		m.Content.Lessons = append(m.Content.Lessons, lesson)
	}
	return &m, nil
}

func lessonThumbnail(r reader) (types.LessonThumbnail, error) {
	var l types.LessonThumbnail
	var err error
	if l.Image, err = r.image(); err != nil {
		return l, err
	}
	if l.Title, err = r.text(patternTitle); err != nil {
		return l, err
	}
	if l.Type, err = lessonType(r); err != nil {
		return l, err
	}
	if l.State, err = lessonState(r); err != nil {
		return l, err
	}
	return l, nil
}

// lessonType reads a TEXT type layer, else treats groups named after a quiz
// as quizzes.
func lessonType(r reader) (types.LessonType, error) {
	node, err := r.node.SelectNode(figma.NodeText, "^type$")
	if err != nil {
		return "", err
	}
	if node != nil {
		return types.ParseLessonType(strings.ToLower(r.sanitizer.Text(node.Characters)))
	}
	if quizName.MatchString(r.node.Name) {
		return types.LessonTypeQuiz, nil
	}
	return types.LessonTypeLesson, nil
}

// lessonState derives progress from the progress bar drawn on the thumbnail.
func lessonState(r reader) (types.LessonState, error) {
	inProgress, err := r.has(figma.NodeRectangle, "in_progress")
	if err != nil {
		return "", err
	}
	if inProgress {
		return types.LessonInProgress, nil
	}
	done, err := r.has(figma.NodeRectangle, "progress|completed")
	if err != nil {
		return "", err
	}
	if done {
		return types.LessonCompleted, nil
	}
	return types.LessonTodo, nil
}

func extractOutro(r reader, _ types.Colorscheme) (types.Module, error) {
	var m types.ModuleChapterOutroModule
	c := &m.Content
	var err error
	if c.Intro, err = r.text(patternIntro); err != nil {
		return nil, err
	}
	if c.Title.FirstLine, err = r.text("first_line"); err != nil {
		return nil, err
	}
	if c.Title.SecondLine, err = r.text("second_line"); err != nil {
		return nil, err
	}
	if c.Subtitle, err = r.text("subtitle"); err != nil {
		return nil, err
	}
	if c.Body, err = r.text("body"); err != nil {
		return nil, err
	}

	quiz, err := r.group("quiz")
	if err != nil {
		return nil, err
	}
	if c.Quiz.Intro, err = quiz.text(patternIntro); err != nil {
		return nil, err
	}
	if c.Quiz.Title, err = quiz.text(patternTitle); err != nil {
		return nil, err
	}
	if c.Quiz.CTA, err = quiz.text(patternCTA); err != nil {
		return nil, err
	}
	if c.Quiz.ButtonCTA, err = quiz.text("buttonCta"); err != nil {
		return nil, err
	}
	if c.Quiz.Image, err = quiz.image(); err != nil {
		return nil, err
	}
	return &m, nil
}

func extractQuote(r reader, _ types.Colorscheme) (types.Module, error) {
	var m types.QuoteModule
	var err error
	if m.Content.Quote, err = r.text("quote"); err != nil {
		return nil, err
	}
	if m.Content.Author, err = r.text("author"); err != nil {
		return nil, err
	}
	return &m, nil
}

func extractKeyConcepts(r reader, colorscheme types.Colorscheme) (types.Module, error) {
	m := types.KeyConceptsModule{Colorscheme: colorscheme}
	var err error
	if m.Content.Title, err = r.text(patternTitle); err != nil {
		return nil, err
	}
	if m.Content.Intro, err = r.text(patternIntro); err != nil {
		return nil, err
	}

	cards, err := r.groups("concepts?", true)
	if err != nil {
		return nil, err
	}
	m.Content.Concepts = make([]types.Concept, 0, len(cards))
	for _, card := range cards {
		var concept types.Concept
		if concept.Title, err = card.text(patternTitle); err != nil {
			return nil, err
		}
		if concept.Body, err = card.text("body"); err != nil {
			return nil, err
		}
		if concept.Source, err = card.textOr("source", ""); err != nil {
			return nil, err
		}
		m.Content.Concepts = append(m.Content.Concepts, concept)
	}
	return &m, nil
}

func extractPhotoVertical(r reader, colorscheme types.Colorscheme) (types.Module, error) {
	m := types.PhotoVerticalModule{Colorscheme: colorscheme}

	hasGroup, err := r.has(figma.NodeGroup, patternImage)
	if err != nil {
		return nil, err
	}
	if hasGroup {
		m.Content.Image, err = r.imageWithCaption()
	} else {
		m.Content.Image, err = r.captionedImage()
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func extractText(r reader, colorscheme types.Colorscheme) (types.Module, error) {
	m := types.TextModule{Colorscheme: colorscheme}

	blocks, err := r.groups(figma.AnyName, false)
	if err != nil {
		return nil, err
	}
	m.Content.Texts = make([]types.TextElement, 0, len(blocks))
	for _, block := range blocks {
		text, err := block.text("text")
		if err != nil {
			return nil, err
		}
		m.Content.Texts = append(m.Content.Texts, types.TextElement{ID: block.node.Name, Text: text})
	}
	return &m, nil
}
