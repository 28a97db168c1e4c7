package generation

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"text/template"

	"github.com/phrazzld/coursegen-api/internal/domain"
)

//go:embed prompts/*.tmpl
var embeddedPrompts embed.FS

// Template file names. An override directory must provide all of them.
const (
	coursePlanTemplate = "course_plan.tmpl"
	quizTemplate       = "quiz.tmpl"
	summaryTemplate    = "summary.tmpl"
)

// Prompts renders the fixed instructional prompts sent to the model.
type Prompts struct {
	templates *template.Template
}

// coursePlanData is the data passed to the course plan template
type coursePlanData struct {
	Topic       string
	LessonCount int
}

// quizData is the data passed to the quiz template
type quizData struct {
	Title         string
	QuestionCount int
	OptionCount   int
}

// summaryData is the data passed to the summary template
type summaryData struct {
	Transcript string
}

// LoadPrompts parses the prompt templates. When dir is empty the templates
// compiled into the binary are used; otherwise every template is read from dir.
func LoadPrompts(dir string) (*Prompts, error) {
	var source fs.FS
	if dir == "" {
		sub, err := fs.Sub(embeddedPrompts, "prompts")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		source = sub
	} else {
		source = os.DirFS(dir)
	}

	tmpl, err := template.New("prompts").ParseFS(source, coursePlanTemplate, quizTemplate, summaryTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt templates: %v", ErrInvalidConfig, err)
	}

	return &Prompts{templates: tmpl}, nil
}

// MustLoadDefaultPrompts returns the embedded prompts and panics if they fail
// to parse, which can only happen if the binary was built with broken templates.
func MustLoadDefaultPrompts() *Prompts {
	p, err := LoadPrompts("")
	if err != nil {
		panic(err)
	}
	return p
}

// CoursePlan renders the prompt asking for a domain.PlanLessonCount lesson plan.
func (p *Prompts) CoursePlan(topic string) (string, error) {
	if topic == "" {
		return "", fmt.Errorf("%w: topic", ErrEmptyPromptInput)
	}
	return p.render(coursePlanTemplate, coursePlanData{
		Topic:       topic,
		LessonCount: domain.PlanLessonCount,
	})
}

// Quiz renders the prompt asking for a multiple-choice quiz on a lesson title.
func (p *Prompts) Quiz(title string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("%w: lesson title", ErrEmptyPromptInput)
	}
	return p.render(quizTemplate, quizData{
		Title:         title,
		QuestionCount: domain.QuizQuestionCount,
		OptionCount:   domain.QuizOptionCount,
	})
}

// Summary renders the prompt asking for a summary of transcript text.
// The caller is responsible for truncating the transcript.
func (p *Prompts) Summary(transcript string) (string, error) {
	if transcript == "" {
		return "", fmt.Errorf("%w: transcript", ErrEmptyPromptInput)
	}
	return p.render(summaryTemplate, summaryData{Transcript: transcript})
}

func (p *Prompts) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return buf.String(), nil
}
