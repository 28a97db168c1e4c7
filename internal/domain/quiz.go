package domain

// Quiz sizing requested from the model.
const (
	QuizQuestionCount = 10
	QuizOptionCount   = 4
)

// Question is one multiple-choice question. CorrectAnswer holds the literal
// text of the correct option, not its index.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Quiz is an ordered list of questions for a lesson title. Quizzes are never
// cached.
type Quiz []Question
