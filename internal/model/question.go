package model

type QuestionType = QuizType

const (
	TrueLabel  = "True"
	FalseLabel = "False"
)

// swagger:model Question
type Question struct {
	BaseModel
	QuizID        uint         `gorm:"index;not null" json:"quizId"`
	QuestionType  QuestionType `gorm:"size:20;default:'multiple_choice';not null" json:"questionType"`
	Text          string       `gorm:"type:text;not null" json:"text"`
	ImageURL      string       `gorm:"size:500" json:"imageUrl,omitempty"`
	ImageKey      string       `gorm:"size:500" json:"-"`
	Option1       string       `gorm:"size:60" json:"option1"`
	Option2       string       `gorm:"size:60" json:"option2"`
	Option3       string       `gorm:"size:60" json:"option3"`
	Option4       string       `gorm:"size:60" json:"option4"`
	CorrectOption int          `gorm:"default:1;not null" json:"correctOption"`
}

func (Question) TableName() string {
	return "questions"
}

// Normalize forces the option layout implied by the question type.
func (q *Question) Normalize() {
	switch q.QuestionType {
	case QuizTypeTrueFalse:
		q.Option1, q.Option2 = TrueLabel, FalseLabel
		q.Option3, q.Option4 = "", ""
		if q.CorrectOption != 2 {
			q.CorrectOption = 1
		}
	case QuizTypeFileUpload:
		q.Option1, q.Option2, q.Option3, q.Option4 = "", "", "", ""
		q.CorrectOption = 1
	}
}

func (q *Question) Options() []string {
	opts := []string{q.Option1, q.Option2, q.Option3, q.Option4}
	for len(opts) > 0 && opts[len(opts)-1] == "" {
		opts = opts[:len(opts)-1]
	}
	return opts
}

func (q *Question) IsFileUpload() bool {
	return q.QuestionType == QuizTypeFileUpload
}

// QuestionView is the student-facing shape; it never carries the answer key.
type QuestionView struct {
	ID           uint         `json:"id"`
	QuestionType QuestionType `json:"questionType"`
	Text         string       `json:"text"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	Options      []string     `json:"options"`
}

func (q *Question) View() QuestionView {
	return QuestionView{
		ID:           q.ID,
		QuestionType: q.QuestionType,
		Text:         q.Text,
		ImageURL:     q.ImageURL,
		Options:      q.Options(),
	}
}
