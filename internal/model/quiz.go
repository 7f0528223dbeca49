package model

import (
	"time"
)

type QuizType string

const (
	QuizTypeMultipleChoice QuizType = "multiple_choice"
	QuizTypeTrueFalse      QuizType = "true_false"
	QuizTypeFileUpload     QuizType = "file_upload"
)

func (t QuizType) Valid() bool {
	switch t {
	case QuizTypeMultipleChoice, QuizTypeTrueFalse, QuizTypeFileUpload:
		return true
	}
	return false
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title           string         `gorm:"size:60;not null" json:"title"`
	Code            string         `gorm:"size:12;uniqueIndex;not null" json:"code"`
	QuizType        QuizType       `gorm:"size:20;default:'multiple_choice';not null" json:"quizType"`
	FolderID        *uint          `gorm:"index" json:"folderId"`
	Folder          *SubjectFolder `gorm:"foreignKey:FolderID" json:"folder,omitempty"`
	TeacherID       uint           `gorm:"index;not null" json:"teacherId"`
	Teacher         *User          `gorm:"foreignKey:TeacherID" json:"-"`
	DueAt           *time.Time     `json:"dueAt"`
	DurationMinutes *int           `json:"durationMinutes"`
	IsActive        bool           `gorm:"not null" json:"isActive"`
	Questions       []Question     `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (q *Quiz) IsExpired(now time.Time) bool {
	return q.DueAt != nil && now.After(*q.DueAt)
}

// CanStart reports whether students may start or keep working on the quiz.
func (q *Quiz) CanStart(now time.Time) bool {
	return q.IsActive && !q.IsExpired(now)
}

func (q *Quiz) IsTimed() bool {
	return q.DurationMinutes != nil && *q.DurationMinutes > 0
}
