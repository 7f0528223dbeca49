package model

import (
	"time"
)

// swagger:model Submission
type Submission struct {
	BaseModel
	QuizID          uint             `gorm:"index;not null" json:"quizId"`
	Quiz            *Quiz            `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	StudentUserID   *uint            `gorm:"index" json:"studentUserId"`
	StudentUser     *User            `gorm:"foreignKey:StudentUserID" json:"-"`
	StudentName     string           `gorm:"size:200" json:"studentName"`
	Score           int              `gorm:"default:0;not null" json:"score"`
	Total           int              `gorm:"default:0;not null" json:"total"`
	StartedAt       *time.Time       `json:"startedAt"`
	SubmittedAt     *time.Time       `json:"submittedAt"`
	AttemptNo       int              `gorm:"default:1;not null" json:"attemptNo"`
	IsSubmitted     bool             `gorm:"default:false;not null;index" json:"isSubmitted"`
	TeacherComment  string           `gorm:"type:text" json:"teacherComment"`
	ManualGrade     string           `gorm:"size:50" json:"manualGrade"`
	TeacherFileURL  string           `gorm:"size:500" json:"teacherFileUrl,omitempty"`
	TeacherFileKey  string           `gorm:"size:500" json:"-"`
	TeacherFileName string           `gorm:"size:255" json:"teacherFileName,omitempty"`
	GradedAt        *time.Time       `json:"gradedAt"`
	Answers         []Answer         `gorm:"foreignKey:SubmissionID" json:"answers,omitempty"`
	FileSubmissions []FileSubmission `gorm:"foreignKey:SubmissionID" json:"fileSubmissions,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) Percentage() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Total)
}

// swagger:model Answer
type Answer struct {
	BaseModel
	SubmissionID uint      `gorm:"not null;uniqueIndex:idx_answer_submission_question" json:"submissionId"`
	QuestionID   uint      `gorm:"not null;uniqueIndex:idx_answer_submission_question" json:"questionId"`
	Question     *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	Selected     *int      `json:"selected"`
	IsCorrect    bool      `gorm:"default:false;not null" json:"isCorrect"`
}

func (Answer) TableName() string {
	return "answers"
}
