package model

import (
	"time"
)

// swagger:model FileSubmission
type FileSubmission struct {
	BaseModel
	SubmissionID    uint       `gorm:"index;not null" json:"submissionId"`
	QuestionID      *uint      `gorm:"index" json:"questionId"`
	Question        *Question  `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	FileURL         string     `gorm:"size:500;not null" json:"fileUrl"`
	FileKey         string     `gorm:"size:500;not null" json:"-"`
	FileName        string     `gorm:"size:255" json:"fileName"`
	UploadedAt      time.Time  `json:"uploadedAt"`
	TeacherComment  string     `gorm:"type:text" json:"teacherComment"`
	Grade           string     `gorm:"size:50" json:"grade"`
	TeacherFileURL  string     `gorm:"size:500" json:"teacherFileUrl,omitempty"`
	TeacherFileKey  string     `gorm:"size:500" json:"-"`
	TeacherFileName string     `gorm:"size:255" json:"teacherFileName,omitempty"`
	GradedAt        *time.Time `json:"gradedAt"`
}

func (FileSubmission) TableName() string {
	return "file_submissions"
}
