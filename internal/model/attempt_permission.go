package model

// swagger:model QuizAttemptPermission
type QuizAttemptPermission struct {
	BaseModel
	QuizID          uint `gorm:"not null;uniqueIndex:idx_perm_quiz_student" json:"quizId"`
	StudentUserID   uint `gorm:"not null;uniqueIndex:idx_perm_quiz_student" json:"studentUserId"`
	AllowedAttempts int  `gorm:"default:1;not null" json:"allowedAttempts"`
}

func (QuizAttemptPermission) TableName() string {
	return "quiz_attempt_permissions"
}

// DefaultAllowedAttempts applies when no permission row exists.
const DefaultAllowedAttempts = 1
