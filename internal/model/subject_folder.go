package model

// swagger:model SubjectFolder
type SubjectFolder struct {
	BaseModel
	TeacherID uint   `gorm:"not null;uniqueIndex:idx_folder_teacher_name" json:"teacherId"`
	Name      string `gorm:"size:80;not null;uniqueIndex:idx_folder_teacher_name" json:"name"`
	Quizzes   []Quiz `gorm:"foreignKey:FolderID" json:"quizzes,omitempty"`
}

func (SubjectFolder) TableName() string {
	return "subject_folders"
}
