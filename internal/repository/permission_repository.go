package repository

import (
	"errors"
	"quizfy_backend/internal/model"

	"gorm.io/gorm"
)

type PermissionRepository struct {
	DB *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{DB: db}
}

func (r *PermissionRepository) Find(quizID, studentID uint) (*model.QuizAttemptPermission, error) {
	var perm model.QuizAttemptPermission
	err := r.DB.Where("quiz_id = ? AND student_user_id = ?", quizID, studentID).First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

// AllowedAttempts falls back to the default when no permission row exists.
func (r *PermissionRepository) AllowedAttempts(quizID, studentID uint) (int, error) {
	perm, err := r.Find(quizID, studentID)
	if err != nil {
		return 0, err
	}
	if perm == nil {
		return model.DefaultAllowedAttempts, nil
	}
	return perm.AllowedAttempts, nil
}

// GetOrCreate reports whether the row was created by this call.
func (r *PermissionRepository) GetOrCreate(quizID, studentID uint) (*model.QuizAttemptPermission, bool, error) {
	perm, err := r.Find(quizID, studentID)
	if err != nil {
		return nil, false, err
	}
	if perm != nil {
		return perm, false, nil
	}
	perm = &model.QuizAttemptPermission{
		QuizID:          quizID,
		StudentUserID:   studentID,
		AllowedAttempts: model.DefaultAllowedAttempts,
	}
	if err := r.DB.Create(perm).Error; err != nil {
		return nil, false, err
	}
	return perm, true, nil
}

func (r *PermissionRepository) Save(perm *model.QuizAttemptPermission) error {
	return r.DB.Save(perm).Error
}

// AllowedMap returns allowed_attempts keyed by student for the given quiz.
func (r *PermissionRepository) AllowedMap(quizID uint, studentIDs []uint) (map[uint]int, error) {
	out := make(map[uint]int)
	if len(studentIDs) == 0 {
		return out, nil
	}
	var perms []model.QuizAttemptPermission
	if err := r.DB.Where("quiz_id = ? AND student_user_id IN ?", quizID, studentIDs).Find(&perms).Error; err != nil {
		return nil, err
	}
	for _, p := range perms {
		out[p.StudentUserID] = p.AllowedAttempts
	}
	return out, nil
}
