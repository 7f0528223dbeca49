package repository

import (
	"quizfy_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindInQuiz(id, quizID uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.Where("id = ? AND quiz_id = ?", id, quizID).First(&question).Error
	return &question, err
}

// ListByQuiz returns questions in creation order.
func (r *QuestionRepository) ListByQuiz(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).Order("id").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) ListByQuizzes(quizIDs []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(quizIDs) == 0 {
		return questions, nil
	}
	err := r.DB.Where("quiz_id IN ?", quizIDs).Order("id").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountByQuiz(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

// Delete removes the question with its answers and file submissions and
// returns the storage keys they referenced.
func (r *QuestionRepository) Delete(question *model.Question) ([]string, error) {
	keys := appendKeys(nil, question.ImageKey)
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var files []model.FileSubmission
		if err := tx.Where("question_id = ?", question.ID).Find(&files).Error; err != nil {
			return err
		}
		for _, f := range files {
			keys = appendKeys(keys, f.FileKey, f.TeacherFileKey)
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.FileSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, question.ID).Error
	})
	return keys, err
}
