package repository

import (
	"quizfy_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) WithTx(tx *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: tx}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindForTeacher(id, teacherID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("id = ? AND teacher_id = ?", id, teacherID).First(&quiz).Error
	return &quiz, err
}

// FindByCode normalizes the code before lookup.
func (r *QuizRepository) FindByCode(code string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.DB.Model(&model.Quiz{}).Where("id = ?", id).Updates(fields).Error
}

func (r *QuizRepository) SetFolder(id uint, folderID *uint) error {
	return r.DB.Model(&model.Quiz{}).Where("id = ?", id).Update("folder_id", folderID).Error
}

// ListByTeacher returns the teacher's quizzes, newest first.
func (r *QuizRepository) ListByTeacher(teacherID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("teacher_id = ?", teacherID).Order("created_at desc, id desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListByFolder(folderID uint, ascending bool) ([]model.Quiz, error) {
	order := "created_at desc, id desc"
	if ascending {
		order = "created_at asc, id asc"
	}
	var quizzes []model.Quiz
	err := r.DB.Where("folder_id = ?", folderID).Order(order).Find(&quizzes).Error
	return quizzes, err
}

// Delete removes the quiz with all dependent rows and returns the storage
// keys that were referenced by them.
func (r *QuizRepository) Delete(id uint) ([]string, error) {
	var keys []string
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var submissionIDs []uint
		if err := tx.Model(&model.Submission{}).Where("quiz_id = ?", id).Pluck("id", &submissionIDs).Error; err != nil {
			return err
		}
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(submissionIDs) > 0 {
			var files []model.FileSubmission
			if err := tx.Where("submission_id IN ?", submissionIDs).Find(&files).Error; err != nil {
				return err
			}
			for _, f := range files {
				keys = appendKeys(keys, f.FileKey, f.TeacherFileKey)
			}
			var subs []model.Submission
			if err := tx.Select("teacher_file_key").Where("id IN ?", submissionIDs).Find(&subs).Error; err != nil {
				return err
			}
			for _, s := range subs {
				keys = appendKeys(keys, s.TeacherFileKey)
			}
			if err := tx.Where("submission_id IN ?", submissionIDs).Delete(&model.FileSubmission{}).Error; err != nil {
				return err
			}
			if err := tx.Where("submission_id IN ?", submissionIDs).Delete(&model.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", id).Delete(&model.Submission{}).Error; err != nil {
				return err
			}
		}

		if len(questionIDs) > 0 {
			var questions []model.Question
			if err := tx.Select("image_key").Where("id IN ?", questionIDs).Find(&questions).Error; err != nil {
				return err
			}
			for _, q := range questions {
				keys = appendKeys(keys, q.ImageKey)
			}
			if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizAttemptPermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
	return keys, err
}

type QuizCount struct {
	QuizID uint
	Count  int64
}

func (r *QuizRepository) countBy(table interface{}, where string, quizIDs []uint, args ...interface{}) (map[uint]int64, error) {
	out := make(map[uint]int64, len(quizIDs))
	if len(quizIDs) == 0 {
		return out, nil
	}
	var rows []QuizCount
	q := r.DB.Model(table).Select("quiz_id, COUNT(*) AS count").Where("quiz_id IN ?", quizIDs)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Group("quiz_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.QuizID] = row.Count
	}
	return out, nil
}

// SubmittedCounts counts finalized submissions per quiz.
func (r *QuizRepository) SubmittedCounts(quizIDs []uint) (map[uint]int64, error) {
	return r.countBy(&model.Submission{}, "is_submitted = ?", quizIDs, true)
}

// AssignedCounts counts attempt permission rows per quiz.
func (r *QuizRepository) AssignedCounts(quizIDs []uint) (map[uint]int64, error) {
	return r.countBy(&model.QuizAttemptPermission{}, "", quizIDs)
}

func (r *QuizRepository) QuestionCounts(quizIDs []uint) (map[uint]int64, error) {
	return r.countBy(&model.Question{}, "", quizIDs)
}

func appendKeys(keys []string, candidates ...string) []string {
	for _, k := range candidates {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
