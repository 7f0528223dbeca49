package repository

import (
	"errors"
	"quizfy_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) WithTx(tx *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: tx}
}

func (r *SubmissionRepository) Create(sub *model.Submission) error {
	return r.DB.Create(sub).Error
}

func (r *SubmissionRepository) Save(sub *model.Submission) error {
	return r.DB.Save(sub).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Preload("Quiz").First(&sub, id).Error
	return &sub, err
}

func (r *SubmissionRepository) FindInQuiz(id, quizID uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Preload("StudentUser.Profile").
		Where("id = ? AND quiz_id = ?", id, quizID).
		First(&sub).Error
	return &sub, err
}

func (r *SubmissionRepository) FindForStudent(id, studentID uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Preload("Quiz").
		Where("id = ? AND student_user_id = ?", id, studentID).
		First(&sub).Error
	return &sub, err
}

// LatestInProgress returns nil when the student has no open attempt.
func (r *SubmissionRepository) LatestInProgress(quizID, studentID uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Where("quiz_id = ? AND student_user_id = ? AND is_submitted = ?", quizID, studentID, false).
		Order("id desc").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepository) CountSubmitted(quizID, studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).
		Where("quiz_id = ? AND student_user_id = ? AND is_submitted = ?", quizID, studentID, true).
		Count(&count).Error
	return count, err
}

// CountByQuiz returns all rows and finalized rows for the quiz.
func (r *SubmissionRepository) CountByQuiz(quizID uint) (total, submitted int64, err error) {
	if err = r.DB.Model(&model.Submission{}).Where("quiz_id = ?", quizID).Count(&total).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.Submission{}).Where("quiz_id = ? AND is_submitted = ?", quizID, true).Count(&submitted).Error
	return
}

// ListSubmittedByQuiz returns finalized rows newest first.
func (r *SubmissionRepository) ListSubmittedByQuiz(quizID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Preload("StudentUser.Profile").
		Where("quiz_id = ? AND is_submitted = ?", quizID, true).
		Order("submitted_at desc, id desc").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) ListSubmittedByQuizzes(quizIDs []uint) ([]model.Submission, error) {
	var subs []model.Submission
	if len(quizIDs) == 0 {
		return subs, nil
	}
	err := r.DB.Preload("StudentUser.Profile").
		Where("quiz_id IN ? AND is_submitted = ?", quizIDs, true).
		Order("submitted_at desc, id desc").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) ListSubmittedForStudent(quizIDs []uint, studentID uint) ([]model.Submission, error) {
	var subs []model.Submission
	if len(quizIDs) == 0 {
		return subs, nil
	}
	err := r.DB.Preload("Quiz").
		Where("quiz_id IN ? AND student_user_id = ? AND is_submitted = ?", quizIDs, studentID, true).
		Order("submitted_at desc, id desc").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) ListByStudent(studentID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Preload("Quiz").
		Where("student_user_id = ?", studentID).
		Order("submitted_at desc, id desc").
		Find(&subs).Error
	return subs, err
}

// ListInProgressTimed returns open attempts on quizzes that carry a timer.
func (r *SubmissionRepository) ListInProgressTimed() ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Preload("Quiz").
		Joins("JOIN quizzes ON quizzes.id = submissions.quiz_id").
		Where("submissions.is_submitted = ? AND quizzes.duration_minutes IS NOT NULL AND quizzes.duration_minutes > 0", false).
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) Answers(submissionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Preload("Question").
		Where("submission_id = ?", submissionID).
		Order("question_id").
		Find(&answers).Error
	return answers, err
}

func (r *SubmissionRepository) AnswersFor(submissionIDs []uint) ([]model.Answer, error) {
	var answers []model.Answer
	if len(submissionIDs) == 0 {
		return answers, nil
	}
	err := r.DB.Where("submission_id IN ?", submissionIDs).Order("question_id").Find(&answers).Error
	return answers, err
}

func (r *SubmissionRepository) DeleteAnswers(submissionID uint) error {
	return r.DB.Where("submission_id = ?", submissionID).Delete(&model.Answer{}).Error
}

func (r *SubmissionRepository) CreateAnswers(answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.Create(&answers).Error
}

// Close marks the row submitted only if it is still open. It reports false
// when another request finalized it first.
func (r *SubmissionRepository) Close(sub *model.Submission) (bool, error) {
	res := r.DB.Model(&model.Submission{}).
		Where("id = ? AND is_submitted = ?", sub.ID, false).
		Updates(map[string]interface{}{
			"score":        sub.Score,
			"total":        sub.Total,
			"is_submitted": true,
			"submitted_at": sub.SubmittedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *SubmissionRepository) BackfillStartedAt(sub *model.Submission) error {
	return r.DB.Model(&model.Submission{}).
		Where("id = ? AND started_at IS NULL", sub.ID).
		Update("started_at", sub.StartedAt).Error
}

func (r *SubmissionRepository) FileSubmissions(submissionID uint) ([]model.FileSubmission, error) {
	var files []model.FileSubmission
	err := r.DB.Preload("Question").
		Where("submission_id = ?", submissionID).
		Order("uploaded_at, id").
		Find(&files).Error
	return files, err
}

func (r *SubmissionRepository) FileSubmissionsFor(submissionIDs []uint) ([]model.FileSubmission, error) {
	var files []model.FileSubmission
	if len(submissionIDs) == 0 {
		return files, nil
	}
	err := r.DB.Where("submission_id IN ?", submissionIDs).Order("uploaded_at, id").Find(&files).Error
	return files, err
}

func (r *SubmissionRepository) CreateFileSubmission(fs *model.FileSubmission) error {
	return r.DB.Create(fs).Error
}

func (r *SubmissionRepository) SaveFileSubmission(fs *model.FileSubmission) error {
	return r.DB.Save(fs).Error
}

// FindFileSubmissionForTeacher only matches files on quizzes owned by teacherID.
func (r *SubmissionRepository) FindFileSubmissionForTeacher(id, teacherID uint) (*model.FileSubmission, error) {
	var fs model.FileSubmission
	err := r.DB.Joins("JOIN submissions ON submissions.id = file_submissions.submission_id").
		Joins("JOIN quizzes ON quizzes.id = submissions.quiz_id").
		Where("file_submissions.id = ? AND quizzes.teacher_id = ?", id, teacherID).
		First(&fs).Error
	return &fs, err
}

func (r *SubmissionRepository) FindForTeacher(id, teacherID uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Joins("JOIN quizzes ON quizzes.id = submissions.quiz_id").
		Where("submissions.id = ? AND quizzes.teacher_id = ?", id, teacherID).
		First(&sub).Error
	return &sub, err
}
