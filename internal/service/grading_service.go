package service

import (
	"context"
	"errors"
	"fmt"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/repository"
	"quizfy_backend/internal/util"
	"quizfy_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileGrade holds the posted fields for one FileSubmission. Nil means the
// field was not in the form.
type FileGrade struct {
	Grade       *string
	Comment     *string
	TeacherFile *UploadedFile
}

type GradeSubmissionRequest struct {
	Files          map[uint]*FileGrade
	ManualGrade    *string
	TeacherComment *string
	TeacherFile    *UploadedFile
}

type GradingView struct {
	Quiz            *model.Quiz            `json:"quiz"`
	Submission      *model.Submission      `json:"submission"`
	StudentName     string                 `json:"studentName"`
	UniversityID    string                 `json:"universityId"`
	Answers         []model.Answer         `json:"answers"`
	FileSubmissions []model.FileSubmission `json:"fileSubmissions"`
}

type SubmissionList struct {
	Quiz        *model.Quiz        `json:"quiz"`
	Submissions []model.Submission `json:"submissions"`
	// AttemptMap holds allowed attempts for students that have a permission row.
	AttemptMap map[uint]int `json:"attemptMap"`
}

type GradingService struct {
	DB             *gorm.DB
	QuizRepo       *repository.QuizRepository
	SubmissionRepo *repository.SubmissionRepository
	PermissionRepo *repository.PermissionRepository
	Storage        *StorageService
	MaxUpload      int64
	Now            func() time.Time
}

func NewGradingService(
	db *gorm.DB,
	quizRepo *repository.QuizRepository,
	submissionRepo *repository.SubmissionRepository,
	permissionRepo *repository.PermissionRepository,
	storage *StorageService,
	maxUpload int64,
) *GradingService {
	return &GradingService{
		DB:             db,
		QuizRepo:       quizRepo,
		SubmissionRepo: submissionRepo,
		PermissionRepo: permissionRepo,
		Storage:        storage,
		MaxUpload:      maxUpload,
		Now:            time.Now,
	}
}

func (s *GradingService) teacherSubmission(quizID, submissionID, teacherID uint) (*model.Quiz, *model.Submission, error) {
	quiz, err := s.QuizRepo.FindForTeacher(quizID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrQuizNotFound
		}
		return nil, nil, err
	}
	sub, err := s.SubmissionRepo.FindInQuiz(submissionID, quiz.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrSubmissionNotFound
		}
		return nil, nil, err
	}
	return quiz, sub, nil
}

func (s *GradingService) ListSubmissions(quizID, teacherID uint) (*SubmissionList, error) {
	quiz, err := s.QuizRepo.FindForTeacher(quizID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	subs, err := s.SubmissionRepo.ListSubmittedByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}
	var studentIDs []uint
	for _, sub := range subs {
		if sub.StudentUserID != nil {
			studentIDs = append(studentIDs, *sub.StudentUserID)
		}
	}
	attempts, err := s.PermissionRepo.AllowedMap(quiz.ID, studentIDs)
	if err != nil {
		return nil, err
	}
	return &SubmissionList{Quiz: quiz, Submissions: subs, AttemptMap: attempts}, nil
}

func (s *GradingService) View(quizID, submissionID, teacherID uint) (*GradingView, error) {
	quiz, sub, err := s.teacherSubmission(quizID, submissionID, teacherID)
	if err != nil {
		return nil, err
	}
	return s.view(quiz, sub)
}

func (s *GradingService) view(quiz *model.Quiz, sub *model.Submission) (*GradingView, error) {
	answers, err := s.SubmissionRepo.Answers(sub.ID)
	if err != nil {
		return nil, err
	}
	files, err := s.SubmissionRepo.FileSubmissions(sub.ID)
	if err != nil {
		return nil, err
	}
	name, universityID := studentInfo(sub)
	return &GradingView{
		Quiz:            quiz,
		Submission:      sub,
		StudentName:     name,
		UniversityID:    universityID,
		Answers:         answers,
		FileSubmissions: files,
	}, nil
}

// studentInfo prefers the profile names over the stored display name.
func studentInfo(sub *model.Submission) (name, universityID string) {
	name = sub.StudentName
	if sub.StudentUser == nil {
		return name, ""
	}
	if p := sub.StudentUser.Profile; p != nil {
		if full := p.FullName(); full != "" {
			name = full
		}
		return name, p.UniversityID
	}
	if name == "" {
		name = sub.StudentUser.Username
	}
	return name, ""
}

func (s *GradingService) saveFeedback(ctx context.Context, prefix string, f *UploadedFile) (*StoredObject, error) {
	if f.Size > s.MaxUpload {
		return nil, util.ErrFileTooLarge
	}
	return s.Storage.Save(ctx, prefix, f)
}

// Grade applies the posted grades. Feedback files are uploaded first and
// removed again if the database update fails; replaced files are removed
// after it succeeds.
func (s *GradingService) Grade(ctx context.Context, quizID, submissionID, teacherID uint, req *GradeSubmissionRequest) (*GradingView, error) {
	quiz, sub, err := s.teacherSubmission(quizID, submissionID, teacherID)
	if err != nil {
		return nil, err
	}
	files, err := s.SubmissionRepo.FileSubmissions(sub.ID)
	if err != nil {
		return nil, err
	}

	var studentID uint
	if sub.StudentUserID != nil {
		studentID = *sub.StudentUserID
	}

	var uploaded, replaced []string
	now := s.Now()
	changed := make([]*model.FileSubmission, 0, len(files))

	for i := range files {
		fs := &files[i]
		fg, ok := req.Files[fs.ID]
		if !ok || fg == nil {
			continue
		}
		if fg.Grade != nil {
			fs.Grade = util.Truncate(strings.TrimSpace(*fg.Grade), 50)
		}
		if fg.Comment != nil {
			fs.TeacherComment = strings.TrimSpace(*fg.Comment)
		}
		if fg.TeacherFile != nil {
			obj, err := s.saveFeedback(ctx, fmt.Sprintf("teacher_feedback/quiz_%d/%d", quiz.ID, studentID), fg.TeacherFile)
			if err != nil {
				s.Storage.Remove(ctx, uploaded...)
				return nil, err
			}
			uploaded = append(uploaded, obj.Key)
			if fs.TeacherFileKey != "" {
				replaced = append(replaced, fs.TeacherFileKey)
			}
			fs.TeacherFileURL, fs.TeacherFileKey, fs.TeacherFileName = obj.URL, obj.Key, obj.Name
		}
		fs.GradedAt = &now
		changed = append(changed, fs)
	}

	subChanged := false
	if req.ManualGrade != nil {
		sub.ManualGrade = util.Truncate(strings.TrimSpace(*req.ManualGrade), 50)
		subChanged = true
	}
	if req.TeacherComment != nil {
		sub.TeacherComment = strings.TrimSpace(*req.TeacherComment)
		subChanged = true
	}
	if req.TeacherFile != nil {
		obj, err := s.saveFeedback(ctx, fmt.Sprintf("teacher_feedback/submission_%d", sub.ID), req.TeacherFile)
		if err != nil {
			s.Storage.Remove(ctx, uploaded...)
			return nil, err
		}
		uploaded = append(uploaded, obj.Key)
		if sub.TeacherFileKey != "" {
			replaced = append(replaced, sub.TeacherFileKey)
		}
		sub.TeacherFileURL, sub.TeacherFileKey, sub.TeacherFileName = obj.URL, obj.Key, obj.Name
		subChanged = true
	}
	if subChanged {
		sub.GradedAt = &now
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.SubmissionRepo.WithTx(tx)
		for _, fs := range changed {
			fs.Question = nil
			if err := repo.SaveFileSubmission(fs); err != nil {
				return err
			}
		}
		if subChanged {
			return tx.Model(&model.Submission{}).Where("id = ?", sub.ID).Updates(map[string]interface{}{
				"manual_grade":      sub.ManualGrade,
				"teacher_comment":   sub.TeacherComment,
				"teacher_file_url":  sub.TeacherFileURL,
				"teacher_file_key":  sub.TeacherFileKey,
				"teacher_file_name": sub.TeacherFileName,
				"graded_at":         sub.GradedAt,
			}).Error
		}
		return nil
	})
	if err != nil {
		s.Storage.Remove(ctx, uploaded...)
		return nil, err
	}
	s.Storage.Remove(ctx, replaced...)

	logger.Log.Info("Submission graded",
		zap.Uint("submissionID", sub.ID),
		zap.Int("files", len(changed)),
		zap.Bool("submissionFields", subChanged))
	return s.view(quiz, sub)
}

// DeleteFileFeedback removes the teacher's file from a FileSubmission.
func (s *GradingService) DeleteFileFeedback(ctx context.Context, fileSubmissionID, teacherID uint) (*model.FileSubmission, error) {
	fs, err := s.SubmissionRepo.FindFileSubmissionForTeacher(fileSubmissionID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPermissionDenied
		}
		return nil, err
	}
	if fs.TeacherFileKey == "" && fs.TeacherFileURL == "" {
		return fs, nil
	}
	key := fs.TeacherFileKey
	fs.TeacherFileURL, fs.TeacherFileKey, fs.TeacherFileName = "", "", ""
	if err := s.SubmissionRepo.SaveFileSubmission(fs); err != nil {
		return nil, err
	}
	s.Storage.Remove(ctx, key)
	return fs, nil
}

// DeleteSubmissionFeedback removes the teacher's file from a Submission.
func (s *GradingService) DeleteSubmissionFeedback(ctx context.Context, submissionID, teacherID uint) (*model.Submission, error) {
	sub, err := s.SubmissionRepo.FindForTeacher(submissionID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPermissionDenied
		}
		return nil, err
	}
	if sub.TeacherFileKey == "" && sub.TeacherFileURL == "" {
		return sub, nil
	}
	key := sub.TeacherFileKey
	err = s.DB.Model(&model.Submission{}).Where("id = ?", sub.ID).Updates(map[string]interface{}{
		"teacher_file_url":  "",
		"teacher_file_key":  "",
		"teacher_file_name": "",
	}).Error
	if err != nil {
		return nil, err
	}
	sub.TeacherFileURL, sub.TeacherFileKey, sub.TeacherFileName = "", "", ""
	s.Storage.Remove(ctx, key)
	return sub, nil
}
