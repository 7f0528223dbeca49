package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
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

type CreateQuizRequest struct {
	Title           string         `json:"title" form:"title" binding:"required,notblank,max=60"`
	QuizType        model.QuizType `json:"quizType" form:"quiz_type" binding:"required,quiztype"`
	FolderID        *uint          `json:"folderId" form:"folder"`
	DueAt           *time.Time     `json:"dueAt" form:"due_at"`
	DurationMinutes *int           `json:"durationMinutes" form:"duration_minutes" binding:"omitempty,min=1"`
}

// QuizSettingsRequest replaces all three settings at once; nil clears the
// due date or timer.
type QuizSettingsRequest struct {
	DueAt           *time.Time `json:"dueAt" form:"due_at"`
	DurationMinutes *int       `json:"durationMinutes" form:"duration_minutes" binding:"omitempty,min=1"`
	IsActive        bool       `json:"isActive" form:"is_active"`
}

type MoveQuizRequest struct {
	// FolderID nil moves the quiz to the ungrouped list.
	FolderID *uint `json:"folderId" form:"folder"`
}

type QuizCounters struct {
	AssignedCount  int64 `json:"assigned_count"`
	SubmittedCount int64 `json:"submitted_count"`
	BarMax         int64 `json:"bar_max"`
}

type QuizSummary struct {
	model.Quiz
	QuizCounters
	QuestionCount int64 `json:"questionCount"`
}

type FolderWithQuizzes struct {
	model.SubjectFolder
	Items []QuizSummary `json:"items"`
}

type TeacherDashboard struct {
	Folders   []FolderWithQuizzes `json:"folders"`
	Ungrouped []QuizSummary       `json:"ungrouped"`
}

type QuizDetail struct {
	Quiz                   *model.Quiz      `json:"quiz"`
	Questions              []model.Question `json:"questions"`
	TotalSubmissions       int64            `json:"totalSubmissions"`
	SubmittedCount         int64            `json:"submittedCount"`
	NotSubmittedCount      int64            `json:"notSubmittedCount"`
	SubmittedPercentage    float64          `json:"submittedPercentage"`
	NotSubmittedPercentage float64          `json:"notSubmittedPercentage"`
	QRCode                 string           `json:"qrCode"`
	JoinURL                string           `json:"joinUrl"`
}

// JoinInfo backs the page a scanned QR code opens.
type JoinInfo struct {
	Title    string         `json:"title"`
	Code     string         `json:"code"`
	QuizType model.QuizType `json:"quizType"`
	IsClosed bool           `json:"is_closed"`
	Message  string         `json:"message,omitempty"`
	Next     string         `json:"next,omitempty"`
}

type QuizService struct {
	QuizRepo       *repository.QuizRepository
	QuestionRepo   *repository.QuestionRepository
	SubmissionRepo *repository.SubmissionRepository
	FolderRepo     *repository.FolderRepository
	UserRepo       *repository.UserRepository
	Storage        *StorageService
	QRCode         *QRCodeService
	Now            func() time.Time
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	submissionRepo *repository.SubmissionRepository,
	folderRepo *repository.FolderRepository,
	userRepo *repository.UserRepository,
	storage *StorageService,
	qr *QRCodeService,
) *QuizService {
	return &QuizService{
		QuizRepo:       quizRepo,
		QuestionRepo:   questionRepo,
		SubmissionRepo: submissionRepo,
		FolderRepo:     folderRepo,
		UserRepo:       userRepo,
		Storage:        storage,
		QRCode:         qr,
		Now:            time.Now,
	}
}

// GenerateQuizCode returns six uppercase hex characters.
func GenerateQuizCode() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

func (s *QuizService) uniqueCode() (string, error) {
	for i := 0; i < 20; i++ {
		code, err := GenerateQuizCode()
		if err != nil {
			return "", err
		}
		exists, err := s.QuizRepo.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique quiz code")
}

func (s *QuizService) checkFolder(folderID *uint, teacherID uint) error {
	if folderID == nil || *folderID == 0 {
		return nil
	}
	if _, err := s.FolderRepo.FindForTeacher(*folderID, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrFolderNotFound
		}
		return err
	}
	return nil
}

func normalizeFolderID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

func (s *QuizService) CreateQuiz(teacherID uint, req *CreateQuizRequest) (*model.Quiz, error) {
	if !req.QuizType.Valid() {
		return nil, util.ErrInvalidQuizType
	}
	if req.DurationMinutes != nil && *req.DurationMinutes < 1 {
		return nil, util.ErrInvalidDuration
	}
	if err := s.checkFolder(req.FolderID, teacherID); err != nil {
		return nil, err
	}
	code, err := s.uniqueCode()
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:           strings.TrimSpace(req.Title),
		Code:            code,
		QuizType:        req.QuizType,
		FolderID:        normalizeFolderID(req.FolderID),
		TeacherID:       teacherID,
		DueAt:           req.DueAt,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	logger.Log.Info("Quiz created", zap.Uint("quizID", quiz.ID), zap.String("code", quiz.Code), zap.Uint("teacherID", teacherID))
	return quiz, nil
}

func (s *QuizService) GetTeacherQuiz(quizID, teacherID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindForTeacher(quizID, teacherID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

func (s *QuizService) Detail(quizID, teacherID uint) (*QuizDetail, error) {
	quiz, err := s.GetTeacherQuiz(quizID, teacherID)
	if err != nil {
		return nil, err
	}
	questions, err := s.QuestionRepo.ListByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}
	total, submitted, err := s.SubmissionRepo.CountByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}

	detail := &QuizDetail{
		Quiz:              quiz,
		Questions:         questions,
		TotalSubmissions:  total,
		SubmittedCount:    submitted,
		NotSubmittedCount: total - submitted,
		QRCode:            s.QRCode.DataURI(quiz.Code),
		JoinURL:           s.QRCode.JoinURL(quiz.Code),
	}
	if total > 0 {
		detail.SubmittedPercentage = float64(submitted) / float64(total) * 100
		detail.NotSubmittedPercentage = float64(total-submitted) / float64(total) * 100
	}
	return detail, nil
}

func (s *QuizService) DeleteQuiz(ctx context.Context, quizID, teacherID uint) error {
	quiz, err := s.GetTeacherQuiz(quizID, teacherID)
	if err != nil {
		return err
	}
	keys, err := s.QuizRepo.Delete(quiz.ID)
	if err != nil {
		return err
	}
	s.Storage.Remove(ctx, keys...)
	logger.Log.Info("Quiz deleted", zap.Uint("quizID", quiz.ID), zap.Int("objects", len(keys)))
	return nil
}

func (s *QuizService) ToggleActive(quizID, teacherID uint) (*model.Quiz, error) {
	quiz, err := s.GetTeacherQuiz(quizID, teacherID)
	if err != nil {
		return nil, err
	}
	quiz.IsActive = !quiz.IsActive
	if err := s.QuizRepo.UpdateFields(quiz.ID, map[string]interface{}{"is_active": quiz.IsActive}); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) UpdateSettings(quizID, teacherID uint, req *QuizSettingsRequest) (*model.Quiz, error) {
	if req.DurationMinutes != nil && *req.DurationMinutes < 1 {
		return nil, util.ErrInvalidDuration
	}
	quiz, err := s.GetTeacherQuiz(quizID, teacherID)
	if err != nil {
		return nil, err
	}
	quiz.DueAt = req.DueAt
	quiz.DurationMinutes = req.DurationMinutes
	quiz.IsActive = req.IsActive
	err = s.QuizRepo.UpdateFields(quiz.ID, map[string]interface{}{
		"due_at":           quiz.DueAt,
		"duration_minutes": quiz.DurationMinutes,
		"is_active":        quiz.IsActive,
	})
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Move(quizID, teacherID uint, req *MoveQuizRequest) (*model.Quiz, error) {
	quiz, err := s.GetTeacherQuiz(quizID, teacherID)
	if err != nil {
		return nil, err
	}
	if err := s.checkFolder(req.FolderID, teacherID); err != nil {
		return nil, err
	}
	quiz.FolderID = normalizeFolderID(req.FolderID)
	if err := s.QuizRepo.SetFolder(quiz.ID, quiz.FolderID); err != nil {
		return nil, err
	}
	return quiz, nil
}

func barMax(assigned, submitted int64) int64 {
	m := int64(1)
	if assigned > m {
		m = assigned
	}
	if submitted > m {
		m = submitted
	}
	return m
}

// Summaries decorates quizzes with their dashboard counters.
func (s *QuizService) Summaries(quizzes []model.Quiz) ([]QuizSummary, error) {
	ids := make([]uint, 0, len(quizzes))
	for _, q := range quizzes {
		ids = append(ids, q.ID)
	}
	assigned, err := s.QuizRepo.AssignedCounts(ids)
	if err != nil {
		return nil, err
	}
	submitted, err := s.QuizRepo.SubmittedCounts(ids)
	if err != nil {
		return nil, err
	}
	questions, err := s.QuizRepo.QuestionCounts(ids)
	if err != nil {
		return nil, err
	}

	out := make([]QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, QuizSummary{
			Quiz: q,
			QuizCounters: QuizCounters{
				AssignedCount:  assigned[q.ID],
				SubmittedCount: submitted[q.ID],
				BarMax:         barMax(assigned[q.ID], submitted[q.ID]),
			},
			QuestionCount: questions[q.ID],
		})
	}
	return out, nil
}

func (s *QuizService) Dashboard(teacherID uint) (*TeacherDashboard, error) {
	folders, err := s.FolderRepo.ListByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.ListByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.Summaries(quizzes)
	if err != nil {
		return nil, err
	}

	byFolder := make(map[uint][]QuizSummary)
	dash := &TeacherDashboard{Folders: make([]FolderWithQuizzes, 0, len(folders)), Ungrouped: []QuizSummary{}}
	for _, q := range summaries {
		if q.FolderID == nil {
			dash.Ungrouped = append(dash.Ungrouped, q)
			continue
		}
		byFolder[*q.FolderID] = append(byFolder[*q.FolderID], q)
	}
	for _, f := range folders {
		items := byFolder[f.ID]
		if items == nil {
			items = []QuizSummary{}
		}
		dash.Folders = append(dash.Folders, FolderWithQuizzes{SubjectFolder: f, Items: items})
	}
	return dash, nil
}

// LiveCounts only reports quizzes owned by teacherID, keyed by quiz id.
func (s *QuizService) LiveCounts(teacherID uint, quizIDs []uint) (map[string]QuizCounters, error) {
	out := make(map[string]QuizCounters)
	if len(quizIDs) == 0 {
		return out, nil
	}
	var owned []model.Quiz
	err := s.QuizRepo.DB.Where("teacher_id = ? AND id IN ?", teacherID, quizIDs).Find(&owned).Error
	if err != nil {
		return nil, err
	}
	summaries, err := s.Summaries(owned)
	if err != nil {
		return nil, err
	}
	for _, q := range summaries {
		out[fmt.Sprint(q.ID)] = q.QuizCounters
	}
	return out, nil
}

func (s *QuizService) findByCode(code string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

// Status reports whether students may currently start the quiz.
func (s *QuizService) Status(code string) (bool, error) {
	quiz, err := s.findByCode(code)
	if err != nil {
		return false, err
	}
	return quiz.CanStart(s.Now()), nil
}

func takePath(code string) string {
	return fmt.Sprintf("/api/quiz/%s/take", code)
}

// Join describes the quiz for a visitor. viewer may be nil.
func (s *QuizService) Join(code string, viewer *util.Claims) (*JoinInfo, error) {
	quiz, err := s.findByCode(code)
	if err != nil {
		return nil, err
	}
	info := &JoinInfo{Title: quiz.Title, Code: quiz.Code, QuizType: quiz.QuizType}
	if !quiz.CanStart(s.Now()) {
		info.IsClosed = true
		info.Message = "This quiz is currently closed."
		return info, nil
	}
	if viewer == nil {
		return info, nil
	}
	if viewer.IsTeacher() {
		info.Message = "You're logged in as a teacher. Students can join this quiz."
		return info, nil
	}
	profile, err := s.UserRepo.FindProfileByUserID(viewer.UserID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		info.Next = takePath(quiz.Code)
	}
	return info, nil
}

type ScanStep struct {
	Action string `json:"action"`
	Next   string `json:"next,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Scan tells a QR client where to go next: login, an error, or the quiz.
func (s *QuizService) Scan(code string, viewer *util.Claims) (*ScanStep, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	next := takePath(code)
	if viewer == nil {
		return &ScanStep{Action: "login", Next: "/api/student/login?next=" + next}, nil
	}
	profile, err := s.UserRepo.FindProfileByUserID(viewer.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &ScanStep{Action: "error", Error: util.ErrStudentProfile.Error()}, nil
	}
	return &ScanStep{Action: "take", Next: next}, nil
}

// ResolveCode normalizes a code typed by a student and checks that it exists.
func (s *QuizService) ResolveCode(code string) (string, error) {
	quiz, err := s.findByCode(code)
	if err != nil {
		return "", err
	}
	return quiz.Code, nil
}
