package service

import (
	"errors"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/repository"
	"quizfy_backend/internal/util"

	"gorm.io/gorm"
)

type DashboardService struct {
	UserRepo       *repository.UserRepository
	SubmissionRepo *repository.SubmissionRepository
	Quizzes        *QuizService
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	submissionRepo *repository.SubmissionRepository,
	quizzes *QuizService,
) *DashboardService {
	return &DashboardService{
		UserRepo:       userRepo,
		SubmissionRepo: submissionRepo,
		Quizzes:        quizzes,
	}
}

type SubmissionRow struct {
	ID          uint   `json:"id"`
	QuizTitle   string `json:"quizTitle"`
	QuizCode    string `json:"quizCode"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
	Percentage  int    `json:"percentage"`
	IsSubmitted bool   `json:"isSubmitted"`
	SubmittedAt string `json:"submittedAt"`
	ManualGrade string `json:"manualGrade,omitempty"`
}

type StudentDashboard struct {
	User        *model.User           `json:"user"`
	Profile     *model.StudentProfile `json:"profile"`
	Submissions []SubmissionRow       `json:"submissions"`
}

type StudentSubmissionDetail struct {
	Submission      *model.Submission      `json:"submission"`
	Answers         []model.Answer         `json:"answers"`
	FileSubmissions []model.FileSubmission `json:"fileSubmissions"`
}

func (s *DashboardService) GetStudentDashboard(userID uint) (*StudentDashboard, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	profile, err := s.UserRepo.FindProfileByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, util.ErrStudentProfile
	}

	subs, err := s.SubmissionRepo.ListByStudent(user.ID)
	if err != nil {
		return nil, err
	}
	rows := make([]SubmissionRow, 0, len(subs))
	for i := range subs {
		sub := &subs[i]
		row := SubmissionRow{
			ID:          sub.ID,
			Score:       sub.Score,
			Total:       sub.Total,
			Percentage:  int(sub.Percentage() * 100),
			IsSubmitted: sub.IsSubmitted,
			SubmittedAt: formatSubmittedAt(sub.SubmittedAt),
			ManualGrade: sub.ManualGrade,
		}
		if sub.Quiz != nil {
			row.QuizTitle, row.QuizCode = sub.Quiz.Title, sub.Quiz.Code
		}
		rows = append(rows, row)
	}
	return &StudentDashboard{User: user, Profile: profile, Submissions: rows}, nil
}

// EnterQuiz resolves a typed quiz code to the canonical one.
func (s *DashboardService) EnterQuiz(code string) (string, error) {
	return s.Quizzes.ResolveCode(code)
}

// SubmissionDetail returns one of the student's own submissions with answers
// ordered by question id.
func (s *DashboardService) SubmissionDetail(submissionID, studentID uint) (*StudentSubmissionDetail, error) {
	sub, err := s.SubmissionRepo.FindForStudent(submissionID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	answers, err := s.SubmissionRepo.Answers(sub.ID)
	if err != nil {
		return nil, err
	}
	files, err := s.SubmissionRepo.FileSubmissions(sub.ID)
	if err != nil {
		return nil, err
	}
	return &StudentSubmissionDetail{Submission: sub, Answers: answers, FileSubmissions: files}, nil
}
