package service

import (
	"context"
	"errors"
	"fmt"
	"quizfy_backend/internal/config"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/repository"
	"quizfy_backend/internal/util"
	"quizfy_backend/pkg/logger"
	"quizfy_backend/pkg/monitoring"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Finalize modes, also used as the metric label.
const (
	FinalizeSubmit = "submit"
	FinalizeTimer  = "timer"
	FinalizeClosed = "closed"
)

var errLostFinalizeRace = errors.New("submission already finalized")

// AttemptAnswers carries the raw form of a take-quiz POST.
type AttemptAnswers struct {
	// Selected maps question id to the posted question_{id} value.
	Selected      map[uint]string
	File          *UploadedFile
	QuestionFiles map[uint]*UploadedFile
}

type AttemptState struct {
	Quiz             *model.Quiz          `json:"quiz"`
	Submission       *model.Submission    `json:"submission"`
	Questions        []model.QuestionView `json:"questions"`
	RemainingSeconds *int                 `json:"remainingSeconds"`
	// Result is set when the timer ran out and the attempt was closed by this request.
	Result *AttemptResult `json:"result,omitempty"`
}

type AttemptResult struct {
	Submission      *model.Submission      `json:"submission"`
	StudentName     string                 `json:"studentName"`
	UniversityID    string                 `json:"universityId"`
	Percentage      float64                `json:"percentage"`
	Answers         []model.Answer         `json:"answers"`
	FileSubmissions []model.FileSubmission `json:"fileSubmissions"`
}

type AttemptService struct {
	DB             *gorm.DB
	QuizRepo       *repository.QuizRepository
	QuestionRepo   *repository.QuestionRepository
	SubmissionRepo *repository.SubmissionRepository
	PermissionRepo *repository.PermissionRepository
	UserRepo       *repository.UserRepository
	Storage        *StorageService
	MaxUpload      int64
	Now            func() time.Time
}

func NewAttemptService(
	db *gorm.DB,
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	submissionRepo *repository.SubmissionRepository,
	permissionRepo *repository.PermissionRepository,
	userRepo *repository.UserRepository,
	storage *StorageService,
	cfg *config.Config,
) *AttemptService {
	maxUpload := cfg.Quiz.MaxUploadMB * util.MB
	if maxUpload <= 0 {
		maxUpload = 10 * util.MB
	}
	return &AttemptService{
		DB:             db,
		QuizRepo:       quizRepo,
		QuestionRepo:   questionRepo,
		SubmissionRepo: submissionRepo,
		PermissionRepo: permissionRepo,
		UserRepo:       userRepo,
		Storage:        storage,
		MaxUpload:      maxUpload,
		Now:            time.Now,
	}
}

func (s *AttemptService) findQuiz(code string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

// Gate decides whether the student may work on the quiz and returns the
// submission row to use. An open row is resumed, otherwise a new one is
// created.
func (s *AttemptService) Gate(ctx context.Context, quiz *model.Quiz, studentID uint) (*model.Submission, error) {
	profile, err := s.UserRepo.FindProfileByUserID(studentID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, util.ErrStudentProfile
	}

	now := s.Now()
	if !quiz.CanStart(now) {
		open, err := s.SubmissionRepo.LatestInProgress(quiz.ID, studentID)
		if err != nil {
			return nil, err
		}
		if open != nil {
			if _, err := s.finalize(ctx, quiz, open, nil, FinalizeClosed); err != nil {
				return nil, err
			}
		}
		return nil, util.ErrQuizClosed
	}

	allowed, err := s.PermissionRepo.AllowedAttempts(quiz.ID, studentID)
	if err != nil {
		return nil, err
	}
	used, err := s.SubmissionRepo.CountSubmitted(quiz.ID, studentID)
	if err != nil {
		return nil, err
	}
	if used >= int64(allowed) {
		return nil, util.ErrAttemptsExhausted
	}

	sub, err := s.SubmissionRepo.LatestInProgress(quiz.ID, studentID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		if sub.StartedAt == nil {
			sub.StartedAt = &now
			if err := s.SubmissionRepo.BackfillStartedAt(sub); err != nil {
				return nil, err
			}
		}
		sub.Quiz = quiz
		return sub, nil
	}

	total := 0
	if quiz.QuizType != model.QuizTypeFileUpload {
		count, err := s.QuestionRepo.CountByQuiz(quiz.ID)
		if err != nil {
			return nil, err
		}
		total = int(count)
	}
	sid := studentID
	sub = &model.Submission{
		QuizID:        quiz.ID,
		StudentUserID: &sid,
		StudentName:   profile.FullName(),
		Total:         total,
		StartedAt:     &now,
		AttemptNo:     int(used) + 1,
	}
	if err := s.SubmissionRepo.Create(sub); err != nil {
		return nil, err
	}
	sub.Quiz = quiz
	monitoring.AttemptsStarted.Inc()
	logger.Log.Info("Quiz attempt started",
		zap.String("code", quiz.Code),
		zap.Uint("studentID", studentID),
		zap.Int("attemptNo", sub.AttemptNo))
	return sub, nil
}

// RemainingSeconds returns nil for untimed quizzes.
func RemainingSeconds(quiz *model.Quiz, sub *model.Submission, now time.Time) *int {
	if !quiz.IsTimed() || sub.StartedAt == nil {
		return nil
	}
	elapsed := int(now.Sub(*sub.StartedAt).Seconds())
	remaining := *quiz.DurationMinutes*60 - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

func timedOut(remaining *int) bool {
	return remaining != nil && *remaining <= 0
}

// Take runs the gate and the timer for a GET of the quiz page.
func (s *AttemptService) Take(ctx context.Context, code string, studentID uint) (*AttemptState, error) {
	quiz, err := s.findQuiz(code)
	if err != nil {
		return nil, err
	}
	sub, err := s.Gate(ctx, quiz, studentID)
	if err != nil {
		return nil, err
	}

	state := &AttemptState{Quiz: quiz, Submission: sub}
	state.RemainingSeconds = RemainingSeconds(quiz, sub, s.Now())
	if timedOut(state.RemainingSeconds) {
		result, err := s.finalize(ctx, quiz, sub, nil, FinalizeTimer)
		if err != nil {
			return nil, err
		}
		state.Result = result
		state.Submission = result.Submission
		return state, nil
	}

	questions, err := s.QuestionRepo.ListByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}
	state.Questions = make([]model.QuestionView, 0, len(questions))
	for i := range questions {
		state.Questions = append(state.Questions, questions[i].View())
	}
	return state, nil
}

// Submit runs the gate and finalizes. A POST that arrives after the timer
// ran out is still graded; only the required file check is skipped.
func (s *AttemptService) Submit(ctx context.Context, code string, studentID uint, answers *AttemptAnswers) (*AttemptResult, error) {
	quiz, err := s.findQuiz(code)
	if err != nil {
		return nil, err
	}
	sub, err := s.Gate(ctx, quiz, studentID)
	if err != nil {
		return nil, err
	}
	if timedOut(RemainingSeconds(quiz, sub, s.Now())) {
		return s.finalize(ctx, quiz, sub, answers, FinalizeTimer)
	}
	return s.finalize(ctx, quiz, sub, answers, FinalizeSubmit)
}

type pendingFile struct {
	questionID *uint
	object     *StoredObject
}

func (s *AttemptService) storeUpload(ctx context.Context, quiz *model.Quiz, studentID uint, f *UploadedFile) (*StoredObject, error) {
	if err := util.ValidateUpload(f.Name, f.Size, s.MaxUpload, util.AllowedSubmissionExtensions); err != nil {
		return nil, err
	}
	prefix := fmt.Sprintf("file_submissions/quiz_%d/%d", quiz.ID, studentID)
	return s.Storage.Save(ctx, prefix, f)
}

// parseSelected returns nil for a missing or out of range choice.
func parseSelected(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 4 {
		return nil
	}
	return &n
}

// finalize grades and closes sub. It is idempotent: a submission that is
// already closed, or that another request closes first, yields the stored
// result.
func (s *AttemptService) finalize(ctx context.Context, quiz *model.Quiz, sub *model.Submission, answers *AttemptAnswers, mode string) (*AttemptResult, error) {
	if sub.IsSubmitted {
		return s.resultFor(sub)
	}
	now := s.Now()
	if mode != FinalizeClosed && !quiz.CanStart(now) {
		return nil, util.ErrQuizClosedMidway
	}
	if answers == nil {
		answers = &AttemptAnswers{}
	}

	questions, err := s.QuestionRepo.ListByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}

	var studentID uint
	if sub.StudentUserID != nil {
		studentID = *sub.StudentUserID
	}

	// uploads happen before the transaction and are removed if it fails
	var pending []pendingFile
	var keys []string
	cleanup := func() {
		s.Storage.Remove(context.Background(), keys...)
	}

	if quiz.QuizType == model.QuizTypeFileUpload {
		if answers.File == nil && mode == FinalizeSubmit {
			return nil, util.ErrFileRequired
		}
		if answers.File != nil {
			obj, err := s.storeUpload(ctx, quiz, studentID, answers.File)
			if err != nil {
				return nil, err
			}
			keys = append(keys, obj.Key)
			pending = append(pending, pendingFile{object: obj})
		}
	} else {
		for i := range questions {
			q := &questions[i]
			f := answers.QuestionFiles[q.ID]
			if !q.IsFileUpload() || f == nil {
				continue
			}
			obj, err := s.storeUpload(ctx, quiz, studentID, f)
			if err != nil {
				cleanup()
				return nil, err
			}
			keys = append(keys, obj.Key)
			qid := q.ID
			pending = append(pending, pendingFile{questionID: &qid, object: obj})
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.SubmissionRepo.WithTx(tx)

		for _, p := range pending {
			fs := &model.FileSubmission{
				SubmissionID: sub.ID,
				QuestionID:   p.questionID,
				FileURL:      p.object.URL,
				FileKey:      p.object.Key,
				FileName:     p.object.Name,
				UploadedAt:   now,
			}
			if err := repo.CreateFileSubmission(fs); err != nil {
				return err
			}
		}

		if quiz.QuizType == model.QuizTypeFileUpload {
			sub.Score, sub.Total = 0, 0
		} else {
			if err := repo.DeleteAnswers(sub.ID); err != nil {
				return err
			}
			score, total := 0, 0
			rows := make([]model.Answer, 0, len(questions))
			for i := range questions {
				q := &questions[i]
				if q.IsFileUpload() {
					rows = append(rows, model.Answer{SubmissionID: sub.ID, QuestionID: q.ID})
					continue
				}
				total++
				selected := parseSelected(answers.Selected[q.ID])
				correct := selected != nil && *selected == q.CorrectOption
				if correct {
					score++
				}
				rows = append(rows, model.Answer{
					SubmissionID: sub.ID,
					QuestionID:   q.ID,
					Selected:     selected,
					IsCorrect:    correct,
				})
			}
			if err := repo.CreateAnswers(rows); err != nil {
				return err
			}
			sub.Score, sub.Total = score, total
		}

		sub.SubmittedAt = &now
		closed, err := repo.Close(sub)
		if err != nil {
			return err
		}
		if !closed {
			return errLostFinalizeRace
		}
		return nil
	})

	if err != nil {
		cleanup()
		if errors.Is(err, errLostFinalizeRace) {
			logger.Log.Info("Submission finalized by a concurrent request", zap.Uint("submissionID", sub.ID))
			winner, ferr := s.SubmissionRepo.FindByID(sub.ID)
			if ferr != nil {
				return nil, ferr
			}
			return s.resultFor(winner)
		}
		return nil, err
	}

	sub.IsSubmitted = true
	monitoring.SubmissionsFinalized.WithLabelValues(mode).Inc()
	logger.Log.Info("Submission finalized",
		zap.Uint("submissionID", sub.ID),
		zap.String("mode", mode),
		zap.Int("score", sub.Score),
		zap.Int("total", sub.Total))
	return s.resultFor(sub)
}

func (s *AttemptService) resultFor(sub *model.Submission) (*AttemptResult, error) {
	answers, err := s.SubmissionRepo.Answers(sub.ID)
	if err != nil {
		return nil, err
	}
	files, err := s.SubmissionRepo.FileSubmissions(sub.ID)
	if err != nil {
		return nil, err
	}
	result := &AttemptResult{
		Submission:      sub,
		StudentName:     sub.StudentName,
		Percentage:      sub.Percentage() * 100,
		Answers:         answers,
		FileSubmissions: files,
	}
	if sub.StudentUserID != nil {
		user, err := s.UserRepo.FindByID(*sub.StudentUserID)
		if err == nil {
			if user.Profile != nil {
				if name := user.Profile.FullName(); name != "" {
					result.StudentName = name
				}
				result.UniversityID = user.Profile.UniversityID
			} else if result.StudentName == "" {
				result.StudentName = user.Username
			}
		}
	}
	return result, nil
}

// Result is visible to the student who owns the submission and to the
// teacher who owns the quiz.
func (s *AttemptService) Result(code string, submissionID uint, viewer *util.Claims) (*AttemptResult, error) {
	quiz, err := s.findQuiz(code)
	if err != nil {
		return nil, err
	}
	sub, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	if sub.QuizID != quiz.ID {
		return nil, util.ErrSubmissionNotFound
	}
	owner := sub.StudentUserID != nil && *sub.StudentUserID == viewer.UserID
	if !owner && quiz.TeacherID != viewer.UserID {
		return nil, util.ErrPermissionDenied
	}
	return s.resultFor(sub)
}

// SweepExpired closes open attempts whose timer ran out or whose quiz was
// closed, the same way the next request from the student would.
func (s *AttemptService) SweepExpired(ctx context.Context) (int, error) {
	subs, err := s.SubmissionRepo.ListInProgressTimed()
	if err != nil {
		return 0, err
	}
	now := s.Now()
	closed := 0
	for i := range subs {
		sub := &subs[i]
		if sub.Quiz == nil || sub.StartedAt == nil {
			continue
		}
		mode := ""
		switch {
		case !sub.Quiz.CanStart(now):
			mode = FinalizeClosed
		case timedOut(RemainingSeconds(sub.Quiz, sub, now)):
			mode = FinalizeTimer
		default:
			continue
		}
		if _, err := s.finalize(ctx, sub.Quiz, sub, nil, mode); err != nil {
			logger.ReportError("Failed to close expired submission", err, zap.Uint("submissionID", sub.ID))
			continue
		}
		closed++
	}
	return closed, nil
}

func (s *AttemptService) teacherQuizAndStudent(quizID, teacherID, studentID uint) (*model.Quiz, *model.User, error) {
	quiz, err := s.QuizRepo.FindForTeacher(quizID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrQuizNotFound
		}
		return nil, nil, err
	}
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrUserNotFound
		}
		return nil, nil, err
	}
	return quiz, student, nil
}

// AllowExtraAttempt raises the student's allowance by one. A student without
// a permission row starts from the default of one, so the first grant yields two.
func (s *AttemptService) AllowExtraAttempt(quizID, teacherID, studentID uint) (*model.QuizAttemptPermission, error) {
	return s.AdjustAttempts(quizID, teacherID, studentID, 1)
}

// AdjustAttempts moves the allowance by delta (+1 or -1), never below one.
func (s *AttemptService) AdjustAttempts(quizID, teacherID, studentID uint, delta int) (*model.QuizAttemptPermission, error) {
	if delta != 1 && delta != -1 {
		return nil, util.ErrInvalidAttemptDelta
	}
	quiz, student, err := s.teacherQuizAndStudent(quizID, teacherID, studentID)
	if err != nil {
		return nil, err
	}
	perm, _, err := s.PermissionRepo.GetOrCreate(quiz.ID, student.ID)
	if err != nil {
		return nil, err
	}
	perm.AllowedAttempts += delta
	if perm.AllowedAttempts < 1 {
		perm.AllowedAttempts = 1
	}
	if err := s.PermissionRepo.Save(perm); err != nil {
		return nil, err
	}
	logger.Log.Info("Allowed attempts updated",
		zap.Uint("quizID", quiz.ID),
		zap.String("student", student.Username),
		zap.Int("allowed", perm.AllowedAttempts))
	return perm, nil
}
