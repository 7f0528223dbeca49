package service

import (
	"context"
	"fmt"
	"io"
	"quizfy_backend/internal/config"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/repository"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// memStorage keeps uploaded objects in memory.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (m *memStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return m.GetURL(key), nil
}

func (m *memStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memStorage) GetURL(key string) string {
	return "/mem/" + key
}

func (m *memStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// clock is a settable time source shared by the services under test.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	DB        *gorm.DB
	Clock     *clock
	Store     *memStorage
	Storage   *StorageService
	Users     *repository.UserRepository
	Quizzes   *repository.QuizRepository
	Questions *repository.QuestionRepository
	Subs      *repository.SubmissionRepository
	Perms     *repository.PermissionRepository
	Folders   *repository.FolderRepository
	Attempts  *AttemptService
	Grading   *GradingService
	QuizSvc   *QuizService
	Export    *ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	env := &testEnv{
		DB:        db,
		Clock:     &clock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)},
		Store:     newMemStorage(),
		Users:     repository.NewUserRepository(db),
		Quizzes:   repository.NewQuizRepository(db),
		Questions: repository.NewQuestionRepository(db),
		Subs:      repository.NewSubmissionRepository(db),
		Perms:     repository.NewPermissionRepository(db),
		Folders:   repository.NewFolderRepository(db),
	}
	env.Storage = &StorageService{Provider: env.Store}

	cfg := &config.Config{}
	cfg.Quiz.MaxUploadMB = 1
	env.Attempts = NewAttemptService(db, env.Quizzes, env.Questions, env.Subs, env.Perms, env.Users, env.Storage, cfg)
	env.Attempts.Now = env.Clock.Now
	env.Grading = NewGradingService(db, env.Quizzes, env.Subs, env.Perms, env.Storage, env.Attempts.MaxUpload)
	env.Grading.Now = env.Clock.Now
	qr := NewQRCodeService("http://quizfy.test")
	env.QuizSvc = NewQuizService(env.Quizzes, env.Questions, env.Subs, env.Folders, env.Users, env.Storage, qr)
	env.QuizSvc.Now = env.Clock.Now
	env.Export = NewExportService(env.Quizzes, env.Questions, env.Subs, env.Folders, env.Users)
	env.Export.Now = env.Clock.Now
	return env
}

func (e *testEnv) teacher(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@school.test", Password: "x", Role: model.Teacher}
	require.NoError(t, e.Users.Create(u))
	return u
}

func (e *testEnv) student(t *testing.T, first, last, universityID string) *model.User {
	t.Helper()
	u := &model.User{
		Username:  strings.ToLower(first+last) + universityID[len(universityID)-3:],
		Email:     strings.ToLower(first) + "@school.test",
		Password:  "x",
		Role:      model.Student,
		FirstName: first,
		LastName:  last,
	}
	p := &model.StudentProfile{
		FirstName:    first,
		SecondName:   "bin",
		ThirdName:    last,
		UniversityID: universityID,
		City:         "Riyadh",
		Major:        "CS",
	}
	require.NoError(t, e.Users.CreateStudent(u, p))
	return u
}

func (e *testEnv) quiz(t *testing.T, teacherID uint, code string, quizType model.QuizType, opts ...func(*model.Quiz)) *model.Quiz {
	t.Helper()
	q := &model.Quiz{
		Title:     "Quiz " + code,
		Code:      code,
		QuizType:  quizType,
		TeacherID: teacherID,
		IsActive:  true,
	}
	for _, opt := range opts {
		opt(q)
	}
	require.NoError(t, e.Quizzes.Create(q))
	return q
}

func withDuration(minutes int) func(*model.Quiz) {
	return func(q *model.Quiz) { q.DurationMinutes = &minutes }
}

func inFolder(folderID uint) func(*model.Quiz) {
	return func(q *model.Quiz) { q.FolderID = &folderID }
}

func (e *testEnv) question(t *testing.T, quizID uint, qt model.QuestionType, text string, correct int) *model.Question {
	t.Helper()
	q := &model.Question{
		QuizID:        quizID,
		QuestionType:  qt,
		Text:          text,
		Option1:       "A",
		Option2:       "B",
		Option3:       "C",
		Option4:       "D",
		CorrectOption: correct,
	}
	q.Normalize()
	require.NoError(t, e.Questions.Create(q))
	return q
}

func (e *testEnv) folder(t *testing.T, teacherID uint, name string) *model.SubjectFolder {
	t.Helper()
	f := &model.SubjectFolder{TeacherID: teacherID, Name: name}
	require.NoError(t, e.Folders.Create(f))
	return f
}

func selections(pairs map[uint]string) *AttemptAnswers {
	return &AttemptAnswers{Selected: pairs, QuestionFiles: map[uint]*UploadedFile{}}
}
