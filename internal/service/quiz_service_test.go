package service

import (
	"context"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/util"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quizCodePattern = regexp.MustCompile(`^[0-9A-F]{6}$`)

func TestGenerateQuizCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateQuizCode()
		require.NoError(t, err)
		assert.Regexp(t, quizCodePattern, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestCreateQuizValidation(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "mr_khalid")
	other := env.teacher(t, "ms_huda")
	foreign := env.folder(t, other.ID, "Physics")

	_, err := env.QuizSvc.CreateQuiz(teacher.ID, &CreateQuizRequest{Title: "Week 1", QuizType: "essay"})
	assert.ErrorIs(t, err, util.ErrInvalidQuizType)

	zero := 0
	_, err = env.QuizSvc.CreateQuiz(teacher.ID, &CreateQuizRequest{Title: "Week 1", QuizType: model.QuizTypeMultipleChoice, DurationMinutes: &zero})
	assert.ErrorIs(t, err, util.ErrInvalidDuration)

	_, err = env.QuizSvc.CreateQuiz(teacher.ID, &CreateQuizRequest{Title: "Week 1", QuizType: model.QuizTypeMultipleChoice, FolderID: &foreign.ID})
	assert.ErrorIs(t, err, util.ErrFolderNotFound)

	quiz, err := env.QuizSvc.CreateQuiz(teacher.ID, &CreateQuizRequest{Title: "  Week 1  ", QuizType: model.QuizTypeTrueFalse})
	require.NoError(t, err)
	assert.Equal(t, "Week 1", quiz.Title)
	assert.True(t, quiz.IsActive)
	assert.Nil(t, quiz.FolderID)
	assert.Regexp(t, quizCodePattern, quiz.Code)
}

func TestToggleSettingsAndMove(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "mr_khalid")
	other := env.teacher(t, "ms_huda")
	folder := env.folder(t, teacher.ID, "Math 101")
	quiz := env.quiz(t, teacher.ID, "MOVE01", model.QuizTypeMultipleChoice)

	toggled, err := env.QuizSvc.ToggleActive(quiz.ID, teacher.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	_, err = env.QuizSvc.ToggleActive(quiz.ID, other.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)

	due := env.Clock.Now().Add(48 * time.Hour)
	minutes := 15
	updated, err := env.QuizSvc.UpdateSettings(quiz.ID, teacher.ID, &QuizSettingsRequest{DueAt: &due, DurationMinutes: &minutes, IsActive: true})
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	assert.True(t, updated.IsTimed())

	active, err := env.QuizSvc.Status("move01")
	require.NoError(t, err)
	assert.True(t, active)

	env.Clock.Advance(72 * time.Hour)
	active, err = env.QuizSvc.Status("MOVE01")
	require.NoError(t, err)
	assert.False(t, active)

	moved, err := env.QuizSvc.Move(quiz.ID, teacher.ID, &MoveQuizRequest{FolderID: &folder.ID})
	require.NoError(t, err)
	require.NotNil(t, moved.FolderID)
	assert.Equal(t, folder.ID, *moved.FolderID)

	zero := uint(0)
	moved, err = env.QuizSvc.Move(quiz.ID, teacher.ID, &MoveQuizRequest{FolderID: &zero})
	require.NoError(t, err)
	assert.Nil(t, moved.FolderID)
}

func TestDashboardGroupsByFolderWithCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	folder := env.folder(t, teacher.ID, "Math 101")
	env.folder(t, teacher.ID, "Empty")
	grouped := env.quiz(t, teacher.ID, "GROUP1", model.QuizTypeMultipleChoice, inFolder(folder.ID))
	env.question(t, grouped.ID, model.QuizTypeMultipleChoice, "Pick A", 1)
	env.quiz(t, teacher.ID, "LOOSE1", model.QuizTypeMultipleChoice)

	_, err := env.Attempts.Submit(ctx, "GROUP1", student.ID, selections(nil))
	require.NoError(t, err)
	_, err = env.Attempts.AllowExtraAttempt(grouped.ID, teacher.ID, student.ID)
	require.NoError(t, err)

	dash, err := env.QuizSvc.Dashboard(teacher.ID)
	require.NoError(t, err)
	require.Len(t, dash.Folders, 2)
	require.Len(t, dash.Ungrouped, 1)
	assert.Equal(t, "LOOSE1", dash.Ungrouped[0].Code)

	var math FolderWithQuizzes
	for _, f := range dash.Folders {
		if f.Name == "Math 101" {
			math = f
		} else {
			assert.Empty(t, f.Items)
		}
	}
	require.Len(t, math.Items, 1)
	item := math.Items[0]
	assert.EqualValues(t, 1, item.AssignedCount)
	assert.EqualValues(t, 1, item.SubmittedCount)
	assert.EqualValues(t, 1, item.BarMax)
	assert.EqualValues(t, 1, item.QuestionCount)

	counts, err := env.QuizSvc.LiveCounts(teacher.ID, []uint{grouped.ID, 9999})
	require.NoError(t, err)
	require.Len(t, counts, 1)
	for _, c := range counts {
		assert.EqualValues(t, 1, c.SubmittedCount)
	}
}

func TestDetailReportsSubmissionSplit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	sara := env.student(t, "Sara", "Ali", "441100123")
	noor := env.student(t, "Noor", "Saad", "441100456")
	quiz := env.quiz(t, teacher.ID, "SPLIT1", model.QuizTypeMultipleChoice)

	_, err := env.Attempts.Submit(ctx, "SPLIT1", sara.ID, selections(nil))
	require.NoError(t, err)
	_, err = env.Attempts.Take(ctx, "SPLIT1", noor.ID)
	require.NoError(t, err)

	detail, err := env.QuizSvc.Detail(quiz.ID, teacher.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, detail.TotalSubmissions)
	assert.EqualValues(t, 1, detail.SubmittedCount)
	assert.EqualValues(t, 1, detail.NotSubmittedCount)
	assert.InDelta(t, 50.0, detail.SubmittedPercentage, 0.001)
	assert.Equal(t, "http://quizfy.test/quiz/SPLIT1/join/", detail.JoinURL)
	assert.True(t, strings.HasPrefix(detail.QRCode, "data:image/png;base64,"))
}

func TestDeleteQuizRemovesRowsAndFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "GONE01", model.QuizTypeFileUpload)

	_, err := env.Attempts.Submit(ctx, "GONE01", student.ID, &AttemptAnswers{File: FileFromBytes("a.pdf", []byte("%PDF"))})
	require.NoError(t, err)
	require.Equal(t, 1, env.Store.count())

	require.NoError(t, env.QuizSvc.DeleteQuiz(ctx, quiz.ID, teacher.ID))
	assert.Equal(t, 0, env.Store.count())

	var remaining int64
	require.NoError(t, env.DB.Model(&model.Submission{}).Where("quiz_id = ?", quiz.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
	require.NoError(t, env.DB.Model(&model.FileSubmission{}).Count(&remaining).Error)
	assert.Zero(t, remaining)

	_, err = env.QuizSvc.Status("GONE01")
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestJoinAndScan(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "JOIN01", model.QuizTypeMultipleChoice)

	info, err := env.QuizSvc.Join("join01", nil)
	require.NoError(t, err)
	assert.False(t, info.IsClosed)
	assert.Empty(t, info.Next)

	info, err = env.QuizSvc.Join("JOIN01", &util.Claims{UserID: student.ID, Role: model.Student})
	require.NoError(t, err)
	assert.Equal(t, "/api/quiz/JOIN01/take", info.Next)

	info, err = env.QuizSvc.Join("JOIN01", &util.Claims{UserID: teacher.ID, Role: model.Teacher})
	require.NoError(t, err)
	assert.Empty(t, info.Next)
	assert.NotEmpty(t, info.Message)

	step, err := env.QuizSvc.Scan("join01", nil)
	require.NoError(t, err)
	assert.Equal(t, "login", step.Action)
	assert.Contains(t, step.Next, "next=/api/quiz/JOIN01/take")

	step, err = env.QuizSvc.Scan("JOIN01", &util.Claims{UserID: teacher.ID})
	require.NoError(t, err)
	assert.Equal(t, "error", step.Action)

	step, err = env.QuizSvc.Scan("JOIN01", &util.Claims{UserID: student.ID})
	require.NoError(t, err)
	assert.Equal(t, "take", step.Action)

	require.NoError(t, env.Quizzes.UpdateFields(quiz.ID, map[string]interface{}{"is_active": false}))
	info, err = env.QuizSvc.Join("JOIN01", nil)
	require.NoError(t, err)
	assert.True(t, info.IsClosed)
}

func TestFolderLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	folders := NewFolderService(env.Folders, env.Quizzes, env.QuizSvc, env.Storage)

	physics, err := folders.Create(teacher.ID, &CreateFolderRequest{Name: " Physics "})
	require.NoError(t, err)
	assert.Equal(t, "Physics", physics.Name)

	_, err = folders.Create(teacher.ID, &CreateFolderRequest{Name: "Physics"})
	assert.ErrorIs(t, err, util.ErrFolderExists)

	kept := env.quiz(t, teacher.ID, "KEEP01", model.QuizTypeMultipleChoice, inFolder(physics.ID))
	detail, err := folders.Detail(physics.ID, teacher.ID)
	require.NoError(t, err)
	require.Len(t, detail.Quizzes, 1)

	assert.ErrorIs(t, folders.Delete(ctx, physics.ID, teacher.ID, "archive"), util.ErrInvalidFolderAction)

	require.NoError(t, folders.Delete(ctx, physics.ID, teacher.ID, FolderMoveUngrouped))
	reloaded, err := env.Quizzes.FindByID(kept.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.FolderID)

	chem, err := folders.Create(teacher.ID, &CreateFolderRequest{Name: "Chemistry"})
	require.NoError(t, err)
	dropped := env.quiz(t, teacher.ID, "DROP01", model.QuizTypeMultipleChoice, inFolder(chem.ID))
	require.NoError(t, folders.Delete(ctx, chem.ID, teacher.ID, FolderDeleteAll))
	_, err = env.Quizzes.FindByID(dropped.ID)
	assert.Error(t, err)

	_, err = folders.Get(chem.ID, teacher.ID)
	assert.ErrorIs(t, err, util.ErrFolderNotFound)
}
