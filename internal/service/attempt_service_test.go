package service

import (
	"context"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitScoresChoiceQuestions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "AB12CD", model.QuizTypeMultipleChoice)
	q1 := env.question(t, quiz.ID, model.QuizTypeMultipleChoice, "2+2?", 2)
	q2 := env.question(t, quiz.ID, model.QuizTypeTrueFalse, "Sky is green", 2)
	q3 := env.question(t, quiz.ID, model.QuizTypeMultipleChoice, "Capital?", 4)

	state, err := env.Attempts.Take(ctx, "ab12cd", student.ID)
	require.NoError(t, err)
	require.Len(t, state.Questions, 3)
	assert.Nil(t, state.RemainingSeconds)
	assert.Equal(t, []string{"True", "False"}, state.Questions[1].Options)

	result, err := env.Attempts.Submit(ctx, "AB12CD", student.ID, selections(map[uint]string{
		q1.ID: "2",
		q2.ID: "1",
		q3.ID: "9",
	}))
	require.NoError(t, err)

	assert.True(t, result.Submission.IsSubmitted)
	assert.Equal(t, 1, result.Submission.Score)
	assert.Equal(t, 3, result.Submission.Total)
	assert.InDelta(t, 33.33, result.Percentage, 0.01)
	assert.Equal(t, "Sara bin Ali", result.StudentName)
	assert.Equal(t, "441100123", result.UniversityID)

	require.Len(t, result.Answers, 3)
	byQuestion := map[uint]model.Answer{}
	for _, a := range result.Answers {
		byQuestion[a.QuestionID] = a
	}
	assert.True(t, byQuestion[q1.ID].IsCorrect)
	assert.False(t, byQuestion[q2.ID].IsCorrect)
	assert.Nil(t, byQuestion[q3.ID].Selected)
}

func TestTakeResumesOpenAttempt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	env.quiz(t, teacher.ID, "RESUME", model.QuizTypeMultipleChoice)

	first, err := env.Attempts.Take(ctx, "RESUME", student.ID)
	require.NoError(t, err)
	env.Clock.Advance(2 * time.Minute)
	second, err := env.Attempts.Take(ctx, "RESUME", student.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Submission.ID, second.Submission.ID)
	assert.Equal(t, 1, second.Submission.AttemptNo)
	require.NotNil(t, second.Submission.StartedAt)
	assert.True(t, first.Submission.StartedAt.Equal(*second.Submission.StartedAt))
}

func TestAttemptsAreLimitedUntilTeacherAllowsMore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "LIMIT1", model.QuizTypeMultipleChoice)
	env.question(t, quiz.ID, model.QuizTypeMultipleChoice, "Pick B", 2)

	_, err := env.Attempts.Submit(ctx, "LIMIT1", student.ID, selections(nil))
	require.NoError(t, err)

	_, err = env.Attempts.Take(ctx, "LIMIT1", student.ID)
	assert.ErrorIs(t, err, util.ErrAttemptsExhausted)

	perm, err := env.Attempts.AllowExtraAttempt(quiz.ID, teacher.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, perm.AllowedAttempts)

	state, err := env.Attempts.Take(ctx, "LIMIT1", student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Submission.AttemptNo)
}

func TestAdjustAttemptsNeverDropsBelowOne(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "mr_khalid")
	other := env.teacher(t, "ms_huda")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "FLOOR1", model.QuizTypeMultipleChoice)

	perm, err := env.Attempts.AdjustAttempts(quiz.ID, teacher.ID, student.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, perm.AllowedAttempts)

	_, err = env.Attempts.AdjustAttempts(quiz.ID, teacher.ID, student.ID, 2)
	assert.ErrorIs(t, err, util.ErrInvalidAttemptDelta)

	_, err = env.Attempts.AdjustAttempts(quiz.ID, other.ID, student.ID, 1)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)

	_, err = env.Attempts.AdjustAttempts(quiz.ID, teacher.ID, 9999, 1)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestSubmitAtTimerExpiryGradesPostedAnswers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "TIMED1", model.QuizTypeMultipleChoice, withDuration(10))
	q1 := env.question(t, quiz.ID, model.QuizTypeMultipleChoice, "Pick A", 1)
	q2 := env.question(t, quiz.ID, model.QuizTypeMultipleChoice, "Pick B", 2)

	state, err := env.Attempts.Take(ctx, "TIMED1", student.ID)
	require.NoError(t, err)
	require.NotNil(t, state.RemainingSeconds)
	assert.Equal(t, 600, *state.RemainingSeconds)

	env.Clock.Advance(4 * time.Minute)
	state, err = env.Attempts.Take(ctx, "TIMED1", student.ID)
	require.NoError(t, err)
	assert.Equal(t, 360, *state.RemainingSeconds)

	// the browser auto-submits when the countdown hits zero
	env.Clock.Advance(6 * time.Minute)
	result, err := env.Attempts.Submit(ctx, "TIMED1", student.ID, selections(map[uint]string{q1.ID: "1", q2.ID: "4"}))
	require.NoError(t, err)
	assert.True(t, result.Submission.IsSubmitted)
	assert.Equal(t, 1, result.Submission.Score)
	assert.Equal(t, 2, result.Submission.Total)
	require.Len(t, result.Answers, 2)
	assert.True(t, result.Answers[0].IsCorrect)
	require.NotNil(t, result.Answers[1].Selected)
	assert.Equal(t, 4, *result.Answers[1].Selected)
}

func TestSubmitAfterTimerSkipsRequiredFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	sara := env.student(t, "Sara", "Ali", "441100123")
	noor := env.student(t, "Noor", "Saad", "441100124")
	env.quiz(t, teacher.ID, "ESSAY9", model.QuizTypeFileUpload, withDuration(5))

	for _, id := range []uint{sara.ID, noor.ID} {
		_, err := env.Attempts.Take(ctx, "ESSAY9", id)
		require.NoError(t, err)
	}
	env.Clock.Advance(6 * time.Minute)

	result, err := env.Attempts.Submit(ctx, "ESSAY9", sara.ID, selections(nil))
	require.NoError(t, err)
	assert.True(t, result.Submission.IsSubmitted)
	assert.Empty(t, result.FileSubmissions)

	late := &AttemptAnswers{File: FileFromBytes("essay.pdf", []byte("%PDF-1.4"))}
	result, err = env.Attempts.Submit(ctx, "ESSAY9", noor.ID, late)
	require.NoError(t, err)
	require.Len(t, result.FileSubmissions, 1)
	assert.Equal(t, "essay.pdf", result.FileSubmissions[0].FileName)
	assert.Equal(t, 1, env.Store.count())
}

func TestTakeBackfillsMissingStartTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "LEGACY", model.QuizTypeMultipleChoice, withDuration(10))
	env.question(t, quiz.ID, model.QuizTypeMultipleChoice, "Pick A", 1)

	sid := student.ID
	legacy := &model.Submission{QuizID: quiz.ID, StudentUserID: &sid, StudentName: "Sara Ali", Total: 1, AttemptNo: 1}
	require.NoError(t, env.Subs.Create(legacy))
	require.Nil(t, legacy.StartedAt)

	env.Clock.Advance(time.Hour)
	state, err := env.Attempts.Take(ctx, "LEGACY", student.ID)
	require.NoError(t, err)
	assert.Equal(t, legacy.ID, state.Submission.ID)
	assert.Nil(t, state.Result)
	require.NotNil(t, state.RemainingSeconds)
	assert.Equal(t, 600, *state.RemainingSeconds)

	stored, err := env.Subs.FindByID(legacy.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.StartedAt)
	assert.True(t, stored.StartedAt.Equal(env.Clock.Now()))
	assert.False(t, stored.IsSubmitted)
}

func TestTakeAfterTimerClosesAttempt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "TIMED2", model.QuizTypeMultipleChoice, withDuration(1))
	env.question(t, quiz.ID, model.QuizTypeMultipleChoice, "Pick A", 1)

	_, err := env.Attempts.Take(ctx, "TIMED2", student.ID)
	require.NoError(t, err)

	env.Clock.Advance(90 * time.Second)
	state, err := env.Attempts.Take(ctx, "TIMED2", student.ID)
	require.NoError(t, err)
	require.NotNil(t, state.Result)
	assert.True(t, state.Submission.IsSubmitted)
	assert.Empty(t, state.Questions)
}

func TestClosedQuizFinalizesOpenAttempt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "CLOSE1", model.QuizTypeMultipleChoice)
	env.question(t, quiz.ID, model.QuizTypeMultipleChoice, "Pick A", 1)

	_, err := env.Attempts.Take(ctx, "CLOSE1", student.ID)
	require.NoError(t, err)

	require.NoError(t, env.Quizzes.UpdateFields(quiz.ID, map[string]interface{}{"is_active": false}))

	_, err = env.Attempts.Take(ctx, "CLOSE1", student.ID)
	assert.ErrorIs(t, err, util.ErrQuizClosed)

	submitted, err := env.Subs.CountSubmitted(quiz.ID, student.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, submitted)

	open, err := env.Subs.LatestInProgress(quiz.ID, student.ID)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestPastDueQuizRejectsNewAttempts(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	due := env.Clock.Now().Add(-time.Hour)
	env.quiz(t, teacher.ID, "LATE01", model.QuizTypeMultipleChoice, func(q *model.Quiz) { q.DueAt = &due })

	_, err := env.Attempts.Take(context.Background(), "LATE01", student.ID)
	assert.ErrorIs(t, err, util.ErrQuizClosed)
}

func TestTeacherCannotTakeQuiz(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.teacher(t, "mr_khalid")
	env.quiz(t, teacher.ID, "NOPROF", model.QuizTypeMultipleChoice)

	_, err := env.Attempts.Take(context.Background(), "NOPROF", teacher.ID)
	assert.ErrorIs(t, err, util.ErrStudentProfile)

	_, err = env.Attempts.Take(context.Background(), "NOSUCH", teacher.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestFileUploadQuizRequiresFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	env.quiz(t, teacher.ID, "ESSAY1", model.QuizTypeFileUpload)

	_, err := env.Attempts.Submit(ctx, "ESSAY1", student.ID, selections(nil))
	assert.ErrorIs(t, err, util.ErrFileRequired)

	bad := &AttemptAnswers{File: FileFromBytes("virus.exe", []byte("MZ"))}
	_, err = env.Attempts.Submit(ctx, "ESSAY1", student.ID, bad)
	assert.ErrorIs(t, err, util.ErrFileType)
	assert.Equal(t, 0, env.Store.count())

	big := &AttemptAnswers{File: &UploadedFile{Name: "essay.pdf", Size: 2 * util.MB}}
	_, err = env.Attempts.Submit(ctx, "ESSAY1", student.ID, big)
	assert.ErrorIs(t, err, util.ErrFileTooLarge)

	good := &AttemptAnswers{File: FileFromBytes("My Essay.pdf", []byte("%PDF-1.4"))}
	result, err := env.Attempts.Submit(ctx, "ESSAY1", student.ID, good)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Submission.Total)
	require.Len(t, result.FileSubmissions, 1)
	assert.Nil(t, result.FileSubmissions[0].QuestionID)
	assert.Equal(t, "My Essay.pdf", result.FileSubmissions[0].FileName)
	assert.Equal(t, 1, env.Store.count())
}

func TestMixedQuizStoresPerQuestionFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "MIXED1", model.QuizTypeMultipleChoice)
	choice := env.question(t, quiz.ID, model.QuizTypeMultipleChoice, "Pick C", 3)
	upload := env.question(t, quiz.ID, model.QuizTypeFileUpload, "Attach your lab report", 1)

	answers := selections(map[uint]string{choice.ID: "3"})
	answers.QuestionFiles[upload.ID] = FileFromBytes("lab.png", []byte{0x89, 'P', 'N', 'G'})

	result, err := env.Attempts.Submit(ctx, "MIXED1", student.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Submission.Score)
	assert.Equal(t, 1, result.Submission.Total)
	require.Len(t, result.FileSubmissions, 1)
	require.NotNil(t, result.FileSubmissions[0].QuestionID)
	assert.Equal(t, upload.ID, *result.FileSubmissions[0].QuestionID)
}

func TestResultVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	owner := env.student(t, "Sara", "Ali", "441100123")
	other := env.student(t, "Noor", "Saad", "441100456")
	env.quiz(t, teacher.ID, "SEEME1", model.QuizTypeMultipleChoice)

	result, err := env.Attempts.Submit(ctx, "SEEME1", owner.ID, selections(nil))
	require.NoError(t, err)
	id := result.Submission.ID

	_, err = env.Attempts.Result("SEEME1", id, &util.Claims{UserID: owner.ID})
	assert.NoError(t, err)
	_, err = env.Attempts.Result("SEEME1", id, &util.Claims{UserID: teacher.ID})
	assert.NoError(t, err)
	_, err = env.Attempts.Result("SEEME1", id, &util.Claims{UserID: other.ID})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestSweepExpiredClosesOnlyFinishedTimers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	sara := env.student(t, "Sara", "Ali", "441100123")
	noor := env.student(t, "Noor", "Saad", "441100456")
	short := env.quiz(t, teacher.ID, "SHORT1", model.QuizTypeMultipleChoice, withDuration(5))
	long := env.quiz(t, teacher.ID, "LONG01", model.QuizTypeMultipleChoice, withDuration(60))
	env.quiz(t, teacher.ID, "UNTIME", model.QuizTypeMultipleChoice)

	_, err := env.Attempts.Take(ctx, "SHORT1", sara.ID)
	require.NoError(t, err)
	_, err = env.Attempts.Take(ctx, "LONG01", noor.ID)
	require.NoError(t, err)
	_, err = env.Attempts.Take(ctx, "UNTIME", noor.ID)
	require.NoError(t, err)

	env.Clock.Advance(10 * time.Minute)
	closed, err := env.Attempts.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	n, err := env.Subs.CountSubmitted(short.ID, sara.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = env.Subs.CountSubmitted(long.ID, noor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	closed, err = env.Attempts.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, closed)
}

func TestFinalizeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "TWICE1", model.QuizTypeMultipleChoice)
	q := env.question(t, quiz.ID, model.QuizTypeMultipleChoice, "Pick A", 1)

	state, err := env.Attempts.Take(ctx, "TWICE1", student.ID)
	require.NoError(t, err)
	stale := *state.Submission

	first, err := env.Attempts.finalize(ctx, quiz, state.Submission, selections(map[uint]string{q.ID: "1"}), FinalizeSubmit)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Submission.Score)

	// a second request still holding the open row loses the race and gets the stored result
	second, err := env.Attempts.finalize(ctx, quiz, &stale, selections(map[uint]string{q.ID: "2"}), FinalizeSubmit)
	require.NoError(t, err)
	assert.Equal(t, first.Submission.ID, second.Submission.ID)
	assert.Equal(t, 1, second.Submission.Score)

	answers, err := env.Subs.Answers(first.Submission.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	require.NotNil(t, answers[0].Selected)
	assert.Equal(t, 1, *answers[0].Selected)
}

func TestParseSelected(t *testing.T) {
	for raw, want := range map[string]int{"1": 1, " 4 ": 4} {
		got := parseSelected(raw)
		require.NotNil(t, got, raw)
		assert.Equal(t, want, *got)
	}
	for _, raw := range []string{"", "0", "5", "x", "-1"} {
		assert.Nil(t, parseSelected(raw), raw)
	}
}
