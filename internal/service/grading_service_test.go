package service

import (
	"context"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/util"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestGradeFileSubmissionAndReplaceFeedback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "GRADE1", model.QuizTypeFileUpload)

	res, err := env.Attempts.Submit(ctx, "GRADE1", student.ID, &AttemptAnswers{File: FileFromBytes("essay.pdf", []byte("%PDF"))})
	require.NoError(t, err)
	require.Len(t, res.FileSubmissions, 1)
	fsID := res.FileSubmissions[0].ID
	subID := res.Submission.ID

	view, err := env.Grading.Grade(ctx, quiz.ID, subID, teacher.ID, &GradeSubmissionRequest{
		Files: map[uint]*FileGrade{fsID: {
			Grade:       strPtr("  " + strings.Repeat("A", 60) + "  "),
			Comment:     strPtr(" Good structure "),
			TeacherFile: FileFromBytes("notes.pdf", []byte("%PDF-notes")),
		}},
	})
	require.NoError(t, err)
	require.Len(t, view.FileSubmissions, 1)
	graded := view.FileSubmissions[0]
	assert.Len(t, graded.Grade, 50)
	assert.Equal(t, "Good structure", graded.TeacherComment)
	assert.Equal(t, "notes.pdf", graded.TeacherFileName)
	require.NotNil(t, graded.GradedAt)
	assert.Equal(t, "Sara bin Ali", view.StudentName)
	assert.Equal(t, "441100123", view.UniversityID)
	assert.Equal(t, 2, env.Store.count())
	firstKey := graded.TeacherFileKey

	_, err = env.Grading.Grade(ctx, quiz.ID, subID, teacher.ID, &GradeSubmissionRequest{
		Files: map[uint]*FileGrade{fsID: {TeacherFile: FileFromBytes("notes-v2.pdf", []byte("%PDF-v2"))}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, env.Store.count())
	assert.Contains(t, env.Store.deleted, firstKey)

	reloaded, err := env.Subs.FileSubmissions(subID)
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	assert.Equal(t, "notes-v2.pdf", reloaded[0].TeacherFileName)
	assert.Len(t, reloaded[0].Grade, 50, "fields absent from the form keep their values")

	other := env.teacher(t, "ms_huda")
	_, err = env.Grading.DeleteFileFeedback(ctx, fsID, other.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	cleared, err := env.Grading.DeleteFileFeedback(ctx, fsID, teacher.ID)
	require.NoError(t, err)
	assert.Empty(t, cleared.TeacherFileURL)
	assert.Equal(t, 1, env.Store.count())
}

func TestGradeSubmissionLevelFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "GRADE2", model.QuizTypeMultipleChoice)
	q := env.question(t, quiz.ID, model.QuizTypeMultipleChoice, "2+2?", 2)

	res, err := env.Attempts.Submit(ctx, "GRADE2", student.ID, selections(map[uint]string{q.ID: "2"}))
	require.NoError(t, err)
	subID := res.Submission.ID

	view, err := env.Grading.Grade(ctx, quiz.ID, subID, teacher.ID, &GradeSubmissionRequest{
		ManualGrade:    strPtr("B+"),
		TeacherComment: strPtr("Check question 3 again."),
		TeacherFile:    FileFromBytes("marked.png", []byte{0x89, 'P', 'N', 'G'}),
	})
	require.NoError(t, err)
	assert.Equal(t, "B+", view.Submission.ManualGrade)
	assert.Equal(t, "Check question 3 again.", view.Submission.TeacherComment)
	assert.NotNil(t, view.Submission.GradedAt)
	assert.Equal(t, 1, view.Submission.Score)

	_, err = env.Grading.DeleteSubmissionFeedback(ctx, subID, env.teacher(t, "ms_huda").ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	sub, err := env.Grading.DeleteSubmissionFeedback(ctx, subID, teacher.ID)
	require.NoError(t, err)
	assert.Empty(t, sub.TeacherFileName)
	assert.Equal(t, 0, env.Store.count())

	stored, err := env.Subs.FindByID(subID)
	require.NoError(t, err)
	assert.Equal(t, "B+", stored.ManualGrade)
	assert.Empty(t, stored.TeacherFileKey)
}

func TestGradeRejectsOversizedFeedbackAndForeignTeacher(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	student := env.student(t, "Sara", "Ali", "441100123")
	quiz := env.quiz(t, teacher.ID, "GRADE3", model.QuizTypeMultipleChoice)

	res, err := env.Attempts.Submit(ctx, "GRADE3", student.ID, selections(nil))
	require.NoError(t, err)

	_, err = env.Grading.Grade(ctx, quiz.ID, res.Submission.ID, teacher.ID, &GradeSubmissionRequest{
		ManualGrade: strPtr("A"),
		TeacherFile: FileFromBytes("huge.pdf", make([]byte, 2<<20)),
	})
	assert.ErrorIs(t, err, util.ErrFileTooLarge)
	stored, err := env.Subs.FindByID(res.Submission.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ManualGrade)

	other := env.teacher(t, "ms_huda")
	_, err = env.Grading.Grade(ctx, quiz.ID, res.Submission.ID, other.ID, &GradeSubmissionRequest{ManualGrade: strPtr("F")})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)

	_, err = env.Grading.View(quiz.ID, res.Submission.ID+100, teacher.ID)
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}

func TestListSubmissionsIncludesAttemptAllowance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	sara := env.student(t, "Sara", "Ali", "441100123")
	noor := env.student(t, "Noor", "Saad", "441100456")
	quiz := env.quiz(t, teacher.ID, "LIST01", model.QuizTypeMultipleChoice)

	_, err := env.Attempts.Submit(ctx, "LIST01", sara.ID, selections(nil))
	require.NoError(t, err)
	_, err = env.Attempts.Take(ctx, "LIST01", noor.ID)
	require.NoError(t, err)
	_, err = env.Attempts.AllowExtraAttempt(quiz.ID, teacher.ID, sara.ID)
	require.NoError(t, err)

	list, err := env.Grading.ListSubmissions(quiz.ID, teacher.ID)
	require.NoError(t, err)
	require.Len(t, list.Submissions, 1)
	assert.Equal(t, sara.ID, *list.Submissions[0].StudentUserID)
	assert.Equal(t, 2, list.AttemptMap[sara.ID])
	_, ok := list.AttemptMap[noor.ID]
	assert.False(t, ok)
}
