package service

import (
	"context"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestQuestionLifecycleWithImages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	quiz := env.quiz(t, teacher.ID, "QUEST1", model.QuizTypeMultipleChoice)
	questions := NewQuestionService(env.Quizzes, env.Questions, env.Storage)

	req := &QuestionRequest{Text: " Which is a prime? ", Option1: "4", Option2: "7", Option3: "9", Option4: "12", CorrectOption: 2}
	q, err := questions.Create(ctx, quiz.ID, teacher.ID, req, FileFromBytes("graph.png", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "Which is a prime?", q.Text)
	assert.Equal(t, model.QuizTypeMultipleChoice, q.QuestionType)
	require.NotEmpty(t, q.ImageKey)
	firstKey := q.ImageKey

	tf := &QuestionRequest{QuestionType: model.QuizTypeTrueFalse, Text: "7 is prime", Option1: "x", Option3: "y", CorrectOption: 4}
	updated, err := questions.Update(ctx, quiz.ID, q.ID, teacher.ID, tf, FileFromBytes("graph2.png", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, model.TrueLabel, updated.Option1)
	assert.Equal(t, model.FalseLabel, updated.Option2)
	assert.Empty(t, updated.Option3)
	assert.Equal(t, 1, updated.CorrectOption)
	assert.Contains(t, env.Store.deleted, firstKey)
	assert.Equal(t, 1, env.Store.count())

	tf.RemoveImage = true
	updated, err = questions.Update(ctx, quiz.ID, q.ID, teacher.ID, tf, nil)
	require.NoError(t, err)
	assert.Empty(t, updated.ImageURL)
	assert.Equal(t, 0, env.Store.count())

	require.NoError(t, questions.Delete(ctx, quiz.ID, q.ID, teacher.ID))
	assert.ErrorIs(t, questions.Delete(ctx, quiz.ID, q.ID, teacher.ID), util.ErrQuestionNotFound)
}

func TestQuestionImageValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.teacher(t, "mr_khalid")
	quiz := env.quiz(t, teacher.ID, "QUEST2", model.QuizTypeMultipleChoice)
	questions := NewQuestionService(env.Quizzes, env.Questions, env.Storage)
	req := &QuestionRequest{Text: "Pick one", Option1: "a", Option2: "b"}

	_, err := questions.Create(ctx, quiz.ID, teacher.ID, req, FileFromBytes("notes.pdf", []byte("%PDF")))
	assert.ErrorIs(t, err, util.ErrImageType)

	_, err = questions.Create(ctx, quiz.ID, teacher.ID, req, FileFromBytes("fake.png", []byte("plain text pretending")))
	assert.ErrorIs(t, err, util.ErrImageType)

	_, err = questions.Create(ctx, quiz.ID, teacher.ID, req, FileFromBytes("big.png", make([]byte, util.MaxImageSize+1)))
	assert.ErrorIs(t, err, util.ErrFileTooLarge)
	assert.Equal(t, 0, env.Store.count())

	_, err = questions.Create(ctx, quiz.ID, teacher.ID, &QuestionRequest{Text: "x", CorrectOption: 5}, nil)
	assert.ErrorIs(t, err, util.ErrInvalidOption)

	_, err = questions.Create(ctx, quiz.ID, env.teacher(t, "ms_huda").ID, req, nil)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}
