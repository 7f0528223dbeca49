package util

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"quizfy_backend/internal/model"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, ValidateUpload("Essay.PDF", 10, MB, AllowedSubmissionExtensions))
	assert.ErrorIs(t, ValidateUpload("essay.docx", 10, MB, AllowedSubmissionExtensions), ErrFileType)
	assert.ErrorIs(t, ValidateUpload("essay.pdf", MB+1, MB, AllowedSubmissionExtensions), ErrFileTooLarge)
	assert.False(t, HasExtension("noext", AllowedImageExtensions))
}

func TestValidateMimeType(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	mime, err := ValidateMimeType(bytes.NewReader(png), []string{"image/"})
	require.NoError(t, err)
	assert.True(t, IsImage(mime))

	mime, err = ValidateMimeType(bytes.NewReader([]byte("%PDF-1.4")), []string{"image/"})
	assert.Error(t, err)
	assert.Equal(t, MimePDF, mime)
}

func TestContentTypeAndSafeFilename(t *testing.T) {
	assert.Equal(t, MimePDF, ContentTypeByName("a.pdf"))
	assert.Equal(t, "image/jpeg", ContentTypeByName("a.JPEG"))
	assert.Equal(t, MimeOctetStream, ContentTypeByName("a.zip"))

	assert.Equal(t, "My_Essay.pdf", SafeFilename("My Essay.pdf"))
	assert.Equal(t, "evil.sh", SafeFilename("../../etc/evil.sh"))
	assert.Equal(t, "report.pdf", SafeFilename(`C:\Users\sara\report.pdf`))
	assert.Equal(t, "file", SafeFilename("ملف"))
}

func TestConversions(t *testing.T) {
	assert.EqualValues(t, 12, MustParseUint("12"))
	assert.EqualValues(t, 0, MustParseUint("-3"))
	assert.Equal(t, []uint{1, 3}, ParseUintList("1, x, 3,0"))
	assert.Nil(t, ParseUintList(""))
	assert.Equal(t, "héll", Truncate("héllo", 4))
	assert.Equal(t, "ok", Truncate("ok", 4))
}

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Username: "mr_khalid", Email: "k@school.test", Role: model.Teacher}
	user.ID = 9

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.EqualValues(t, 9, claims.UserID)
	assert.Equal(t, model.Teacher, claims.Role)
	assert.Equal(t, "quizfy", claims.Issuer)
	assert.True(t, claims.IsTeacher())
	assert.False(t, (*Claims)(nil).IsTeacher())

	_, err = ParseJWT(token, "other")
	assert.Error(t, err)

	expired, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.Error(t, err)
}

func TestHandleErrorMapsSentinels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
	}{
		{ErrQuizNotFound, http.StatusNotFound},
		{fmt.Errorf("take quiz: %w", ErrAttemptsExhausted), http.StatusForbidden},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrFolderExists, http.StatusBadRequest},
		{errors.New("db is down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		HandleError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}
}

type signupForm struct {
	Title    string         `form:"title" binding:"required,notblank"`
	QuizType model.QuizType `form:"quiz_type" binding:"required,quiztype"`
}

func TestCustomValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())

	err := binding.Validator.ValidateStruct(&signupForm{Title: "   ", QuizType: "essay"})
	require.Error(t, err)
	msg := ValidationMessage(err)
	assert.Contains(t, msg, "title cannot be blank")
	assert.Contains(t, msg, "quiz_type must be one of multiple_choice, true_false, file_upload")

	assert.NoError(t, binding.Validator.ValidateStruct(&signupForm{Title: "Week 1", QuizType: model.QuizTypeFileUpload}))
	assert.Equal(t, "plain", ValidationMessage(errors.New("plain")))
}
