package util

import (
	"errors"
	"net/http"
	"quizfy_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.ReportError("Internal server error", err,
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	InternalServerError(c)
}

var errorStatus = []struct {
	err    error
	status int
}{
	{ErrQuizNotFound, http.StatusNotFound},
	{ErrQuestionNotFound, http.StatusNotFound},
	{ErrFolderNotFound, http.StatusNotFound},
	{ErrSubmissionNotFound, http.StatusNotFound},
	{ErrUserNotFound, http.StatusNotFound},
	{ErrQuizClosed, http.StatusForbidden},
	{ErrQuizClosedMidway, http.StatusForbidden},
	{ErrAttemptsExhausted, http.StatusForbidden},
	{ErrStudentProfile, http.StatusForbidden},
	{ErrPermissionDenied, http.StatusForbidden},
	{ErrStudentsOnly, http.StatusForbidden},
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrInvalidTeacherLogin, http.StatusUnauthorized},
	{ErrWrongOldPassword, http.StatusBadRequest},
	{ErrUsernameTaken, http.StatusBadRequest},
	{ErrEmailRegistered, http.StatusBadRequest},
	{ErrUniversityIDTaken, http.StatusBadRequest},
	{ErrPasswordMismatch, http.StatusBadRequest},
	{ErrPasswordFields, http.StatusBadRequest},
	{ErrPasswordTooShort, http.StatusBadRequest},
	{ErrInvalidResetLink, http.StatusBadRequest},
	{ErrFolderExists, http.StatusBadRequest},
	{ErrInvalidFolderAction, http.StatusBadRequest},
	{ErrFileRequired, http.StatusBadRequest},
	{ErrFileTooLarge, http.StatusBadRequest},
	{ErrFileType, http.StatusBadRequest},
	{ErrImageType, http.StatusBadRequest},
	{ErrInvalidQuizType, http.StatusBadRequest},
	{ErrInvalidOption, http.StatusBadRequest},
	{ErrInvalidDuration, http.StatusBadRequest},
	{ErrInvalidAttemptDelta, http.StatusBadRequest},
}

// HandleError maps service sentinel errors to responses; anything else is a 500.
func HandleError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			Error(c, e.status, e.err.Error())
			return
		}
	}
	LogInternalError(c, err)
}
