package controller

import (
	"errors"
	"net/http"
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

type AdjustAttemptsRequest struct {
	Delta int `json:"delta" form:"delta" binding:"required,oneof=-1 1"`
}

// parseAttemptForm collects question_{id}, file and file_{id} fields from a
// multipart or urlencoded body.
func parseAttemptForm(ctx *gin.Context) (*service.AttemptAnswers, error) {
	answers := &service.AttemptAnswers{
		Selected:      make(map[uint]string),
		QuestionFiles: make(map[uint]*service.UploadedFile),
	}

	values := map[string][]string{}
	form, err := ctx.MultipartForm()
	switch {
	case err == nil:
		values = form.Value
		for field, headers := range form.File {
			if len(headers) == 0 {
				continue
			}
			switch {
			case field == "file":
				answers.File = service.FileFromHeader(headers[0])
			case strings.HasPrefix(field, "file_"):
				if id := util.MustParseUint(strings.TrimPrefix(field, "file_")); id > 0 {
					answers.QuestionFiles[id] = service.FileFromHeader(headers[0])
				}
			}
		}
	case errors.Is(err, http.ErrNotMultipart):
		if err := ctx.Request.ParseForm(); err != nil {
			return nil, err
		}
		values = ctx.Request.PostForm
	default:
		return nil, err
	}

	for field, vals := range values {
		if !strings.HasPrefix(field, "question_") || len(vals) == 0 {
			continue
		}
		if id := util.MustParseUint(strings.TrimPrefix(field, "question_")); id > 0 {
			answers.Selected[id] = vals[0]
		}
	}
	return answers, nil
}

// TakeQuiz godoc
// @Summary Start or resume an attempt
// @Description Runs the attempt gate and the timer. When the timer has already run out the attempt is closed and the result is returned.
// @Tags Attempts
// @Produce json
// @Security ApiKeyAuth
// @Param code path string true "Quiz code"
// @Success 200 {object} util.Response{data=service.AttemptState}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz/{code}/take [get]
func (c *AttemptController) TakeQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	state, err := c.AttemptService.Take(ctx.Request.Context(), ctx.Param("code"), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// SubmitQuiz godoc
// @Summary Submit answers and files
// @Tags Attempts
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param code path string true "Quiz code"
// @Param file formData file false "Whole-quiz upload for file_upload quizzes"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/quiz/{code}/take [post]
func (c *AttemptController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	answers, err := parseAttemptForm(ctx)
	if err != nil {
		util.BadRequest(ctx, "Invalid form data.")
		return
	}
	result, err := c.AttemptService.Submit(ctx.Request.Context(), ctx.Param("code"), claims.UserID, answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Result godoc
// @Summary Result of a finished attempt
// @Tags Attempts
// @Produce json
// @Security ApiKeyAuth
// @Param code path string true "Quiz code"
// @Param submissionId path int true "Submission ID"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Failure 403 {object} util.Response
// @Router /api/quiz/{code}/result/{submissionId} [get]
func (c *AttemptController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.AttemptService.Result(ctx.Param("code"), util.MustParseUint(ctx.Param("submissionId")), claims)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// AllowExtraAttempt godoc
// @Summary Give a student one more attempt
// @Tags Grading
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param studentId path int true "Student user ID"
// @Success 200 {object} util.Response{data=model.QuizAttemptPermission}
// @Router /api/teacher/quizzes/{id}/allow-extra/{studentId} [post]
func (c *AttemptController) AllowExtraAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	perm, err := c.AttemptService.AllowExtraAttempt(
		util.MustParseUint(ctx.Param("id")), claims.UserID, util.MustParseUint(ctx.Param("studentId")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, perm)
}

// AdjustAttempts godoc
// @Summary Raise or lower a student's allowed attempts by one
// @Tags Grading
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param studentId path int true "Student user ID"
// @Param body body AdjustAttemptsRequest true "Delta"
// @Success 200 {object} util.Response{data=model.QuizAttemptPermission}
// @Router /api/teacher/quizzes/{id}/attempts/{studentId}/adjust [post]
func (c *AttemptController) AdjustAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req AdjustAttemptsRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	perm, err := c.AttemptService.AdjustAttempts(
		util.MustParseUint(ctx.Param("id")), claims.UserID, util.MustParseUint(ctx.Param("studentId")), req.Delta)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, perm)
}
