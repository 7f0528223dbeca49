package controller

import (
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// optionalFile returns nil when the multipart field is absent.
func optionalFile(ctx *gin.Context, field string) *service.UploadedFile {
	fh, err := ctx.FormFile(field)
	if err != nil {
		return nil
	}
	return service.FileFromHeader(fh)
}

// CreateQuestion godoc
// @Summary Add a question to a quiz
// @Tags Questions
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param text formData string true "Question text"
// @Param question_type formData string false "multiple_choice, true_false or file_upload"
// @Param option1 formData string false "Option 1"
// @Param option2 formData string false "Option 2"
// @Param option3 formData string false "Option 3"
// @Param option4 formData string false "Option 4"
// @Param correct_option formData int false "1-4"
// @Param image formData file false "Question image"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/teacher/quizzes/{id}/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.QuestionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	q, err := c.QuestionService.Create(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), claims.UserID, &req, optionalFile(ctx, "image"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary Edit a question
// @Tags Questions
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param questionId path int true "Question ID"
// @Param text formData string true "Question text"
// @Param remove_image formData bool false "Drop the current image"
// @Param image formData file false "Replacement image"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/teacher/quizzes/{id}/questions/{questionId} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.QuestionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	q, err := c.QuestionService.Update(ctx.Request.Context(),
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("questionId")),
		claims.UserID, &req, optionalFile(ctx, "image"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary Delete a question and its answers
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param questionId path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id}/questions/{questionId} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.QuestionService.Delete(ctx.Request.Context(),
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("questionId")),
		claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Question deleted.", nil)
}
