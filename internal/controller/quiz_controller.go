package controller

import (
	"net/http"
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
	QR          *service.QRCodeService
}

func NewQuizController(quizService *service.QuizService, qr *service.QRCodeService) *QuizController {
	return &QuizController{QuizService: quizService, QR: qr}
}

// Dashboard godoc
// @Summary List the teacher's quizzes grouped by folder
// @Tags Quizzes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.TeacherDashboard}
// @Router /api/teacher/quizzes [get]
func (c *QuizController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	dashboard, err := c.QuizService.Dashboard(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateQuizRequest true "Quiz"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Router /api/teacher/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CreateQuizRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	quiz, err := c.QuizService.CreateQuiz(claims.UserID, &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// LiveCounts godoc
// @Summary Assigned and submitted counters for dashboard polling
// @Tags Quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param ids query string false "Comma separated quiz ids"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/live-counts [get]
func (c *QuizController) LiveCounts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	counts, err := c.QuizService.LiveCounts(claims.UserID, util.ParseUintList(ctx.Query("ids")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"quizzes": counts})
}

// GetQuiz godoc
// @Summary Quiz detail with questions, submission stats and QR code
// @Tags Quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=service.QuizDetail}
// @Failure 404 {object} util.Response
// @Router /api/teacher/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.QuizService.Detail(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// DeleteQuiz godoc
// @Summary Delete a quiz with its questions, submissions and files
// @Tags Quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.QuizService.DeleteQuiz(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), claims.UserID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Quiz deleted.", nil)
}

// ToggleActive godoc
// @Summary Open or close a quiz
// @Tags Quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/teacher/quizzes/{id}/toggle [post]
func (c *QuizController) ToggleActive(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quiz, err := c.QuizService.ToggleActive(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// UpdateSettings godoc
// @Summary Replace due date, timer and active flag
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param body body service.QuizSettingsRequest true "Settings"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/teacher/quizzes/{id}/settings [put]
func (c *QuizController) UpdateSettings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.QuizSettingsRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	quiz, err := c.QuizService.UpdateSettings(util.MustParseUint(ctx.Param("id")), claims.UserID, &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// MoveQuiz godoc
// @Summary Move a quiz into a folder or back to ungrouped
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param body body service.MoveQuizRequest true "Target folder"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/teacher/quizzes/{id}/move [post]
func (c *QuizController) MoveQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.MoveQuizRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	quiz, err := c.QuizService.Move(util.MustParseUint(ctx.Param("id")), claims.UserID, &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Status godoc
// @Summary Whether a quiz can be started right now
// @Tags Public
// @Produce json
// @Param code path string true "Quiz code"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz/{code}/status [get]
func (c *QuizController) Status(ctx *gin.Context) {
	active, err := c.QuizService.Status(ctx.Param("code"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"active": active})
}

// Join godoc
// @Summary Landing data for a scanned quiz link
// @Tags Public
// @Produce json
// @Param code path string true "Quiz code"
// @Success 200 {object} util.Response{data=service.JoinInfo}
// @Router /api/quiz/{code}/join [get]
func (c *QuizController) Join(ctx *gin.Context) {
	info, err := c.QuizService.Join(ctx.Param("code"), util.GetUserFromContext(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, info)
}

// Scan godoc
// @Summary Next step after scanning a quiz QR code
// @Tags Public
// @Produce json
// @Param code path string true "Quiz code"
// @Success 200 {object} util.Response{data=service.ScanStep}
// @Router /api/quiz/{code}/scan [get]
func (c *QuizController) Scan(ctx *gin.Context) {
	step, err := c.QuizService.Scan(ctx.Param("code"), util.GetUserFromContext(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, step)
}

// QRCode godoc
// @Summary PNG QR code pointing at the join page
// @Tags Public
// @Produce png
// @Param code path string true "Quiz code"
// @Success 200 {file} binary
// @Router /api/quiz/{code}/qr [get]
func (c *QuizController) QRCode(ctx *gin.Context) {
	ctx.Header("Cache-Control", "public, max-age=3600")
	ctx.Data(http.StatusOK, util.MimePNG, c.QR.PNG(ctx.Param("code")))
}
