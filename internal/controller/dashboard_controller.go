package controller

import (
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

type EnterQuizRequest struct {
	Code string `json:"code" form:"code" binding:"required"`
}

// GetStudentDashboard godoc
// @Summary Student profile and own submissions
// @Tags Student
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StudentDashboard}
// @Router /api/student/dashboard [get]
func (c *DashboardController) GetStudentDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	dashboard, err := c.DashboardService.GetStudentDashboard(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// EnterQuiz godoc
// @Summary Resolve a typed quiz code
// @Tags Student
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EnterQuizRequest true "Code"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/student/enter-quiz [post]
func (c *DashboardController) EnterQuiz(ctx *gin.Context) {
	var req EnterQuizRequest
	if err := ctx.ShouldBind(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		util.HandleError(ctx, util.ErrQuizNotFound)
		return
	}
	code, err := c.DashboardService.EnterQuiz(req.Code)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"code": code, "next": "/api/quiz/" + code + "/take"})
}

// SubmissionDetail godoc
// @Summary One of the student's own submissions
// @Tags Student
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} util.Response{data=service.StudentSubmissionDetail}
// @Failure 404 {object} util.Response
// @Router /api/student/submissions/{id} [get]
func (c *DashboardController) SubmissionDetail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.DashboardService.SubmissionDetail(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}
