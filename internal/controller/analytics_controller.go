package controller

import (
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// Analytics godoc
// @Summary Error rates and weakest students of a folder
// @Tags Folders
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Folder ID"
// @Success 200 {object} util.Response{data=service.FolderAnalytics}
// @Router /api/teacher/folders/{id}/analytics [get]
func (c *AnalyticsController) Analytics(ctx *gin.Context) {
	c.analytics(ctx, false)
}

// AnalyzeWithAI godoc
// @Summary Folder analytics plus an AI weak-topic report
// @Description AI failures are reported inside aiAnalysis and never fail the request.
// @Tags Folders
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Folder ID"
// @Success 200 {object} util.Response{data=service.FolderAnalytics}
// @Router /api/teacher/folders/{id}/analytics [post]
func (c *AnalyticsController) AnalyzeWithAI(ctx *gin.Context) {
	c.analytics(ctx, true)
}

func (c *AnalyticsController) analytics(ctx *gin.Context, analyze bool) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.AnalyticsService.FolderAnalytics(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), claims.UserID, analyze)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
