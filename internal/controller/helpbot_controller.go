package controller

import (
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HelpBotController struct {
	HelpBot *service.HelpBotService
}

func NewHelpBotController(helpBot *service.HelpBotService) *HelpBotController {
	return &HelpBotController{HelpBot: helpBot}
}

type HelpBotRequest struct {
	Message string `json:"message"`
}

type HelpBotReply struct {
	Reply string `json:"reply"`
}

// Ask godoc
// @Summary Ask the teacher FAQ bot
// @Tags HelpBot
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body HelpBotRequest true "Question"
// @Success 200 {object} util.Response{data=HelpBotReply}
// @Failure 400 {object} util.Response
// @Router /api/teacher/help-bot [post]
func (c *HelpBotController) Ask(ctx *gin.Context) {
	var req HelpBotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid JSON body.")
		return
	}
	util.Success(ctx, HelpBotReply{Reply: c.HelpBot.Reply(ctx.Request.Context(), req.Message)})
}
