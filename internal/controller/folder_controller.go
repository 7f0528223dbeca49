package controller

import (
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FolderController struct {
	FolderService *service.FolderService
}

func NewFolderController(folderService *service.FolderService) *FolderController {
	return &FolderController{FolderService: folderService}
}

type DeleteFolderRequest struct {
	Action string `json:"action" form:"action" binding:"required"`
}

// CreateFolder godoc
// @Summary Create a subject folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateFolderRequest true "Folder"
// @Success 201 {object} util.Response{data=model.SubjectFolder}
// @Failure 400 {object} util.Response
// @Router /api/teacher/folders [post]
func (c *FolderController) CreateFolder(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CreateFolderRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	folder, err := c.FolderService.Create(claims.UserID, &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, folder)
}

// GetFolder godoc
// @Summary Folder with its quizzes
// @Tags Folders
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Folder ID"
// @Success 200 {object} util.Response{data=service.FolderDetail}
// @Router /api/teacher/folders/{id} [get]
func (c *FolderController) GetFolder(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.FolderService.Detail(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// DeleteFolder godoc
// @Summary Delete a folder
// @Description action=delete_all removes the folder's quizzes too, action=move_ungrouped keeps them.
// @Tags Folders
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Folder ID"
// @Param action query string true "delete_all or move_ungrouped"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/teacher/folders/{id} [delete]
func (c *FolderController) DeleteFolder(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req DeleteFolderRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		util.BadRequest(ctx, util.ErrInvalidFolderAction.Error())
		return
	}
	if err := c.FolderService.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), claims.UserID, req.Action); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Folder deleted.", nil)
}
