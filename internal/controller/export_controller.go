package controller

import (
	"fmt"
	"net/http"
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	ExportService *service.ExportService
}

func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{ExportService: exportService}
}

func sendWorkbook(ctx *gin.Context, file *service.ExportFile) {
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	ctx.Data(http.StatusOK, util.MimeXLSX, file.Data)
}

// ExportSubmissions godoc
// @Summary Download all submitted attempts of a quiz as xlsx
// @Tags Exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/teacher/quizzes/{id}/export [get]
func (c *ExportController) ExportSubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	file, err := c.ExportService.SubmissionsReport(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Username)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	sendWorkbook(ctx, file)
}

// ExportFolderBoxes godoc
// @Summary Download the per-quiz boxes report of a folder as xlsx
// @Tags Exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param id path int true "Folder ID"
// @Success 200 {file} binary
// @Router /api/teacher/folders/{id}/export-boxes [get]
func (c *ExportController) ExportFolderBoxes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	file, err := c.ExportService.FolderBoxesReport(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Username)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	sendWorkbook(ctx, file)
}

// ExportStudent godoc
// @Summary Download one student's report for a folder as xlsx
// @Tags Exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param id path int true "Folder ID"
// @Param studentId path int true "Student user ID"
// @Success 200 {file} binary
// @Router /api/teacher/folders/{id}/export/students/{studentId} [get]
func (c *ExportController) ExportStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	file, err := c.ExportService.StudentReport(util.MustParseUint(ctx.Param("id")), util.MustParseUint(ctx.Param("studentId")), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	sendWorkbook(ctx, file)
}
