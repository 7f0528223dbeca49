package controller

import (
	"errors"
	"net/http"
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type GradeController struct {
	GradingService *service.GradingService
}

func NewGradeController(gradingService *service.GradingService) *GradeController {
	return &GradeController{GradingService: gradingService}
}

func fileGradeFor(files map[uint]*service.FileGrade, id uint) *service.FileGrade {
	fg, ok := files[id]
	if !ok {
		fg = &service.FileGrade{}
		files[id] = fg
	}
	return fg
}

// parseGradeForm reads grade_{id}, comment_{id} and teacher_file_{id} per
// FileSubmission plus the submission-level manual_grade, teacher_comment and
// teacher_file. Fields that were not posted stay nil.
func parseGradeForm(ctx *gin.Context) (*service.GradeSubmissionRequest, error) {
	req := &service.GradeSubmissionRequest{Files: make(map[uint]*service.FileGrade)}

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
			case field == "teacher_file":
				req.TeacherFile = service.FileFromHeader(headers[0])
			case strings.HasPrefix(field, "teacher_file_"):
				if id := util.MustParseUint(strings.TrimPrefix(field, "teacher_file_")); id > 0 {
					fileGradeFor(req.Files, id).TeacherFile = service.FileFromHeader(headers[0])
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
		if len(vals) == 0 {
			continue
		}
		v := vals[0]
		switch {
		case field == "manual_grade":
			req.ManualGrade = &v
		case field == "teacher_comment":
			req.TeacherComment = &v
		case strings.HasPrefix(field, "grade_"):
			if id := util.MustParseUint(strings.TrimPrefix(field, "grade_")); id > 0 {
				fileGradeFor(req.Files, id).Grade = &v
			}
		case strings.HasPrefix(field, "comment_"):
			if id := util.MustParseUint(strings.TrimPrefix(field, "comment_")); id > 0 {
				fileGradeFor(req.Files, id).Comment = &v
			}
		}
	}
	return req, nil
}

// ListSubmissions godoc
// @Summary Submitted attempts of a quiz with per-student allowances
// @Tags Grading
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=service.SubmissionList}
// @Router /api/teacher/quizzes/{id}/submissions [get]
func (c *GradeController) ListSubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	list, err := c.GradingService.ListSubmissions(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// ViewSubmission godoc
// @Summary Grading view of one submission
// @Tags Grading
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param submissionId path int true "Submission ID"
// @Success 200 {object} util.Response{data=service.GradingView}
// @Router /api/teacher/quizzes/{id}/submissions/{submissionId}/grade [get]
func (c *GradeController) ViewSubmission(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	view, err := c.GradingService.View(util.MustParseUint(ctx.Param("id")), util.MustParseUint(ctx.Param("submissionId")), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// GradeSubmission godoc
// @Summary Save grades, comments and feedback files
// @Tags Grading
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param submissionId path int true "Submission ID"
// @Param manual_grade formData string false "Submission grade"
// @Param teacher_comment formData string false "Submission comment"
// @Param teacher_file formData file false "Submission feedback file"
// @Success 200 {object} util.Response{data=service.GradingView}
// @Router /api/teacher/quizzes/{id}/submissions/{submissionId}/grade [post]
func (c *GradeController) GradeSubmission(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	req, err := parseGradeForm(ctx)
	if err != nil {
		util.BadRequest(ctx, "Invalid form data.")
		return
	}
	view, err := c.GradingService.Grade(ctx.Request.Context(),
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("submissionId")),
		claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Grading saved successfully!", view)
}

// DeleteFileFeedback godoc
// @Summary Remove the teacher's file from a file submission
// @Tags Grading
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "FileSubmission ID"
// @Success 200 {object} util.Response{data=model.FileSubmission}
// @Failure 403 {object} util.Response
// @Router /api/teacher/file-submissions/{id}/feedback [delete]
func (c *GradeController) DeleteFileFeedback(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	fs, err := c.GradingService.DeleteFileFeedback(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Feedback file removed.", fs)
}

// DeleteSubmissionFeedback godoc
// @Summary Remove the teacher's file from a submission
// @Tags Grading
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 403 {object} util.Response
// @Router /api/teacher/submissions/{id}/feedback [delete]
func (c *GradeController) DeleteSubmissionFeedback(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	sub, err := c.GradingService.DeleteSubmissionFeedback(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Feedback file removed.", sub)
}
