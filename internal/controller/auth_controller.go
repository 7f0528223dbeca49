package controller

import (
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// TeacherSignup godoc
// @Summary Register a teacher account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.TeacherSignupRequest true "Signup form"
// @Success 201 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response
// @Router /api/teacher/signup [post]
func (c *AuthController) TeacherSignup(ctx *gin.Context) {
	var req service.TeacherSignupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	result, err := c.AuthService.RegisterTeacher(&req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// TeacherLogin godoc
// @Summary Teacher login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.AuthResult}
// @Failure 401 {object} util.Response
// @Router /api/teacher/login [post]
func (c *AuthController) TeacherLogin(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	result, err := c.AuthService.LoginTeacher(&req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// StudentSignup godoc
// @Summary Register a student account
// @Description The username is derived from the names and the last three digits of the university ID.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.StudentSignupRequest true "Signup form"
// @Success 201 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response
// @Router /api/student/signup [post]
func (c *AuthController) StudentSignup(ctx *gin.Context) {
	var req service.StudentSignupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	result, err := c.AuthService.RegisterStudent(&req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// StudentLogin godoc
// @Summary Student login by username or email
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.AuthResult}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/student/login [post]
func (c *AuthController) StudentLogin(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	result, err := c.AuthService.LoginStudent(&req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags Auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ChangePasswordRequest true "Passwords"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ChangePasswordRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	if err := c.AuthService.ChangePassword(ctx.Request.Context(), claims.UserID, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Your password was changed.", nil)
}

// RequestPasswordReset godoc
// @Summary Email a password reset link
// @Description Always answers 200 so addresses cannot be probed.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.PasswordResetRequest true "Email"
// @Success 200 {object} util.Response
// @Router /api/password-reset [post]
func (c *AuthController) RequestPasswordReset(ctx *gin.Context) {
	var req service.PasswordResetRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	if err := c.AuthService.RequestPasswordReset(ctx.Request.Context(), req.Email); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "If an account exists for that email, a reset link has been sent.", nil)
}

// ConfirmPasswordReset godoc
// @Summary Set a new password from a reset link
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.PasswordResetConfirmRequest true "Reset form"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/password-reset/confirm [post]
func (c *AuthController) ConfirmPasswordReset(ctx *gin.Context) {
	var req service.PasswordResetConfirmRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, util.ValidationMessage(err))
		return
	}
	if err := c.AuthService.ConfirmPasswordReset(&req); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Your password has been set. You may go ahead and log in now.", nil)
}
