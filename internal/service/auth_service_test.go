package service

import (
	"context"
	"quizfy_backend/internal/config"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/util"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, env *testEnv) (*AuthService, *ConsoleMailProvider) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Server.SiteURL = "http://quizfy.test"
	cfg.Quiz.PasswordResetTimeoutDays = 3
	mailer := NewMailService(config.MailConfig{Backend: "console", From: "Quizfy <noreply@quizfy.test>", SubjectPrefix: "[Quizfy] "})
	auth := NewAuthService(env.Users, mailer, cfg)
	auth.Now = env.Clock.Now
	auth.Tokens.Now = env.Clock.Now
	return auth, mailer.Console()
}

func studentSignup(universityID, email string) *StudentSignupRequest {
	return &StudentSignupRequest{
		FirstName:    "Sara",
		SecondName:   "Mohammed",
		ThirdName:    "Ali",
		UniversityID: universityID,
		City:         "Riyadh",
		Major:        "CS",
		Email:        email,
		Password1:    "s3cure-pass",
		Password2:    "s3cure-pass",
	}
}

func TestStudentUsername(t *testing.T) {
	assert.Equal(t, "saramohammedali123", StudentUsername("Sara", "Mohammed", "Ali", "441100123"))
	assert.Equal(t, "abd12", StudentUsername("A-b", "", "D", "12"))
	assert.Equal(t, "student", StudentUsername("", "", "", ""))
}

func TestRegisterAndLoginStudent(t *testing.T) {
	env := newTestEnv(t)
	auth, _ := newAuthService(t, env)

	res, err := auth.RegisterStudent(studentSignup("441100123", "Sara@School.test"))
	require.NoError(t, err)
	assert.Equal(t, "saramohammedali123", res.User.Username)
	assert.Equal(t, "sara@school.test", res.User.Email)
	require.NotNil(t, res.User.Profile)
	claims, err := util.ParseJWT(res.Token, auth.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, model.Student, claims.Role)

	// same names and ID tail, different student
	second, err := auth.RegisterStudent(studentSignup("551100123", "sara2@school.test"))
	require.NoError(t, err)
	assert.Equal(t, "saramohammedali1232", second.User.Username)

	_, err = auth.RegisterStudent(studentSignup("441100123", "other@school.test"))
	assert.ErrorIs(t, err, util.ErrUniversityIDTaken)
	_, err = auth.RegisterStudent(studentSignup("661100999", "sara@school.test"))
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
	short := studentSignup("771100999", "x@school.test")
	short.Password1, short.Password2 = "short", "short"
	_, err = auth.RegisterStudent(short)
	assert.ErrorIs(t, err, util.ErrPasswordTooShort)

	logged, err := auth.LoginStudent(&LoginRequest{Username: "sara@school.test", Password: "s3cure-pass"})
	require.NoError(t, err)
	assert.NotNil(t, logged.User.LastLogin)
	_, err = auth.LoginStudent(&LoginRequest{Username: "saramohammedali123", Password: "wrong"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestTeacherAndStudentLoginsAreSeparate(t *testing.T) {
	env := newTestEnv(t)
	auth, _ := newAuthService(t, env)

	_, err := auth.RegisterTeacher(&TeacherSignupRequest{Username: "mr_khalid", Password1: "a", Password2: "b"})
	assert.ErrorIs(t, err, util.ErrPasswordMismatch)
	_, err = auth.RegisterTeacher(&TeacherSignupRequest{Username: "mr_khalid", Email: "k@school.test", Password1: "teach-pass", Password2: "teach-pass"})
	require.NoError(t, err)
	_, err = auth.RegisterTeacher(&TeacherSignupRequest{Username: "mr_khalid", Password1: "x", Password2: "x"})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)

	_, err = auth.LoginTeacher(&LoginRequest{Username: "mr_khalid", Password: "teach-pass"})
	assert.NoError(t, err)
	_, err = auth.LoginStudent(&LoginRequest{Username: "mr_khalid", Password: "teach-pass"})
	assert.ErrorIs(t, err, util.ErrStudentsOnly)

	_, err = auth.RegisterStudent(studentSignup("441100123", "sara@school.test"))
	require.NoError(t, err)
	_, err = auth.LoginTeacher(&LoginRequest{Username: "saramohammedali123", Password: "s3cure-pass"})
	assert.ErrorIs(t, err, util.ErrInvalidTeacherLogin)
}

var resetLink = regexp.MustCompile(`/reset/([^/]+)/([^/]+)/`)

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth, outbox := newAuthService(t, env)

	res, err := auth.RegisterStudent(studentSignup("441100123", "sara@school.test"))
	require.NoError(t, err)

	require.NoError(t, auth.RequestPasswordReset(ctx, "nobody@school.test"))
	assert.Empty(t, outbox.Messages())

	require.NoError(t, auth.RequestPasswordReset(ctx, "sara@school.test"))
	msgs := outbox.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "[Quizfy] Password reset on Quizfy", msgs[0].Subject)
	m := resetLink.FindStringSubmatch(msgs[0].TextBody)
	require.Len(t, m, 3)
	assert.Equal(t, EncodeUID(res.User.ID), m[1])

	confirm := &PasswordResetConfirmRequest{UID: m[1], Token: m[2], NewPassword1: "brand-new-pass", NewPassword2: "brand-new-pass"}
	require.NoError(t, auth.ConfirmPasswordReset(confirm))

	_, err = auth.LoginStudent(&LoginRequest{Username: "sara@school.test", Password: "brand-new-pass"})
	require.NoError(t, err)

	// the password hash changed, so the link is spent
	assert.ErrorIs(t, auth.ConfirmPasswordReset(confirm), util.ErrInvalidResetLink)
}

func TestChangePasswordSendsNotice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth, outbox := newAuthService(t, env)

	res, err := auth.RegisterStudent(studentSignup("441100123", "sara@school.test"))
	require.NoError(t, err)

	err = auth.ChangePassword(ctx, res.User.ID, &ChangePasswordRequest{OldPassword: "nope", NewPassword1: "another-pass", NewPassword2: "another-pass"})
	assert.ErrorIs(t, err, util.ErrWrongOldPassword)
	err = auth.ChangePassword(ctx, res.User.ID, &ChangePasswordRequest{OldPassword: "s3cure-pass", NewPassword1: "another-pass", NewPassword2: "other-pass"})
	assert.ErrorIs(t, err, util.ErrPasswordFields)

	require.NoError(t, auth.ChangePassword(ctx, res.User.ID, &ChangePasswordRequest{OldPassword: "s3cure-pass", NewPassword1: "another-pass", NewPassword2: "another-pass"}))
	msgs := outbox.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].TextBody, "http://quizfy.test/password-reset/")
	assert.Equal(t, "sara@school.test", msgs[0].To[0].Address)
}
