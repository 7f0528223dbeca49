package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"quizfy_backend/internal/config"
	"quizfy_backend/internal/middleware"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/repository"
	"quizfy_backend/internal/service"
	"quizfy_backend/internal/util"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authServer struct {
	router *gin.Engine
	cfg    *config.Config
	outbox *service.ConsoleMailProvider
}

func newAuthServer(t *testing.T) *authServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{}
	cfg.JWT.Secret = "controller-test-secret-0123456789"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Server.SiteURL = "http://quizfy.test"
	cfg.Quiz.PasswordResetTimeoutDays = 3

	mailer := service.NewMailService(config.MailConfig{Backend: "console", From: "noreply@quizfy.test"})
	auth := NewAuthController(service.NewAuthService(repository.NewUserRepository(db), mailer, cfg))
	helpBot, err := service.NewHelpBotService(nil)
	require.NoError(t, err)
	bot := NewHelpBotController(helpBot)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/teacher/signup", auth.TeacherSignup)
	api.POST("/student/signup", auth.StudentSignup)
	api.POST("/student/login", auth.StudentLogin)
	api.POST("/password-reset", auth.RequestPasswordReset)
	api.POST("/password-reset/confirm", auth.ConfirmPasswordReset)

	private := api.Group("")
	private.Use(middleware.AuthMiddleware(cfg))
	private.POST("/change-password", auth.ChangePassword)
	private.POST("/teacher/help-bot", middleware.RoleMiddleware(model.Teacher), bot.Ask)

	return &authServer{router: r, cfg: cfg, outbox: mailer.Console()}
}

func (s *authServer) postJSON(t *testing.T, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func signupBody(universityID, email string) map[string]string {
	return map[string]string{
		"firstName":    "Noor",
		"secondName":   "Saad",
		"thirdName":    "Fahad",
		"universityId": universityID,
		"city":         "Jeddah",
		"major":        "IT",
		"email":        email,
		"password1":    "long-enough-1",
		"password2":    "long-enough-1",
	}
}

func tokenOf(t *testing.T, env envelope) string {
	t.Helper()
	var res struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestStudentSignupAndLogin(t *testing.T) {
	s := newAuthServer(t)

	w, env := s.postJSON(t, "/api/student/signup", "", signupBody("441100777", "noor@school.test"))
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	assert.Contains(t, string(env.Data), `"username":"noorsaadfahad777"`)

	bad := signupBody("44A", "noor2@school.test")
	bad["city"] = "Cairo"
	w, env = s.postJSON(t, "/api/student/signup", "", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, env.Message)

	w, env = s.postJSON(t, "/api/student/signup", "", signupBody("441100777", "other@school.test"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, util.ErrUniversityIDTaken.Error(), env.Message)

	w, env = s.postJSON(t, "/api/student/login", "", map[string]string{"username": "NOOR@school.test", "password": "long-enough-1"})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	tokenOf(t, env)

	w, env = s.postJSON(t, "/api/student/login", "", map[string]string{"username": "noorsaadfahad777", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, util.ErrInvalidCredentials.Error(), env.Message)
}

func TestTeacherCannotUseStudentLogin(t *testing.T) {
	s := newAuthServer(t)

	w, _ := s.postJSON(t, "/api/teacher/signup", "", map[string]string{"username": "ms_huda", "password1": "pw-12345678", "password2": "pw-12345678"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := s.postJSON(t, "/api/student/login", "", map[string]string{"username": "ms_huda", "password": "pw-12345678"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, util.ErrStudentsOnly.Error(), env.Message)
}

var linkPattern = regexp.MustCompile(`/reset/([^/]+)/([^/]+)/`)

func TestPasswordResetOverHTTP(t *testing.T) {
	s := newAuthServer(t)
	_, env := s.postJSON(t, "/api/student/signup", "", signupBody("441100777", "noor@school.test"))
	token := tokenOf(t, env)

	w, env := s.postJSON(t, "/api/password-reset", "", map[string]string{"email": "ghost@school.test"})
	assert.Equal(t, http.StatusOK, w.Code)
	w, env2 := s.postJSON(t, "/api/password-reset", "", map[string]string{"email": "noor@school.test"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, env.Message, env2.Message)

	msgs := s.outbox.Messages()
	require.Len(t, msgs, 1)
	m := linkPattern.FindStringSubmatch(msgs[0].TextBody)
	require.Len(t, m, 3)

	confirm := map[string]string{"uid": m[1], "token": m[2], "newPassword1": "fresh-password", "newPassword2": "fresh-password"}
	w, env = s.postJSON(t, "/api/password-reset/confirm", "", confirm)
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	w, env = s.postJSON(t, "/api/password-reset/confirm", "", confirm)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, util.ErrInvalidResetLink.Error(), env.Message)

	w, env = s.postJSON(t, "/api/change-password", token, map[string]string{"oldPassword": "fresh-password", "newPassword1": "newer-password", "newPassword2": "newer-password"})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	assert.Len(t, s.outbox.Messages(), 2)
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	s := newAuthServer(t)
	_, env := s.postJSON(t, "/api/student/signup", "", signupBody("441100777", "noor@school.test"))
	studentToken := tokenOf(t, env)
	_, env = s.postJSON(t, "/api/teacher/signup", "", map[string]string{"username": "ms_huda", "password1": "pw-12345678", "password2": "pw-12345678"})
	teacherToken := tokenOf(t, env)

	w, _ := s.postJSON(t, "/api/teacher/help-bot", "", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = s.postJSON(t, "/api/teacher/help-bot", "not-a-jwt", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = s.postJSON(t, "/api/teacher/help-bot", studentToken, map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.postJSON(t, "/api/teacher/help-bot", teacherToken, map[string]string{"message": "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	var reply HelpBotReply
	require.NoError(t, json.Unmarshal(env.Data, &reply))
	assert.NotEmpty(t, reply.Reply)

	w, env = s.postJSON(t, "/api/teacher/help-bot", teacherToken, "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid JSON body.", env.Message)
}

func formContext(req *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseAttemptFormURLEncoded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	form := url.Values{}
	form.Set("question_3", "2")
	form.Set("question_7", "4")
	form.Set("question_x", "1")
	form.Set("csrf", "ignored")
	req := httptest.NewRequest(http.MethodPost, "/api/quiz/ABC123/take", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	answers, err := parseAttemptForm(formContext(req))
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{3: "2", 7: "4"}, answers.Selected)
	assert.Nil(t, answers.File)
	assert.Empty(t, answers.QuestionFiles)
}

func TestParseAttemptFormMultipart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("question_5", "1"))
	part, err := mw.CreateFormFile("file", "answer.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4 main"))
	part, err = mw.CreateFormFile("file_9", "work.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/quiz/ABC123/take", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	answers, err := parseAttemptForm(formContext(req))
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{5: "1"}, answers.Selected)
	require.NotNil(t, answers.File)
	assert.Equal(t, "answer.pdf", answers.File.Name)
	require.Contains(t, answers.QuestionFiles, uint(9))
	assert.Equal(t, "work.png", answers.QuestionFiles[9].Name)
	assert.EqualValues(t, len("png bytes"), answers.QuestionFiles[9].Size)
}
