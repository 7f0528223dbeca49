package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"quizfy_backend/internal/config"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/repository"
	"quizfy_backend/internal/util"
	"quizfy_backend/pkg/logger"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type TeacherSignupRequest struct {
	Username  string `json:"username" form:"username" binding:"required,max=150"`
	Email     string `json:"email" form:"email" binding:"omitempty,email,max=254"`
	Password1 string `json:"password1" form:"password1" binding:"required"`
	Password2 string `json:"password2" form:"password2" binding:"required"`
}

type StudentSignupRequest struct {
	FirstName    string `json:"firstName" form:"first_name" binding:"required,max=60"`
	SecondName   string `json:"secondName" form:"second_name" binding:"required,max=60"`
	ThirdName    string `json:"thirdName" form:"third_name" binding:"required,max=60"`
	UniversityID string `json:"universityId" form:"university_id" binding:"required,max=30,numeric"`
	City         string `json:"city" form:"city" binding:"required,oneof=Riyadh Jeddah Dammam Al-Ahsa Hail Madinah"`
	Major        string `json:"major" form:"major" binding:"required,oneof=CS IT BUS LS"`
	Email        string `json:"email" form:"email" binding:"required,email,max=254"`
	Password1    string `json:"password1" form:"password1" binding:"required"`
	Password2    string `json:"password2" form:"password2" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword  string `json:"oldPassword" form:"old_password" binding:"required"`
	NewPassword1 string `json:"newPassword1" form:"new_password1" binding:"required"`
	NewPassword2 string `json:"newPassword2" form:"new_password2" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

type PasswordResetConfirmRequest struct {
	UID          string `json:"uid" form:"uid" binding:"required"`
	Token        string `json:"token" form:"token" binding:"required"`
	NewPassword1 string `json:"newPassword1" form:"new_password1" binding:"required"`
	NewPassword2 string `json:"newPassword2" form:"new_password2" binding:"required"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Tokens   *PasswordTokenGenerator
	Mail     *MailService
	Cfg      *config.Config
	Now      func() time.Time
}

func NewAuthService(userRepo *repository.UserRepository, mailer *MailService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Tokens:   NewPasswordTokenGenerator(cfg.JWT.Secret, cfg.Quiz.PasswordResetTimeoutDays),
		Mail:     mailer,
		Cfg:      cfg,
		Now:      time.Now,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkNewPassword(p1, p2 string) error {
	if p1 != p2 {
		return util.ErrPasswordFields
	}
	if len(p1) < minPasswordLength {
		return util.ErrPasswordTooShort
	}
	return nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	now := s.Now()
	if err := s.UserRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now
	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) RegisterTeacher(req *TeacherSignupRequest) (*AuthResult, error) {
	if req.Password1 != req.Password2 {
		return nil, util.ErrPasswordMismatch
	}
	username := strings.TrimSpace(req.Username)
	exists, err := s.UserRepo.UsernameExists(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrUsernameTaken
	}

	hashed, err := hashPassword(req.Password1)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: username,
		Email:    strings.TrimSpace(req.Email),
		Password: hashed,
		Role:     model.Teacher,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	logger.Log.Info("Teacher registered", zap.Uint("userID", user.ID), zap.String("username", user.Username))
	return s.issue(user)
}

func (s *AuthService) LoginTeacher(req *LoginRequest) (*AuthResult, error) {
	user, err := s.UserRepo.FindByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidTeacherLogin
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil || !user.IsTeacher() {
		return nil, util.ErrInvalidTeacherLogin
	}
	return s.issue(user)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]`)

func slugifySimple(value string) string {
	return slugStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), "")
}

// StudentUsername derives "firstsecondthird123" from the name parts and the
// last three digits of the university ID.
func StudentUsername(first, second, third, universityID string) string {
	tail := universityID
	if len(tail) > 3 {
		tail = tail[len(tail)-3:]
	}
	base := slugifySimple(first + second + third + tail)
	if base == "" {
		base = "student"
	}
	return base
}

func (s *AuthService) uniqueUsername(base string) (string, error) {
	username := base
	for counter := 2; ; counter++ {
		exists, err := s.UserRepo.UsernameExists(username)
		if err != nil {
			return "", err
		}
		if !exists {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, counter)
	}
}

func (s *AuthService) RegisterStudent(req *StudentSignupRequest) (*AuthResult, error) {
	if err := checkNewPassword(req.Password1, req.Password2); err != nil {
		return nil, err
	}

	universityID := strings.TrimSpace(req.UniversityID)
	taken, err := s.UserRepo.UniversityIDExists(universityID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrUniversityIDTaken
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err = s.UserRepo.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrEmailRegistered
	}

	username, err := s.uniqueUsername(StudentUsername(req.FirstName, req.SecondName, req.ThirdName, universityID))
	if err != nil {
		return nil, err
	}
	hashed, err := hashPassword(req.Password1)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  username,
		Email:     email,
		Password:  hashed,
		Role:      model.Student,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.SecondName + " " + req.ThirdName),
	}
	profile := &model.StudentProfile{
		FirstName:    strings.TrimSpace(req.FirstName),
		SecondName:   strings.TrimSpace(req.SecondName),
		ThirdName:    strings.TrimSpace(req.ThirdName),
		UniversityID: universityID,
		City:         req.City,
		Major:        req.Major,
	}
	if err := s.UserRepo.CreateStudent(user, profile); err != nil {
		return nil, err
	}
	user.Profile = profile
	logger.Log.Info("Student registered", zap.Uint("userID", user.ID), zap.String("username", user.Username))
	return s.issue(user)
}

// LoginStudent accepts either the generated username or the email address.
func (s *AuthService) LoginStudent(req *LoginRequest) (*AuthResult, error) {
	identifier := strings.TrimSpace(req.Username)

	var (
		user *model.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.UserRepo.FindByEmail(identifier)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user, err = s.UserRepo.FindByUsername(identifier)
		}
	} else {
		user, err = s.UserRepo.FindByUsername(identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, util.ErrInvalidCredentials
	}
	if user.IsTeacher() {
		return nil, util.ErrStudentsOnly
	}
	return s.issue(user)
}

func (s *AuthService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req *ChangePasswordRequest) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return util.ErrWrongOldPassword
	}
	if err := checkNewPassword(req.NewPassword1, req.NewPassword2); err != nil {
		return err
	}
	hashed, err := hashPassword(req.NewPassword1)
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdatePassword(user.ID, hashed); err != nil {
		return err
	}

	if user.Email != "" {
		body, err := renderTemplate(passwordChangedTmpl, map[string]string{
			"Username": user.Username,
			"When":     s.Now().Format(util.ShortTimeStamp),
			"ResetURL": s.Cfg.Server.SiteURL + "/password-reset/",
		})
		if err != nil {
			logger.Log.Error("Failed to render password change email", zap.Error(err))
			return nil
		}
		s.Mail.Send(ctx, &MailMessage{
			To:       []mail.Address{{Name: user.Username, Address: user.Email}},
			Subject:  "Your password was changed",
			TextBody: body,
		})
	}
	return nil
}

// RequestPasswordReset mails a reset link to every account using the
// address. Unknown addresses are not reported to the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	users, err := s.UserRepo.FindAllByEmail(email)
	if err != nil {
		return err
	}
	for i := range users {
		user := &users[i]
		link := fmt.Sprintf("%s/reset/%s/%s/", s.Cfg.Server.SiteURL, EncodeUID(user.ID), s.Tokens.Make(user))
		body, err := renderTemplate(passwordResetTmpl, map[string]string{
			"Username": user.Username,
			"Link":     link,
		})
		if err != nil {
			return err
		}
		s.Mail.Send(ctx, &MailMessage{
			To:       []mail.Address{{Name: user.Username, Address: user.Email}},
			Subject:  "Password reset on Quizfy",
			TextBody: body,
		})
		logger.Log.Info("Password reset link sent", zap.Uint("userID", user.ID))
	}
	return nil
}

func (s *AuthService) ConfirmPasswordReset(req *PasswordResetConfirmRequest) error {
	id, err := DecodeUID(req.UID)
	if err != nil {
		return err
	}
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrInvalidResetLink
		}
		return err
	}
	if err := s.Tokens.Verify(user, req.Token); err != nil {
		return err
	}
	if err := checkNewPassword(req.NewPassword1, req.NewPassword2); err != nil {
		return err
	}
	hashed, err := hashPassword(req.NewPassword1)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(user.ID, hashed)
}
