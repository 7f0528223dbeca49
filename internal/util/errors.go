package util

import "errors"

// Messages are shown to end users as-is.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("Invalid University ID or password.")
	ErrInvalidTeacherLogin = errors.New("Invalid teacher credentials.")
	ErrUsernameTaken       = errors.New("A user with that username already exists.")
	ErrEmailRegistered     = errors.New("Email already registered.")
	ErrUniversityIDTaken   = errors.New("University ID already exists.")
	ErrPasswordMismatch    = errors.New("Passwords do not match")
	ErrPasswordFields      = errors.New("The two password fields didn't match.")
	ErrPasswordTooShort    = errors.New("This password is too short. It must contain at least 8 characters.")
	ErrWrongOldPassword    = errors.New("Your old password was entered incorrectly. Please try again.")
	ErrStudentsOnly        = errors.New("This login is for students only.")
	ErrInvalidResetLink    = errors.New("The password reset link was invalid, possibly because it has already been used.")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrQuizNotFound        = errors.New("Invalid quiz code.")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrFolderNotFound      = errors.New("folder not found")
	ErrFolderExists        = errors.New("A folder with this name already exists.")
	ErrInvalidFolderAction = errors.New("Invalid delete action.")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrQuizClosed          = errors.New("This quiz is closed.")
	ErrQuizClosedMidway    = errors.New("Quiz was closed by the teacher.")
	ErrAttemptsExhausted   = errors.New("You already submitted this quiz.")
	ErrStudentProfile      = errors.New("Only students can take quizzes.")
	ErrFileRequired        = errors.New("Please upload a file.")
	ErrFileTooLarge        = errors.New("File too large. Maximum size is 10MB.")
	ErrFileType            = errors.New("Invalid file type. Allowed: PDF, JPG, JPEG, PNG.")
	ErrImageType           = errors.New("Invalid image type. Allowed: PNG, JPG, JPEG, GIF.")
	ErrInvalidQuizType     = errors.New("invalid quiz type")
	ErrInvalidOption       = errors.New("correct option must be between 1 and 4")
	ErrInvalidDuration     = errors.New("duration must be at least 1 minute")
	ErrInvalidAttemptDelta = errors.New("Invalid attempt change.")
	ErrAIUnavailable       = errors.New("AI analysis unavailable")
)
