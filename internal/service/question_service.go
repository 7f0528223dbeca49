package service

import (
	"context"
	"errors"
	"fmt"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/repository"
	"quizfy_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type QuestionRequest struct {
	QuestionType  model.QuestionType `json:"questionType" form:"question_type" binding:"omitempty,questiontype"`
	Text          string             `json:"text" form:"text" binding:"required"`
	Option1       string             `json:"option1" form:"option1" binding:"max=60"`
	Option2       string             `json:"option2" form:"option2" binding:"max=60"`
	Option3       string             `json:"option3" form:"option3" binding:"max=60"`
	Option4       string             `json:"option4" form:"option4" binding:"max=60"`
	CorrectOption int                `json:"correctOption" form:"correct_option" binding:"omitempty,min=1,max=4"`
	RemoveImage   bool               `json:"removeImage" form:"remove_image"`
}

type QuestionService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	Storage      *StorageService
}

func NewQuestionService(quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository, storage *StorageService) *QuestionService {
	return &QuestionService{QuizRepo: quizRepo, QuestionRepo: questionRepo, Storage: storage}
}

func (s *QuestionService) teacherQuiz(quizID, teacherID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindForTeacher(quizID, teacherID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

func (s *QuestionService) teacherQuestion(quizID, questionID, teacherID uint) (*model.Question, error) {
	quiz, err := s.teacherQuiz(quizID, teacherID)
	if err != nil {
		return nil, err
	}
	q, err := s.QuestionRepo.FindInQuiz(questionID, quiz.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

func (s *QuestionService) storeImage(ctx context.Context, quizID uint, image *UploadedFile) (*StoredObject, error) {
	if image.Size > util.MaxImageSize {
		return nil, util.ErrFileTooLarge
	}
	if !util.HasExtension(image.Name, util.AllowedImageExtensions) {
		return nil, util.ErrImageType
	}
	rc, err := image.Open()
	if err != nil {
		return nil, err
	}
	mimeType, err := util.ValidateMimeType(rc, []string{util.MimeImage})
	rc.Close()
	if err != nil || !util.IsImage(mimeType) {
		return nil, util.ErrImageType
	}
	return s.Storage.Save(ctx, fmt.Sprintf("quiz_images/quiz_%d", quizID), image)
}

func applyQuestionRequest(q *model.Question, req *QuestionRequest) error {
	if req.QuestionType == "" {
		req.QuestionType = model.QuizTypeMultipleChoice
	}
	if !req.QuestionType.Valid() {
		return util.ErrInvalidQuizType
	}
	if req.CorrectOption == 0 {
		req.CorrectOption = 1
	}
	if req.CorrectOption < 1 || req.CorrectOption > 4 {
		return util.ErrInvalidOption
	}
	q.QuestionType = req.QuestionType
	q.Text = strings.TrimSpace(req.Text)
	q.Option1 = strings.TrimSpace(req.Option1)
	q.Option2 = strings.TrimSpace(req.Option2)
	q.Option3 = strings.TrimSpace(req.Option3)
	q.Option4 = strings.TrimSpace(req.Option4)
	q.CorrectOption = req.CorrectOption
	q.Normalize()
	return nil
}

func (s *QuestionService) Create(ctx context.Context, quizID, teacherID uint, req *QuestionRequest, image *UploadedFile) (*model.Question, error) {
	quiz, err := s.teacherQuiz(quizID, teacherID)
	if err != nil {
		return nil, err
	}
	q := &model.Question{QuizID: quiz.ID}
	if err := applyQuestionRequest(q, req); err != nil {
		return nil, err
	}
	if image != nil {
		obj, err := s.storeImage(ctx, quiz.ID, image)
		if err != nil {
			return nil, err
		}
		q.ImageURL, q.ImageKey = obj.URL, obj.Key
	}
	if err := s.QuestionRepo.Create(q); err != nil {
		s.Storage.Remove(ctx, q.ImageKey)
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Update(ctx context.Context, quizID, questionID, teacherID uint, req *QuestionRequest, image *UploadedFile) (*model.Question, error) {
	q, err := s.teacherQuestion(quizID, questionID, teacherID)
	if err != nil {
		return nil, err
	}
	if err := applyQuestionRequest(q, req); err != nil {
		return nil, err
	}

	oldKey := ""
	if image != nil {
		obj, err := s.storeImage(ctx, q.QuizID, image)
		if err != nil {
			return nil, err
		}
		oldKey = q.ImageKey
		q.ImageURL, q.ImageKey = obj.URL, obj.Key
	} else if req.RemoveImage {
		oldKey = q.ImageKey
		q.ImageURL, q.ImageKey = "", ""
	}

	if err := s.QuestionRepo.Update(q); err != nil {
		if image != nil {
			s.Storage.Remove(ctx, q.ImageKey)
		}
		return nil, err
	}
	s.Storage.Remove(ctx, oldKey)
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, quizID, questionID, teacherID uint) error {
	q, err := s.teacherQuestion(quizID, questionID, teacherID)
	if err != nil {
		return err
	}
	keys, err := s.QuestionRepo.Delete(q)
	if err != nil {
		return err
	}
	s.Storage.Remove(ctx, keys...)
	return nil
}
