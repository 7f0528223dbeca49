package service

import (
	"context"
	"errors"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/repository"
	"quizfy_backend/internal/util"
	"quizfy_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	FolderDeleteAll     = "delete_all"
	FolderMoveUngrouped = "move_ungrouped"
)

type CreateFolderRequest struct {
	Name string `json:"name" form:"name" binding:"required,notblank,max=80"`
}

type FolderDetail struct {
	Folder  *model.SubjectFolder `json:"folder"`
	Quizzes []QuizSummary        `json:"quizzes"`
}

type FolderService struct {
	FolderRepo *repository.FolderRepository
	QuizRepo   *repository.QuizRepository
	Quizzes    *QuizService
	Storage    *StorageService
}

func NewFolderService(folderRepo *repository.FolderRepository, quizRepo *repository.QuizRepository, quizzes *QuizService, storage *StorageService) *FolderService {
	return &FolderService{FolderRepo: folderRepo, QuizRepo: quizRepo, Quizzes: quizzes, Storage: storage}
}

func (s *FolderService) Create(teacherID uint, req *CreateFolderRequest) (*model.SubjectFolder, error) {
	name := strings.TrimSpace(req.Name)
	exists, err := s.FolderRepo.NameExists(teacherID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrFolderExists
	}
	folder := &model.SubjectFolder{TeacherID: teacherID, Name: name}
	if err := s.FolderRepo.Create(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *FolderService) Get(folderID, teacherID uint) (*model.SubjectFolder, error) {
	folder, err := s.FolderRepo.FindForTeacher(folderID, teacherID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrFolderNotFound
	}
	return folder, err
}

func (s *FolderService) Detail(folderID, teacherID uint) (*FolderDetail, error) {
	folder, err := s.Get(folderID, teacherID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.ListByFolder(folder.ID, false)
	if err != nil {
		return nil, err
	}
	summaries, err := s.Quizzes.Summaries(quizzes)
	if err != nil {
		return nil, err
	}
	return &FolderDetail{Folder: folder, Quizzes: summaries}, nil
}

// Delete removes the folder. delete_all also deletes its quizzes,
// move_ungrouped detaches them.
func (s *FolderService) Delete(ctx context.Context, folderID, teacherID uint, action string) error {
	folder, err := s.Get(folderID, teacherID)
	if err != nil {
		return err
	}

	switch action {
	case FolderDeleteAll:
		quizzes, err := s.QuizRepo.ListByFolder(folder.ID, true)
		if err != nil {
			return err
		}
		for _, q := range quizzes {
			keys, err := s.QuizRepo.Delete(q.ID)
			if err != nil {
				return err
			}
			s.Storage.Remove(ctx, keys...)
		}
		if err := s.FolderRepo.Delete(folder.ID); err != nil {
			return err
		}
		logger.Log.Info("Folder deleted with its quizzes", zap.Uint("folderID", folder.ID), zap.Int("quizzes", len(quizzes)))
	case FolderMoveUngrouped:
		if err := s.FolderRepo.DeleteDetaching(folder.ID); err != nil {
			return err
		}
		logger.Log.Info("Folder deleted, quizzes ungrouped", zap.Uint("folderID", folder.ID))
	default:
		return util.ErrInvalidFolderAction
	}
	return nil
}
