package repository

import (
	"quizfy_backend/internal/model"

	"gorm.io/gorm"
)

type FolderRepository struct {
	DB *gorm.DB
}

func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{DB: db}
}

func (r *FolderRepository) Create(folder *model.SubjectFolder) error {
	return r.DB.Create(folder).Error
}

func (r *FolderRepository) FindForTeacher(id, teacherID uint) (*model.SubjectFolder, error) {
	var folder model.SubjectFolder
	err := r.DB.Where("id = ? AND teacher_id = ?", id, teacherID).First(&folder).Error
	return &folder, err
}

func (r *FolderRepository) ListByTeacher(teacherID uint) ([]model.SubjectFolder, error) {
	var folders []model.SubjectFolder
	err := r.DB.Where("teacher_id = ?", teacherID).Order("name").Find(&folders).Error
	return folders, err
}

func (r *FolderRepository) NameExists(teacherID uint, name string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.SubjectFolder{}).
		Where("teacher_id = ? AND name = ?", teacherID, name).
		Count(&count).Error
	return count > 0, err
}

// DeleteDetaching moves the folder's quizzes to "ungrouped" before deleting it.
func (r *FolderRepository) DeleteDetaching(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Quiz{}).Where("folder_id = ?", id).Update("folder_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SubjectFolder{}, id).Error
	})
}

func (r *FolderRepository) Delete(id uint) error {
	return r.DB.Delete(&model.SubjectFolder{}, id).Error
}
