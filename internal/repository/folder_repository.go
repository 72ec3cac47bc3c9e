package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foldbox/internal/model"
)

// FolderRepository defines folder persistence operations. Read and delete are
// always scoped by owner: an id match alone is never enough.
type FolderRepository interface {
	Create(ctx context.Context, folder *model.Folder) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Folder, error)
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Folder, error)
	ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
}

type folderRepository struct {
	db *gorm.DB
}

// NewFolderRepository builds a GORM-backed repository.
func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(ctx context.Context, folder *model.Folder) error {
	return r.db.WithContext(ctx).Create(folder).Error
}

// ListByOwner returns the owner's folders, newest-created first. The result
// is never nil so an empty list serializes as a JSON array.
func (r *folderRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Folder, error) {
	folders := []model.Folder{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *folderRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Folder, error) {
	var folder model.Folder
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&folder).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *folderRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Folder{}).
		Where("user_id = ? AND name = ?", ownerID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteOwned deletes the folder only when both id and owner match. Returns
// false when no such owned folder exists.
func (r *folderRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Folder{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
