package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "foldbox/internal/errors"
	"foldbox/internal/model"
	"foldbox/internal/repository"
)

// FolderService handles ownership-scoped folder operations. Callers pass the
// authenticated identity's id; the service never trusts a folder id alone.
type FolderService interface {
	CreateFolder(ctx context.Context, ownerID uuid.UUID, name string) (*model.Folder, error)
	ListFolders(ctx context.Context, ownerID uuid.UUID) ([]model.Folder, error)
	DeleteFolder(ctx context.Context, id, ownerID uuid.UUID) error
}

type folderService struct {
	folderRepo repository.FolderRepository
}

// NewFolderService creates a new folder service.
func NewFolderService(folderRepo repository.FolderRepository) FolderService {
	return &folderService{folderRepo: folderRepo}
}

// CreateFolder creates a folder owned by ownerID. Name uniqueness is scoped
// to the owner; the pre-check gives a friendly error and the unique index
// catches the concurrent-create race.
func (s *folderService) CreateFolder(ctx context.Context, ownerID uuid.UUID, name string) (*model.Folder, error) {
	if name == "" {
		return nil, apperrors.ErrMissingFields
	}

	exists, err := s.folderRepo.ExistsByName(ctx, ownerID, name)
	if err != nil {
		return nil, fmt.Errorf("check folder name: %w", err)
	}
	if exists {
		return nil, apperrors.ErrFolderNameTaken
	}

	folder := &model.Folder{
		Name:   name,
		UserID: ownerID,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrFolderNameTaken
		}
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return folder, nil
}

// ListFolders returns the owner's folders, newest-created first.
func (s *folderService) ListFolders(ctx context.Context, ownerID uuid.UUID) ([]model.Folder, error) {
	folders, err := s.folderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	if folders == nil {
		folders = []model.Folder{}
	}
	return folders, nil
}

// DeleteFolder deletes the folder only when id and owner both match. A folder
// that exists but belongs to someone else is reported as not found, never as
// forbidden, so ids cannot be probed.
func (s *folderService) DeleteFolder(ctx context.Context, id, ownerID uuid.UUID) error {
	deleted, err := s.folderRepo.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if !deleted {
		return apperrors.ErrFolderNotFound
	}
	return nil
}
