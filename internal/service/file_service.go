package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "foldbox/internal/errors"
	"foldbox/internal/model"
	"foldbox/internal/repository"
	"foldbox/internal/storage"
)

// FileService handles uploads into folders. File ownership is transitive:
// every operation first resolves the folder under the caller's identity.
type FileService interface {
	UploadFile(ctx context.Context, ownerID, folderID uuid.UUID, name, contentType string, size int64, body io.Reader) (*model.File, error)
	ListFiles(ctx context.Context, ownerID, folderID uuid.UUID) ([]model.File, error)
	DownloadURL(ctx context.Context, ownerID, fileID uuid.UUID) (string, error)
	DeleteFile(ctx context.Context, ownerID, fileID uuid.UUID) error
}

type fileService struct {
	fileRepo   repository.FileRepository
	folderRepo repository.FolderRepository
	store      storage.ObjectStore
}

// NewFileService creates a new file service.
func NewFileService(fileRepo repository.FileRepository, folderRepo repository.FolderRepository, store storage.ObjectStore) FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		store:      store,
	}
}

func (s *fileService) ownedFolder(ctx context.Context, folderID, ownerID uuid.UUID) (*model.Folder, error) {
	folder, err := s.folderRepo.FindOwned(ctx, folderID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFolderNotFound
		}
		return nil, fmt.Errorf("find folder: %w", err)
	}
	return folder, nil
}

// UploadFile stores the object and records it under the folder.
func (s *fileService) UploadFile(ctx context.Context, ownerID, folderID uuid.UUID, name, contentType string, size int64, body io.Reader) (*model.File, error) {
	if name == "" {
		return nil, apperrors.ErrMissingFields
	}
	if _, err := s.ownedFolder(ctx, folderID, ownerID); err != nil {
		return nil, err
	}

	key := storage.NewStorageKey("files")
	if err := s.store.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	file := &model.File{
		Name:        name,
		StorageKey:  key,
		ContentType: contentType,
		Size:        size,
		FolderID:    folderID,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Roll back the orphaned object.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Printf("remove orphaned object %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("create file record: %w", err)
	}
	return file, nil
}

// ListFiles returns the folder's files, newest first.
func (s *fileService) ListFiles(ctx context.Context, ownerID, folderID uuid.UUID) ([]model.File, error) {
	if _, err := s.ownedFolder(ctx, folderID, ownerID); err != nil {
		return nil, err
	}
	files, err := s.fileRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// DownloadURL returns a time-limited URL for the file's object.
func (s *fileService) DownloadURL(ctx context.Context, ownerID, fileID uuid.UUID) (string, error) {
	file, err := s.ownedFile(ctx, ownerID, fileID)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, file.StorageKey)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return url, nil
}

// DeleteFile removes the record and its object.
func (s *fileService) DeleteFile(ctx context.Context, ownerID, fileID uuid.UUID) error {
	file, err := s.ownedFile(ctx, ownerID, fileID)
	if err != nil {
		return err
	}
	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		return fmt.Errorf("delete file record: %w", err)
	}
	if err := s.store.Delete(ctx, file.StorageKey); err != nil {
		log.Printf("delete object %s: %v", file.StorageKey, err)
	}
	return nil
}

func (s *fileService) ownedFile(ctx context.Context, ownerID, fileID uuid.UUID) (*model.File, error) {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	if _, err := s.folderRepo.FindOwned(ctx, file.FolderID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("find folder: %w", err)
	}
	return file, nil
}
