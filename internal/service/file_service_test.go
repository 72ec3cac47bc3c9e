package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "foldbox/internal/errors"
	"foldbox/internal/model"
)

// MockFileRepository is a mock implementation of FileRepository.
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Create(ctx context.Context, file *model.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileRepository) ListByFolder(ctx context.Context, folderID uuid.UUID) ([]model.File, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObjectStore is a mock implementation of storage.ObjectStore.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func TestFileService_UploadFile(t *testing.T) {
	ownerID := uuid.New()
	folderID := uuid.New()
	folder := &model.Folder{ID: folderID, Name: "Receipts", UserID: ownerID}

	t.Run("successful upload", func(t *testing.T) {
		fileRepo := new(MockFileRepository)
		folderRepo := new(MockFolderRepository)
		store := new(MockObjectStore)

		folderRepo.On("FindOwned", mock.Anything, folderID, ownerID).Return(folder, nil)
		store.On("Upload", mock.Anything, mock.AnythingOfType("string"), "text/plain", mock.Anything).Return(nil)
		fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.File")).Return(nil)

		service := NewFileService(fileRepo, folderRepo, store)
		file, err := service.UploadFile(context.Background(), ownerID, folderID, "notes.txt", "text/plain", 5, strings.NewReader("hello"))

		assert.NoError(t, err)
		assert.NotNil(t, file)
		assert.Equal(t, "notes.txt", file.Name)
		assert.Equal(t, folderID, file.FolderID)
		assert.NotEmpty(t, file.StorageKey)

		fileRepo.AssertExpectations(t)
		folderRepo.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("folder not owned", func(t *testing.T) {
		fileRepo := new(MockFileRepository)
		folderRepo := new(MockFolderRepository)
		store := new(MockObjectStore)

		folderRepo.On("FindOwned", mock.Anything, folderID, ownerID).Return(nil, gorm.ErrRecordNotFound)

		service := NewFileService(fileRepo, folderRepo, store)
		file, err := service.UploadFile(context.Background(), ownerID, folderID, "notes.txt", "text/plain", 5, strings.NewReader("hello"))

		assert.ErrorIs(t, err, apperrors.ErrFolderNotFound)
		assert.Nil(t, file)
		folderRepo.AssertExpectations(t)
	})

	t.Run("record failure removes the object", func(t *testing.T) {
		fileRepo := new(MockFileRepository)
		folderRepo := new(MockFolderRepository)
		store := new(MockObjectStore)

		folderRepo.On("FindOwned", mock.Anything, folderID, ownerID).Return(folder, nil)
		store.On("Upload", mock.Anything, mock.AnythingOfType("string"), "text/plain", mock.Anything).Return(nil)
		fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.File")).Return(assert.AnError)
		store.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

		service := NewFileService(fileRepo, folderRepo, store)
		file, err := service.UploadFile(context.Background(), ownerID, folderID, "notes.txt", "text/plain", 5, strings.NewReader("hello"))

		assert.Error(t, err)
		assert.Nil(t, file)
		store.AssertExpectations(t)
	})
}

func TestFileService_DownloadURL(t *testing.T) {
	ownerID := uuid.New()
	folderID := uuid.New()
	fileID := uuid.New()
	folder := &model.Folder{ID: folderID, Name: "Receipts", UserID: ownerID}
	file := &model.File{ID: fileID, Name: "notes.txt", StorageKey: "files/2026/1/1/key", FolderID: folderID}

	t.Run("owned file presigns", func(t *testing.T) {
		fileRepo := new(MockFileRepository)
		folderRepo := new(MockFolderRepository)
		store := new(MockObjectStore)

		fileRepo.On("FindByID", mock.Anything, fileID).Return(file, nil)
		folderRepo.On("FindOwned", mock.Anything, folderID, ownerID).Return(folder, nil)
		store.On("PresignGet", mock.Anything, file.StorageKey).Return("https://bucket.example/signed", nil)

		service := NewFileService(fileRepo, folderRepo, store)
		url, err := service.DownloadURL(context.Background(), ownerID, fileID)

		assert.NoError(t, err)
		assert.Equal(t, "https://bucket.example/signed", url)
	})

	t.Run("file in another owner's folder is not found", func(t *testing.T) {
		otherOwner := uuid.New()
		fileRepo := new(MockFileRepository)
		folderRepo := new(MockFolderRepository)
		store := new(MockObjectStore)

		fileRepo.On("FindByID", mock.Anything, fileID).Return(file, nil)
		folderRepo.On("FindOwned", mock.Anything, folderID, otherOwner).Return(nil, gorm.ErrRecordNotFound)

		service := NewFileService(fileRepo, folderRepo, store)
		url, err := service.DownloadURL(context.Background(), otherOwner, fileID)

		assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
		assert.Empty(t, url)
	})
}

func TestFileService_DeleteFile(t *testing.T) {
	ownerID := uuid.New()
	folderID := uuid.New()
	fileID := uuid.New()
	folder := &model.Folder{ID: folderID, Name: "Receipts", UserID: ownerID}
	file := &model.File{ID: fileID, Name: "notes.txt", StorageKey: "files/2026/1/1/key", FolderID: folderID}

	fileRepo := new(MockFileRepository)
	folderRepo := new(MockFolderRepository)
	store := new(MockObjectStore)

	fileRepo.On("FindByID", mock.Anything, fileID).Return(file, nil)
	folderRepo.On("FindOwned", mock.Anything, folderID, ownerID).Return(folder, nil)
	fileRepo.On("Delete", mock.Anything, fileID).Return(nil)
	store.On("Delete", mock.Anything, file.StorageKey).Return(nil)

	service := NewFileService(fileRepo, folderRepo, store)
	assert.NoError(t, service.DeleteFile(context.Background(), ownerID, fileID))

	fileRepo.AssertExpectations(t)
	folderRepo.AssertExpectations(t)
	store.AssertExpectations(t)
}
