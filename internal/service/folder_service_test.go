package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "foldbox/internal/errors"
	"foldbox/internal/model"
)

// MockFolderRepository is a mock implementation of FolderRepository.
type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) Create(ctx context.Context, folder *model.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockFolderRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Folder, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Folder, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockFolderRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

func TestFolderService_CreateFolder(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name          string
		folderName    string
		setupMock     func(*MockFolderRepository)
		expectedError error
	}{
		{
			name:       "successful creation",
			folderName: "Receipts",
			setupMock: func(m *MockFolderRepository) {
				m.On("ExistsByName", mock.Anything, ownerID, "Receipts").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Folder")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "empty name",
			folderName:    "",
			setupMock:     func(m *MockFolderRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:       "duplicate name for owner",
			folderName: "Receipts",
			setupMock: func(m *MockFolderRepository) {
				m.On("ExistsByName", mock.Anything, ownerID, "Receipts").Return(true, nil)
			},
			expectedError: apperrors.ErrFolderNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFolderRepository)
			tt.setupMock(mockRepo)

			service := NewFolderService(mockRepo)
			folder, err := service.CreateFolder(context.Background(), ownerID, tt.folderName)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, folder)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, folder)
				assert.Equal(t, tt.folderName, folder.Name)
				assert.Equal(t, ownerID, folder.UserID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFolderService_ListFolders(t *testing.T) {
	ownerID := uuid.New()
	now := time.Now()
	expected := []model.Folder{
		{ID: uuid.New(), Name: "Photos", UserID: ownerID, CreatedAt: now},
		{ID: uuid.New(), Name: "Receipts", UserID: ownerID, CreatedAt: now.Add(-time.Hour)},
	}

	mockRepo := new(MockFolderRepository)
	mockRepo.On("ListByOwner", mock.Anything, ownerID).Return(expected, nil)

	service := NewFolderService(mockRepo)
	folders, err := service.ListFolders(context.Background(), ownerID)

	assert.NoError(t, err)
	assert.Equal(t, expected, folders)
	mockRepo.AssertExpectations(t)
}

func TestFolderService_ListFolders_EmptyIsNotNil(t *testing.T) {
	ownerID := uuid.New()

	// A nil result from the store must still serialize as [] for the client.
	mockRepo := new(MockFolderRepository)
	mockRepo.On("ListByOwner", mock.Anything, ownerID).Return(nil, nil)

	service := NewFolderService(mockRepo)
	folders, err := service.ListFolders(context.Background(), ownerID)

	assert.NoError(t, err)
	assert.NotNil(t, folders)
	assert.Empty(t, folders)
	mockRepo.AssertExpectations(t)
}

func TestFolderService_DeleteFolder(t *testing.T) {
	ownerID := uuid.New()
	folderID := uuid.New()

	// Successful delete of an owned folder.
	mockRepo := new(MockFolderRepository)
	mockRepo.On("DeleteOwned", mock.Anything, folderID, ownerID).Return(true, nil)

	service := NewFolderService(mockRepo)
	assert.NoError(t, service.DeleteFolder(context.Background(), folderID, ownerID))
	mockRepo.AssertExpectations(t)

	// A folder that exists but belongs to another owner deletes nothing and
	// is reported as not found.
	otherOwner := uuid.New()
	mockRepo = new(MockFolderRepository)
	mockRepo.On("DeleteOwned", mock.Anything, folderID, otherOwner).Return(false, nil)

	service = NewFolderService(mockRepo)
	err := service.DeleteFolder(context.Background(), folderID, otherOwner)
	assert.ErrorIs(t, err, apperrors.ErrFolderNotFound)
	mockRepo.AssertExpectations(t)
}
