package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foldbox/internal/cache"
	apperrors "foldbox/internal/errors"
	"foldbox/internal/model"
	"foldbox/internal/repository"
	"foldbox/internal/storage"
)

const profileCacheTTL = 5 * time.Minute

// ImageUpload carries an optional new profile image.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ProfileService handles user profile reads and updates.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, email, country string, image *ImageUpload) (*model.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
	store    storage.ObjectStore
	cache    *cache.Client
}

// NewProfileService builds a ProfileService with repository, object store and cache.
func NewProfileService(userRepo repository.UserRepository, store storage.ObjectStore, cache *cache.Client) ProfileService {
	return &profileService{userRepo: userRepo, store: store, cache: cache}
}

func (s *profileService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// GetProfile returns the user, served from cache when possible.
func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, profileCacheTTL)
	}
	return user, nil
}

// UpdateProfile updates name, email and country, and replaces the profile
// image when a new one is supplied. The password is never touched here, so it
// is never re-hashed.
func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email, country string, image *ImageUpload) (*model.User, error) {
	if name == "" || email == "" || country == "" {
		return nil, apperrors.ErrMissingFields
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user.Name = name
	user.Email = email
	user.Country = country

	if image != nil {
		if user.ImageStorageKey != "" {
			// Best effort: a dangling old object is preferable to failing
			// the whole update.
			if err := s.store.Delete(ctx, user.ImageStorageKey); err != nil {
				log.Printf("delete previous profile image %s: %v", user.ImageStorageKey, err)
			}
		}

		key := storage.NewStorageKey("user_profiles")
		if err := s.store.Upload(ctx, key, image.ContentType, image.Body); err != nil {
			return nil, fmt.Errorf("upload profile image: %w", err)
		}
		user.ImageStorageKey = key
		user.ImageURL = s.store.PublicURL(key)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return user, nil
}
