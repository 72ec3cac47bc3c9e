package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foldbox/internal/auth"
	apperrors "foldbox/internal/errors"
	"foldbox/internal/model"
	"foldbox/internal/repository"
)

// AuthService handles registration and both login paths.
type AuthService interface {
	Register(ctx context.Context, name, email, country, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, identity auth.Identity, err error)
	ExternalLogin(ctx context.Context, profile *auth.ProviderProfile) (token string, identity auth.Identity, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, name, email, country, password string) (*model.User, error) {
	if name == "" || email == "" || country == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Country:      country,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies local credentials and mints a session token. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (string, auth.Identity, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", auth.Identity{}, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", auth.Identity{}, apperrors.ErrInvalidCredentials
	}

	identity := auth.Identity{
		UserID:   user.ID.String(),
		Email:    user.Email,
		Name:     auth.ResolveName("", user.Name, user.Email),
		Country:  user.Country,
		ImageURL: user.ImageURL,
	}
	token, err := s.jwtService.Mint(identity)
	if err != nil {
		return "", auth.Identity{}, fmt.Errorf("mint session token: %w", err)
	}
	return token, identity, nil
}

// ExternalLogin normalizes a provider-asserted profile into a canonical
// identity, creating or reusing the local account by email. A pre-existing
// account keeps its id and stored image; the stored name wins over the email
// local-part but not over the provider-asserted name.
func (s *authService) ExternalLogin(ctx context.Context, profile *auth.ProviderProfile) (string, auth.Identity, error) {
	user, err := s.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", auth.Identity{}, fmt.Errorf("lookup user by email: %w", err)
		}
		user, err = s.createProviderUser(ctx, profile)
		if err != nil {
			return "", auth.Identity{}, err
		}
	}

	identity := auth.Identity{
		UserID:   user.ID.String(),
		Email:    user.Email,
		Name:     auth.ResolveName(profile.Name, user.Name, user.Email),
		Country:  user.Country,
		ImageURL: auth.ResolveImage(user.ImageURL, profile.AvatarURL),
	}
	token, err := s.jwtService.Mint(identity)
	if err != nil {
		return "", auth.Identity{}, fmt.Errorf("mint session token: %w", err)
	}
	return token, identity, nil
}

// createProviderUser backfills a local record for a first-time external
// identity. Provider accounts still carry a password hash; it is derived from
// a random value nobody knows, so the credential path stays closed.
func (s *authService) createProviderUser(ctx context.Context, profile *auth.ProviderProfile) (*model.User, error) {
	hash, err := auth.HashPassword(uuid.New().String())
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         auth.ResolveName(profile.Name, "", profile.Email),
		Email:        profile.Email,
		PasswordHash: hash,
		ImageURL:     profile.AvatarURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create provider user: %w", err)
	}
	return user, nil
}
