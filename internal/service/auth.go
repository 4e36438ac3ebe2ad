package service

import (
	"context"
	"errors"
	"strings"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"
	"genset-rental-backend/internal/security"
	"genset-rental-backend/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = domain.NewUnauthorizedError("Invalid credentials")

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login accepts either the username or the email address as login.
func (s *authService) Login(ctx context.Context, input domain.LoginInput) (*domain.LoginResult, error) {
	logger.EnterMethod(ctx, "authService.Login", "login", input.Username)

	if err := validation.Struct(input); err != nil {
		logger.ExitMethodWithError(ctx, "authService.Login", err, true)
		return nil, err
	}

	user, err := s.userRepo.GetByLogin(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = ErrInvalidCredentials
		}
		logger.ExitMethodWithError(ctx, "authService.Login", err, isClientError(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		logger.ExitMethodWithError(ctx, "authService.Login", ErrInvalidCredentials, true, "userID", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		logger.ExitMethodWithError(ctx, "authService.Login", err, false)
		return nil, err
	}

	logger.ExitMethod(ctx, "authService.Login", "userID", user.ID)
	return &domain.LoginResult{Token: token, User: *user}, nil
}

func (s *authService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	_, err := s.userRepo.GetByLogin(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.UserRoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	logger.Info("Bootstrap admin created", "username", username, "userID", user.ID)
	return nil
}
