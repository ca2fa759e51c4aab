package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	jwtpkg "github.com/ykovtun/avtosos/internal/pkg/jwt"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/services/repair"
)

// AuthUC implements registration, login and profile lookup
type AuthUC struct {
	cfg      *models.Config
	userRepo repair.UserRepo
}

// NewAuthUC creates a new auth usecase
func NewAuthUC(cfg *models.Config, userRepo repair.UserRepo) *AuthUC {
	return &AuthUC{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// Register creates an account and issues a token for it
func (uc *AuthUC) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to hash password", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         req.Role,
		TelegramID:   req.TelegramID,
	}

	created, err := uc.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered",
		logger.String("user_id", created.ID.String()),
		logger.String("role", created.Role))

	return uc.issueToken(created)
}

// Login verifies credentials and issues a token
func (uc *AuthUC) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := uc.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		// do not reveal whether the username exists
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to verify password", err)
	}

	return uc.issueToken(user)
}

// Profile returns the public projection of the calling user
func (uc *AuthUC) Profile(ctx context.Context, userID uuid.UUID) (*models.UserView, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.ToUserView(user), nil
}

func (uc *AuthUC) issueToken(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := jwtpkg.GenerateToken(user.ID, user.Username, user.Role, uc.cfg.JWT)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to issue token", err)
	}
	return &models.AuthResponse{Token: token, ExpiresAt: expiresAt}, nil
}
