package usecases

import (
	"context"
	"errors"
	"net/http"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/domain/repositories"
	"autoserve.backend/pkg/crypto"
	"autoserve.backend/pkg/jwt"
	"autoserve.backend/pkg/logger"
	"autoserve.backend/pkg/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestMeta carries per-request client facts into auth decisions
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuthUsecase handles staff authentication. Failed logins accumulate in an
// append-only attempt log; the guard refuses throttled or locked accounts
// before credentials are even evaluated.
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	sessionRepo  repositories.SessionRepository
	tokenService *jwt.TokenService
	sessionStore *redis.SessionStore
	guard        *LoginGuard
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	tokenService *jwt.TokenService,
	sessionStore *redis.SessionStore,
	guard *LoginGuard,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		tokenService: tokenService,
		sessionStore: sessionStore,
		guard:        guard,
	}
}

// Register creates a new staff account with the default role
func (u *AuthUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	existing, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.Conflict("email already registered")
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalServerError("failed to hash password")
	}

	user := &entities.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         entities.UserRoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates credentials and issues a token pair. Order matters:
// the throttle check runs before credentials are evaluated, and the hard
// lock refuses even a correct password. Every evaluated attempt is recorded
// whether it succeeds or not.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput, meta RequestMeta) (*entities.AuthResponse, error) {
	allowed, err := u.guard.CheckAllowed(ctx, input.Email, meta.IPAddress)
	if err != nil {
		return nil, domainerrors.ServiceUnavailable("authentication store unavailable")
	}
	if !allowed {
		return nil, domainerrors.NewAppError(http.StatusTooManyRequests, domainerrors.CodeRateLimited,
			"too many failed login attempts, try again later", domainerrors.ErrRateLimited)
	}

	locked, err := u.guard.IsLocked(ctx, input.Email)
	if err != nil {
		return nil, domainerrors.ServiceUnavailable("authentication store unavailable")
	}
	if locked {
		u.guard.Record(ctx, input.Email, meta.IPAddress, meta.UserAgent, false)
		return nil, domainerrors.AccountLocked("account temporarily locked due to repeated failures")
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			u.guard.Record(ctx, input.Email, meta.IPAddress, meta.UserAgent, false)
			return nil, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials,
				"invalid email or password", domainerrors.ErrInvalidCredentials)
		}
		return nil, domainerrors.ServiceUnavailable("authentication store unavailable")
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		u.guard.Record(ctx, input.Email, meta.IPAddress, meta.UserAgent, false)
		return nil, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials,
			"invalid email or password", domainerrors.ErrInvalidCredentials)
	}

	u.guard.Record(ctx, input.Email, meta.IPAddress, meta.UserAgent, true)

	tokens, err := u.tokenService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalServerError("failed to generate tokens")
	}

	session := &entities.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		ExpiresAt: time.Now().Add(u.tokenService.RefreshExpiry()),
		CreatedAt: time.Now(),
	}
	if err := u.sessionRepo.Create(ctx, session); err != nil {
		return nil, domainerrors.InternalServerError("failed to create session")
	}

	// The redis cache is a convenience copy; a miss never invalidates the
	// session itself.
	if u.sessionStore != nil {
		err := u.sessionStore.CreateSession(ctx, session.ID.String(), &redis.SessionData{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		}, u.tokenService.RefreshExpiry())
		if err != nil {
			logger.Warn(ctx, "failed to cache session", zap.Error(err))
		}
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		SessionID:    session.ID.String(),
		User:         user,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh pair
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.tokenService.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized,
				"refresh token expired", domainerrors.ErrTokenExpired)
		}
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("user no longer exists")
		}
		return nil, err
	}

	tokens, err := u.tokenService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalServerError("failed to generate tokens")
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// Logout destroys one session
func (u *AuthUsecase) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := u.sessionRepo.Delete(ctx, sessionID); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	if u.sessionStore != nil {
		if err := u.sessionStore.DeleteSession(ctx, sessionID.String()); err != nil {
			logger.Warn(ctx, "failed to drop cached session", zap.Error(err))
		}
	}
	return nil
}

// LogoutAll destroys every session belonging to the user
func (u *AuthUsecase) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return u.sessionRepo.DeleteByUserID(ctx, userID)
}

// Me returns the authenticated user's profile
func (u *AuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// ChangePassword verifies the current password then replaces the hash and
// invalidates every outstanding session for the user.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials,
			"current password is incorrect", domainerrors.ErrInvalidCredentials)
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return domainerrors.InternalServerError("failed to hash password")
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return u.sessionRepo.DeleteByUserID(ctx, userID)
}
