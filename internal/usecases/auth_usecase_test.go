package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"autoserve.backend/internal/config"
	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/usecases"
	"autoserve.backend/pkg/crypto"
	"autoserve.backend/pkg/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	uc          *usecases.AuthUsecase
	userRepo    *MockUserRepository
	sessionRepo *MockSessionRepository
	attemptRepo *MockLoginAttemptRepository
	tokens      *jwt.TokenService
}

func newAuthFixture() *authFixture {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	attemptRepo := new(MockLoginAttemptRepository)
	tokens := jwt.NewTokenService("test-secret", "autoserve", "autoserve-api", 15*time.Minute, 7*24*time.Hour)
	guard := usecases.NewLoginGuard(attemptRepo, config.LockoutConfig{
		ThrottleWindow:    15 * time.Minute,
		ThrottleThreshold: 5,
		LockWindow:        time.Hour,
		LockThreshold:     10,
	})

	return &authFixture{
		uc:          usecases.NewAuthUsecase(userRepo, sessionRepo, tokens, nil, guard),
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		attemptRepo: attemptRepo,
		tokens:      tokens,
	}
}

func testUser(t *testing.T, password string) *entities.User {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	return &entities.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Name:         "Alice Carter",
		PasswordHash: hash,
		Role:         entities.UserRoleUser,
	}
}

var testMeta = usecases.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test-agent"}

func TestAuthUsecase_Login_Success(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := testUser(t, "correct-password")

	f.attemptRepo.On("CountRecentFailures", ctx, user.Email, "10.0.0.1", mock.Anything).Return(int64(0), nil)
	f.attemptRepo.On("CountFailuresByEmail", ctx, user.Email, mock.Anything).Return(int64(0), nil)
	f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)
	f.sessionRepo.On("Create", ctx, mock.AnythingOfType("*entities.Session")).Return(nil)

	var recorded *entities.LoginAttempt
	f.attemptRepo.On("Create", ctx, mock.AnythingOfType("*entities.LoginAttempt")).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*entities.LoginAttempt)
	}).Return(nil)

	resp, err := f.uc.Login(ctx, &entities.LoginInput{Email: user.Email, Password: "correct-password"}, testMeta)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := f.tokens.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	require.NotNil(t, recorded)
	assert.True(t, recorded.Success)
}

func TestAuthUsecase_Login_WrongPasswordRecordsFailure(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := testUser(t, "correct-password")

	f.attemptRepo.On("CountRecentFailures", ctx, user.Email, "10.0.0.1", mock.Anything).Return(int64(0), nil)
	f.attemptRepo.On("CountFailuresByEmail", ctx, user.Email, mock.Anything).Return(int64(0), nil)
	f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

	var recorded *entities.LoginAttempt
	f.attemptRepo.On("Create", ctx, mock.AnythingOfType("*entities.LoginAttempt")).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*entities.LoginAttempt)
	}).Return(nil)

	_, err := f.uc.Login(ctx, &entities.LoginInput{Email: user.Email, Password: "wrong"}, testMeta)

	assert.Equal(t, 401, appStatus(t, err))
	require.NotNil(t, recorded)
	assert.False(t, recorded.Success)
}

func TestAuthUsecase_Login_UnknownEmailSameError(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.attemptRepo.On("CountRecentFailures", ctx, mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
	f.attemptRepo.On("CountFailuresByEmail", ctx, mock.Anything, mock.Anything).Return(int64(0), nil)
	f.userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domainerrors.ErrNotFound)
	f.attemptRepo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := f.uc.Login(ctx, &entities.LoginInput{Email: "ghost@example.com", Password: "whatever"}, testMeta)

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.Equal(t, 401, appStatus(t, err))
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid email or password", appErr.Message)
}

func TestAuthUsecase_Login_ThrottledNotRecorded(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.attemptRepo.On("CountRecentFailures", ctx, mock.Anything, mock.Anything, mock.Anything).Return(int64(5), nil)

	_, err := f.uc.Login(ctx, &entities.LoginInput{Email: "alice@example.com", Password: "whatever"}, testMeta)

	assert.Equal(t, 429, appStatus(t, err))
	// A throttled refusal never evaluated credentials, so it must not
	// append an attempt that would extend the window indefinitely.
	f.attemptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login_LockedRefusesCorrectPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.attemptRepo.On("CountRecentFailures", ctx, mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
	f.attemptRepo.On("CountFailuresByEmail", ctx, mock.Anything, mock.Anything).Return(int64(10), nil)

	var recorded *entities.LoginAttempt
	f.attemptRepo.On("Create", ctx, mock.AnythingOfType("*entities.LoginAttempt")).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*entities.LoginAttempt)
	}).Return(nil)

	_, err := f.uc.Login(ctx, &entities.LoginInput{Email: "alice@example.com", Password: "correct-password"}, testMeta)

	assert.Equal(t, 423, appStatus(t, err))
	// Credentials are never consulted on a locked account.
	f.userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	require.NotNil(t, recorded)
	assert.False(t, recorded.Success)
}

func TestAuthUsecase_Login_GuardOutageFailsClosed(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.attemptRepo.On("CountRecentFailures", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("connection refused"))

	_, err := f.uc.Login(ctx, &entities.LoginInput{Email: "alice@example.com", Password: "whatever"}, testMeta)

	assert.Equal(t, 503, appStatus(t, err))
	f.userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.userRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, domainerrors.ErrNotFound)
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(nil)

	user, err := f.uc.Register(ctx, &entities.CreateUserInput{
		Email:    "new@example.com",
		Name:     "New Staffer",
		Password: "long-enough-password",
	})

	require.NoError(t, err)
	assert.Equal(t, entities.UserRoleUser, user.Role)
	assert.NotEqual(t, "long-enough-password", user.PasswordHash)
	assert.True(t, crypto.CheckPassword("long-enough-password", user.PasswordHash))
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.userRepo.On("GetByEmail", ctx, "taken@example.com").Return(&entities.User{ID: uuid.New()}, nil)

	_, err := f.uc.Register(ctx, &entities.CreateUserInput{
		Email:    "taken@example.com",
		Name:     "Impostor",
		Password: "long-enough-password",
	})

	assert.Equal(t, 409, appStatus(t, err))
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_RefreshToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := testUser(t, "irrelevant")

	pair, err := f.tokens.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	resp, err := f.uc.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = f.uc.RefreshToken(ctx, "not-a-token")
	assert.Equal(t, 401, appStatus(t, err))
}

func TestAuthUsecase_RefreshToken_DeletedUser(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	userID := uuid.New()

	pair, err := f.tokens.GenerateTokenPair(userID, "gone@example.com", "USER")
	require.NoError(t, err)

	f.userRepo.On("GetByID", ctx, userID).Return(nil, domainerrors.ErrNotFound)

	_, err = f.uc.RefreshToken(ctx, pair.RefreshToken)
	assert.Equal(t, 401, appStatus(t, err))
}

func TestAuthUsecase_ChangePassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := testUser(t, "old-password-123")

	f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	f.userRepo.On("Update", ctx, mock.AnythingOfType("*entities.User")).Return(nil)
	f.sessionRepo.On("DeleteByUserID", ctx, user.ID).Return(nil)

	err := f.uc.ChangePassword(ctx, user.ID, &entities.ChangePasswordInput{
		CurrentPassword: "old-password-123",
		NewPassword:     "new-password-456",
	})

	require.NoError(t, err)
	assert.True(t, crypto.CheckPassword("new-password-456", user.PasswordHash))
	// Every outstanding session dies with the old password.
	f.sessionRepo.AssertCalled(t, "DeleteByUserID", ctx, user.ID)
}

func TestAuthUsecase_ChangePassword_WrongCurrent(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := testUser(t, "old-password-123")

	f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	err := f.uc.ChangePassword(ctx, user.ID, &entities.ChangePasswordInput{
		CurrentPassword: "not-the-password",
		NewPassword:     "new-password-456",
	})

	assert.Equal(t, 401, appStatus(t, err))
	f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Logout_IgnoresMissingSession(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	sessionID := uuid.New()

	f.sessionRepo.On("Delete", ctx, sessionID).Return(domainerrors.ErrNotFound)

	require.NoError(t, f.uc.Logout(ctx, sessionID))
}
