package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avoronin/go-todo-app/internal/config"
	"github.com/avoronin/go-todo-app/internal/logger"
	"github.com/avoronin/go-todo-app/internal/mock"
	"github.com/avoronin/go-todo-app/internal/store"
	"github.com/avoronin/go-todo-app/internal/utils"
	"github.com/avoronin/go-todo-app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testAppConfig() config.App {
	return config.App{
		AccessSignKey:        "test-access-key",
		RefreshSignKey:       "test-refresh-key",
		TokenIssuer:          "go-todo-app",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
	}
}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(mockUsers, testAppConfig(), logger.Nop())
	return svc, mockUsers
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestRegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	req := models.RegisterRequest{
		Email:     "  John@Example.COM ",
		Password:  "password123",
		FirstName: "John",
		LastName:  "Doe",
	}

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "john@example.com", u.Email, "email must be lowercased and trimmed")
			assert.Equal(t, models.RoleUser, u.Role, "registration never yields an admin")
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)))
			u.UserID = 1
			return u, nil
		},
	)

	created, err := svc.RegisterUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "john@example.com", created.Email)
}

func TestRegisterUser_ShortPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Email:    "john@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_MalformedEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	for _, email := range []string{"", "no-at-sign", "@leading", "trailing@", "with space@x.com"} {
		_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
			Email:    email,
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrInvalidDataProvided, "email %q must be rejected", email)
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.RegisterUser(ctx, models.RegisterRequest{
		Email:    "john@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.User{
		UserID:       1,
		Email:        "john@example.com",
		PasswordHash: mustHash(t, "password123"),
		Role:         models.RoleUser,
	}

	mockUsers.EXPECT().FindUserByEmail(ctx, "john@example.com").Return(stored, nil)

	user, err := svc.Login(ctx, models.LoginRequest{Email: "John@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, stored.UserID, user.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.User{
		UserID:       1,
		Email:        "john@example.com",
		PasswordHash: mustHash(t, "password123"),
		Role:         models.RoleUser,
	}

	mockUsers.EXPECT().FindUserByEmail(ctx, "john@example.com").Return(stored, nil)

	_, err := svc.Login(ctx, models.LoginRequest{Email: "john@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByEmail(ctx, "ghost@example.com").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Login(context.Background(), models.LoginRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Token lifecycle ──────────────────────────────────────────────────────────

func TestCreateTokenPair_And_VerifyAccessToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: 42, Email: "john@example.com", Role: models.RoleUser}

	pair, err := svc.CreateTokenPair(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	caller, err := svc.VerifyAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, caller.UserID)
	assert.Equal(t, user.Email, caller.Email)
	assert.Equal(t, models.RoleUser, caller.Role)
}

func TestVerifyAccessToken_RefreshTokenRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	pair, err := svc.CreateTokenPair(ctx, models.User{UserID: 42, Email: "john@example.com", Role: models.RoleUser})
	require.NoError(t, err)

	// the two token kinds are signed with different secrets: a refresh
	// token must never pass as an access token
	_, err = svc.VerifyAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.VerifyAccessToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	cfg := testAppConfig()

	user := models.User{UserID: 42, Email: "john@example.com", Role: models.RoleUser}
	expired, err := utils.GenerateAccessToken(cfg.TokenIssuer, user, -time.Minute, cfg.AccessSignKey)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(context.Background(), expired)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestRefreshAccessToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: 42, Email: "john@example.com", Role: models.RoleUser}

	pair, err := svc.CreateTokenPair(ctx, user)
	require.NoError(t, err)

	// the subject is re-read so role changes appear in the fresh token
	promoted := user
	promoted.Role = models.RoleAdmin
	mockUsers.EXPECT().FindUserByID(ctx, user.UserID).Return(promoted, nil)

	accessToken, err := svc.RefreshAccessToken(ctx, pair.RefreshToken)
	require.NoError(t, err)

	caller, err := svc.VerifyAccessToken(ctx, accessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, caller.Role)
}

func TestRefreshAccessToken_AccessTokenRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	pair, err := svc.CreateTokenPair(ctx, models.User{UserID: 42, Email: "john@example.com", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = svc.RefreshAccessToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestRefreshAccessToken_SubjectGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	pair, err := svc.CreateTokenPair(ctx, models.User{UserID: 42, Email: "john@example.com", Role: models.RoleUser})
	require.NoError(t, err)

	mockUsers.EXPECT().FindUserByID(ctx, int64(42)).Return(models.User{}, store.ErrUserNotFound)

	_, err = svc.RefreshAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

// ── GetProfile ───────────────────────────────────────────────────────────────

func TestGetProfile_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.User{UserID: 42, Email: "john@example.com", Role: models.RoleUser}
	mockUsers.EXPECT().FindUserByID(ctx, int64(42)).Return(stored, nil)

	user, err := svc.GetProfile(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, stored.Email, user.Email)
}

func TestGetProfile_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByID(ctx, int64(404)).Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.GetProfile(ctx, 404)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestRegisterUser_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	dbErr := errors.New("db down")
	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, dbErr)

	_, err := svc.RegisterUser(ctx, models.RegisterRequest{
		Email:    "john@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, dbErr)
}
