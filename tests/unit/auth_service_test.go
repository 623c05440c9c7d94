package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"pawmarket/internal/config"
	"pawmarket/internal/domain"
	"pawmarket/internal/repository"
	"pawmarket/internal/service"
	"pawmarket/tests/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  2 * time.Hour,
		JWTRefreshExpiry: 14 * 24 * time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	meta := service.SessionMeta{}

	t.Run("Regular user", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		mockEmail := new(mocks.EmailService)
		svc := service.NewAuthService(mockUsers, mockSessions, mockEmail, testConfig())

		mockUsers.On("ExistsByEmail", ctx, "jane@example.com").Return(false, nil).Once()
		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "jane@example.com" &&
				u.Role == "regular" &&
				u.VerificationStatus == domain.VerificationApproved &&
				u.FirstName != nil && *u.FirstName == "Jane"
		})).Return(nil).Once()
		mockSessions.On("Create", ctx, mock.AnythingOfType("*repository.Session")).Return(nil).Once()
		mockEmail.On("SendWelcomeEmail", mock.Anything, "jane@example.com", mock.Anything).Return(nil).Maybe()

		user, tokens, err := svc.Register(ctx, domain.RegisterInput{
			Email:     "Jane@Example.com",
			Password:  "secret123",
			Role:      "regular",
			FirstName: "Jane",
			LastName:  "Doe",
		}, meta)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		mockUsers.AssertExpectations(t)
		mockSessions.AssertExpectations(t)
	})

	t.Run("Business starts pending verification", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		mockEmail := new(mocks.EmailService)
		svc := service.NewAuthService(mockUsers, mockSessions, mockEmail, testConfig())

		mockUsers.On("ExistsByEmail", ctx, mock.Anything).Return(false, nil).Once()
		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.VerificationStatus == domain.VerificationPending &&
				u.BusinessName != nil && *u.BusinessName == "Happy Paws Shelter"
		})).Return(nil).Once()
		mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockEmail.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		user, _, err := svc.Register(ctx, domain.RegisterInput{
			Email:        "shelter@example.com",
			Password:     "secret123",
			Role:         "business",
			BusinessName: "Happy Paws Shelter",
			BusinessType: "shelter",
			Address:      "1 Bark St",
		}, meta)

		assert.NoError(t, err)
		assert.Equal(t, domain.VerificationPending, user.VerificationStatus)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		mockEmail := new(mocks.EmailService)
		svc := service.NewAuthService(mockUsers, mockSessions, mockEmail, testConfig())

		mockUsers.On("ExistsByEmail", ctx, "jane@example.com").Return(true, nil).Once()

		_, _, err := svc.Register(ctx, domain.RegisterInput{
			Email:     "jane@example.com",
			Password:  "secret123",
			Role:      "regular",
			FirstName: "Jane",
			LastName:  "Doe",
		}, meta)

		assert.ErrorIs(t, err, service.ErrEmailExists)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Missing business fields", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUsers, new(mocks.SessionRepository), new(mocks.EmailService), testConfig())

		_, _, err := svc.Register(ctx, domain.RegisterInput{
			Email:    "shelter@example.com",
			Password: "secret123",
			Role:     "business",
		}, meta)

		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "business_name")
		mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Short password", func(t *testing.T) {
		svc := service.NewAuthService(new(mocks.UserRepository), new(mocks.SessionRepository), new(mocks.EmailService), testConfig())

		_, _, err := svc.Register(ctx, domain.RegisterInput{
			Email:     "jane@example.com",
			Password:  "abc",
			Role:      "regular",
			FirstName: "Jane",
			LastName:  "Doe",
		}, meta)

		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "password")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	meta := service.SessionMeta{}
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := &domain.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         "regular",
	}

	t.Run("Success", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := service.NewAuthService(mockUsers, mockSessions, new(mocks.EmailService), testConfig())

		mockUsers.On("GetByEmail", ctx, "jane@example.com").Return(user, nil).Once()
		mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()

		got, tokens, err := svc.Login(ctx, domain.LoginInput{Email: "jane@example.com", Password: "secret123"}, meta)

		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("Wrong password and unknown email look the same", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := service.NewAuthService(mockUsers, new(mocks.SessionRepository), new(mocks.EmailService), testConfig())

		mockUsers.On("GetByEmail", ctx, "jane@example.com").Return(user, nil).Once()
		mockUsers.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, _, errWrongPassword := svc.Login(ctx, domain.LoginInput{Email: "jane@example.com", Password: "nope"}, meta)
		_, _, errUnknownEmail := svc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "nope"}, meta)

		assert.ErrorIs(t, errWrongPassword, service.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownEmail, service.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	meta := service.SessionMeta{}
	user := &domain.User{ID: uuid.New(), Email: "jane@example.com", Role: "regular"}

	t.Run("Rotates the session", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := service.NewAuthService(mockUsers, mockSessions, new(mocks.EmailService), testConfig())

		session := &repository.Session{
			ID:        uuid.New(),
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		mockSessions.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).Return(session, nil).Once()
		mockUsers.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		mockSessions.On("Revoke", ctx, session.ID).Return(nil).Once()
		mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()

		tokens, err := svc.RefreshToken(ctx, "some-refresh-token", meta)

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.NotEqual(t, "some-refresh-token", tokens.RefreshToken)
		mockSessions.AssertExpectations(t)
	})

	t.Run("Expired session", func(t *testing.T) {
		mockSessions := new(mocks.SessionRepository)
		svc := service.NewAuthService(new(mocks.UserRepository), mockSessions, new(mocks.EmailService), testConfig())

		session := &repository.Session{
			ID:        uuid.New(),
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		mockSessions.On("GetByTokenHash", ctx, mock.Anything).Return(session, nil).Once()

		_, err := svc.RefreshToken(ctx, "stale-token", meta)

		assert.ErrorIs(t, err, service.ErrRefreshTokenExpired)
		mockSessions.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
	})

	t.Run("Unknown token", func(t *testing.T) {
		mockSessions := new(mocks.SessionRepository)
		svc := service.NewAuthService(new(mocks.UserRepository), mockSessions, new(mocks.EmailService), testConfig())

		mockSessions.On("GetByTokenHash", ctx, mock.Anything).Return(nil, nil).Once()

		_, err := svc.RefreshToken(ctx, "forged-token", meta)

		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("Deleted user", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := service.NewAuthService(mockUsers, mockSessions, new(mocks.EmailService), testConfig())

		session := &repository.Session{
			ID:        uuid.New(),
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		mockSessions.On("GetByTokenHash", ctx, mock.Anything).Return(session, nil).Once()
		mockUsers.On("GetByID", ctx, user.ID).Return(nil, nil).Once()

		_, err := svc.RefreshToken(ctx, "orphaned-token", meta)

		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()
	mockUsers := new(mocks.UserRepository)
	mockSessions := new(mocks.SessionRepository)
	svc := service.NewAuthService(mockUsers, mockSessions, new(mocks.EmailService), testConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := &domain.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         "regular",
	}
	mockUsers.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "secret123"}, service.SessionMeta{})
	assert.NoError(t, err)

	t.Run("Round trip", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "regular", claims.Role)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.jwt")
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockSessions := new(mocks.SessionRepository)
	svc := service.NewAuthService(new(mocks.UserRepository), mockSessions, new(mocks.EmailService), testConfig())

	mockSessions.On("RevokeAllForUser", ctx, userID).Return(nil).Once()

	err := svc.Logout(ctx, userID)

	assert.NoError(t, err)
	mockSessions.AssertExpectations(t)
}
