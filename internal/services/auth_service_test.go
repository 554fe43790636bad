package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockTokenRepository is a mock implementation of repositories.TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Revoke(token *models.RevokedToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockTokenRepository) IsRevoked(token string) (bool, error) {
	args := m.Called(token)
	return args.Bool(0), args.Error(1)
}

// TestMain is used to setup the test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func newAuthService(userRepo *MockUserRepository, tokenRepo *MockTokenRepository) *services.AuthService {
	return services.NewAuthService(userRepo, tokenRepo, "test_jwt_secret")
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := newAuthService(mockUsers, mockTokens)

	user := &models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	mockUsers.On("GetByUsername", user.Username).Return(nil, apperrors.NotFound("not found")).Once()
	mockUsers.On("GetByEmail", user.Email).Return(nil, apperrors.NotFound("not found")).Once()
	mockUsers.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user, "password123")
	assert.NoError(t, err)
	// Password is replaced by its bcrypt hash before persisting.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockUsers.AssertExpectations(t)
}

func TestAuthService_RegisterUser_PasswordMismatch(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := newAuthService(mockUsers, mockTokens)

	user := &models.User{Username: "testuser", Email: "test@example.com", Password: "password123"}
	err := authService.RegisterUser(user, "different")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockUsers.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterUser_Duplicates(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := newAuthService(mockUsers, mockTokens)

	user := &models.User{Username: "testuser", Email: "test@example.com", Password: "password123"}

	// Username already taken
	mockUsers.On("GetByUsername", user.Username).Return(&models.User{ID: "1"}, nil).Once()
	err := authService.RegisterUser(user, "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// Email already registered
	mockUsers.On("GetByUsername", user.Username).Return(nil, apperrors.NotFound("not found")).Once()
	mockUsers.On("GetByEmail", user.Email).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user, "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	mockUsers.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := newAuthService(mockUsers, mockTokens)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		IsActive: true,
		IsAdmin:  true,
	}

	mockUsers.On("GetByEmail", user.Email).Return(user, nil).Once()

	token, loggedIn, err := authService.LoginUser("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte("test_jwt_secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])
	assert.Equal(t, true, claims["is_admin"])
	mockUsers.AssertExpectations(t)
}

func TestAuthService_LoginUser_InvalidCredentials(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := newAuthService(mockUsers, mockTokens)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "test@example.com", Password: string(hashedPassword), IsActive: true}

	// Wrong password
	mockUsers.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err := authService.LoginUser("test@example.com", "wrongpassword")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))

	// Unknown email yields the same generic message
	mockUsers.On("GetByEmail", "nobody@example.com").Return(nil, apperrors.NotFound("not found")).Once()
	_, _, err = authService.LoginUser("nobody@example.com", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockUsers.AssertExpectations(t)
}

func TestAuthService_LoginUser_DisabledAccount(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := newAuthService(mockUsers, mockTokens)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "test@example.com", Password: string(hashedPassword), IsActive: false}

	mockUsers.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err := authService.LoginUser("test@example.com", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := newAuthService(mockUsers, mockTokens)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"is_admin": false,
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte("test_jwt_secret"))

	// Valid, not revoked
	mockTokens.On("IsRevoked", validTokenString).Return(false, nil).Once()
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	// Revoked
	mockTokens.On("IsRevoked", validTokenString).Return(true, nil).Once()
	_, err = authService.ValidateToken(validTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "revoked")

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))

	// Expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte("test_jwt_secret"))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	mockTokens.AssertExpectations(t)
}

func TestAuthService_Logout(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := newAuthService(mockUsers, mockTokens)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	tokenString, _ := token.SignedString([]byte("test_jwt_secret"))

	mockTokens.On("IsRevoked", tokenString).Return(false, nil).Once()
	mockTokens.On("Revoke", mock.AnythingOfType("*models.RevokedToken")).Return(nil).Once()

	err := authService.Logout(tokenString)
	assert.NoError(t, err)
	mockTokens.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := newAuthService(mockUsers, mockTokens)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Password: string(hashedPassword)}

	// Wrong old password
	mockUsers.On("GetByID", "user-123").Return(user, nil).Once()
	err := authService.ChangePassword("user-123", "not-the-password", "newpassword", "newpassword")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// Confirmation mismatch is rejected before any lookup
	err = authService.ChangePassword("user-123", "oldpassword", "newpassword", "other")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// Success
	mockUsers.On("GetByID", "user-123").Return(user, nil).Once()
	mockUsers.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	err = authService.ChangePassword("user-123", "oldpassword", "newpassword", "newpassword")
	assert.NoError(t, err)
	mockUsers.AssertExpectations(t)
}
