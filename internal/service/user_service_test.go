package service

import (
	"testing"

	"entraide-go/internal/model"
	"entraide-go/pkg/hash"
	"entraide-go/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegister(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(userRepo, token.NewJWTManager("secret", 2, 7))
	user, err := svc.Register("Alice", "alice@example.com", "motdepasse")

	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, 0, user.QuestionsAsked)
	// 未配置时使用默认配额
	assert.Equal(t, 2, user.QuestionsLimit)
	// 密码以 bcrypt 哈希存储
	assert.NotEqual(t, "motdepasse", user.Password)
	assert.True(t, hash.CheckPasswordHash("motdepasse", user.Password))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", "alice@example.com").Return(&model.User{ID: 1, Email: "alice@example.com"}, nil)

	svc := NewUserService(userRepo, token.NewJWTManager("secret", 2, 7))
	_, err := svc.Register("Alice", "alice@example.com", "motdepasse")

	assert.ErrorIs(t, err, ErrUserExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin(t *testing.T) {
	hashed, err := hash.HashPassword("motdepasse")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", "alice@example.com").Return(&model.User{
		ID: 1, Email: "alice@example.com", Password: hashed, Role: model.RoleUser,
	}, nil)

	jwtManager := token.NewJWTManager("secret", 2, 7)
	svc := NewUserService(userRepo, jwtManager)
	accessToken, refreshToken, err := svc.Login("alice@example.com", "motdepasse")

	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	claims, err := jwtManager.VerifyToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := hash.HashPassword("motdepasse")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", "alice@example.com").Return(&model.User{
		ID: 1, Email: "alice@example.com", Password: hashed,
	}, nil)

	svc := NewUserService(userRepo, token.NewJWTManager("secret", 2, 7))
	_, _, err = svc.Login("alice@example.com", "mauvais")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", "inconnu@example.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(userRepo, token.NewJWTManager("secret", 2, 7))
	_, _, err := svc.Login("inconnu@example.com", "motdepasse")

	// 邮箱不存在与密码错误返回同一个错误
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	jwtManager := token.NewJWTManager("secret", 2, 7)
	refresh, err := jwtManager.GenerateRefreshToken(1, "alice@example.com", model.RoleUser)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", uint(1)).Return(&model.User{
		ID: 1, Email: "alice@example.com", Role: model.RoleUser,
	}, nil)

	svc := NewUserService(userRepo, jwtManager)
	newAccess, newRefresh, err := svc.RefreshToken(refresh)

	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
}

func TestRefreshToken_Invalid(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, token.NewJWTManager("secret", 2, 7))

	_, _, err := svc.RefreshToken("pas-un-token")
	assert.Error(t, err)
}
