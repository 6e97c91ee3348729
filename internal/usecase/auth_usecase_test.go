package usecase_test

import (
	"context"
	"testing"
	"time"

	"agrimarket/internal/domain/model"
	repo "agrimarket/internal/repository"
	"agrimarket/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUC() (*usecase.AuthUsecase, *UserRepoMock) {
	users := new(UserRepoMock)
	return usecase.NewAuthUsecase(users, "test_secret", 15*time.Minute), users
}

func TestRegister_CreatesCustomer(t *testing.T) {
	uc, users := newAuthUC()

	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(model.User{}, repo.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "alice@example.com" && u.Role == model.RoleCustomer && u.IsActive
	})).Return(nil)

	out, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    " Alice@Example.com ",
		Password: "password123",
		FullName: "Alice",
		Role:     model.RoleCustomer,
	})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, out.Role)
}

func TestRegister_ShortPassword(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "a@b.com",
		Password: "short",
		Role:     model.RoleCustomer,
	})

	var ve *usecase.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)
}

// super_adminは登録経由では作れない
func TestRegister_SuperAdminRejected(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "a@b.com",
		Password: "password123",
		Role:     model.RoleSuperAdmin,
	})

	var ve *usecase.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "role", ve.Field)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, users := newAuthUC()

	users.On("FindByEmail", mock.Anything, "a@b.com").Return(model.User{ID: 1, Email: "a@b.com"}, nil)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "a@b.com",
		Password: "password123",
		Role:     model.RoleSeller,
	})

	var ve *usecase.ValidationError
	assert.ErrorAs(t, err, &ve)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_TokenCarriesUserIDAndRole(t *testing.T) {
	uc, users := newAuthUC()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	u := model.User{ID: 42, Email: "s@b.com", PasswordHash: string(hash), Role: model.RoleSeller, IsActive: true}
	users.On("FindByEmail", mock.Anything, "s@b.com").Return(u, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Login(context.Background(), "s@b.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.UserID)
	assert.Equal(t, model.RoleSeller, out.Role)

	token, err := jwt.Parse(out.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test_secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "seller", claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, users := newAuthUC()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	u := model.User{ID: 42, PasswordHash: string(hash), Role: model.RoleSeller, IsActive: true}
	users.On("FindByEmail", mock.Anything, "s@b.com").Return(u, nil)

	_, err := uc.Login(context.Background(), "s@b.com", "wrong")

	var pe *usecase.PermissionError
	assert.ErrorAs(t, err, &pe)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	uc, users := newAuthUC()

	users.On("FindByEmail", mock.Anything, "nobody@b.com").Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), "nobody@b.com", "password123")

	var pe *usecase.PermissionError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "invalid credentials", pe.Message)
}

func TestLogin_DisabledAccount(t *testing.T) {
	uc, users := newAuthUC()

	u := model.User{ID: 42, PasswordHash: "x", Role: model.RoleSeller, IsActive: false}
	users.On("FindByEmail", mock.Anything, "s@b.com").Return(u, nil)

	_, err := uc.Login(context.Background(), "s@b.com", "password123")

	var pe *usecase.PermissionError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "account disabled", pe.Message)
}
