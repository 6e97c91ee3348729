package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"agrimarket/internal/domain/model"
	repo "agrimarket/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// 認証まわり。注文エンジンから見ると(user_id, role)を出すだけのIdentity Context
type AuthUsecase struct {
	users     repo.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthUsecase(users repo.UserRepository, jwtSecret string, accessTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     model.Role
}

type RegisterOutput struct {
	UserID int64      `json:"user_id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return RegisterOutput{}, &ValidationError{Field: "email", Message: "invalid email"}
	}
	if len(in.Password) < 8 {
		return RegisterOutput{}, &ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	//super_adminは登録経由では作れない（seed専用）
	switch in.Role {
	case model.RoleSeller, model.RoleCustomer:
	default:
		return RegisterOutput{}, &ValidationError{Field: "role", Message: "role must be seller or customer"}
	}

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return RegisterOutput{}, &ValidationError{Field: "email", Message: "email already registered"}
	} else if !errors.Is(err, repo.ErrNotFound) {
		return RegisterOutput{}, &PersistenceError{Op: "find user", Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterOutput{}, &PersistenceError{Op: "hash password", Err: err}
	}

	user := model.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         in.Role,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, &user); err != nil {
		return RegisterOutput{}, &PersistenceError{Op: "create user", Err: err}
	}

	return RegisterOutput{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

type LoginOutput struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	UserID    int64      `json:"user_id"`
	Role      model.Role `json:"role"`
}

func (u *AuthUsecase) Login(ctx context.Context, email, password string) (LoginOutput, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		//存在有無は漏らさない
		return LoginOutput{}, &PermissionError{Message: "invalid credentials"}
	}
	if err != nil {
		return LoginOutput{}, &PersistenceError{Op: "find user", Err: err}
	}
	if !user.IsActive {
		return LoginOutput{}, &PermissionError{Message: "account disabled"}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return LoginOutput{}, &PermissionError{Message: "invalid credentials"}
	}

	now := time.Now()
	expiresAt := now.Add(u.accessTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.jwtSecret)
	if err != nil {
		return LoginOutput{}, &PersistenceError{Op: "sign token", Err: err}
	}

	loginAt := now
	user.LastLoginAt = &loginAt
	if err := u.users.Update(ctx, user); err != nil {
		return LoginOutput{}, &PersistenceError{Op: "update user", Err: err}
	}

	return LoginOutput{
		Token:     signed,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Role:      user.Role,
	}, nil
}
