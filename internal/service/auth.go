package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cableworks/storefront-api/internal/dto"
	"github.com/cableworks/storefront-api/internal/model"
	"github.com/cableworks/storefront-api/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{userRepo: userRepo, jwtSecret: []byte(jwtSecret), jwtExpiry: jwtExpiry}
}

// Register creates a non-guest account. It never logs the user in; callers go
// through Login afterwards.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) error {
	existing, err := s.userRepo.GetRegisteredByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	hash := string(hashed)

	user := &model.User{
		Email:        req.Email,
		PasswordHash: &hash,
		Role:         model.RoleCustomer,
	}
	if req.Name != "" {
		user.Name = &req.Name
	}
	if req.Street != "" {
		user.Street = &req.Street
	}
	if req.Postcode != "" {
		user.Postcode = &req.Postcode
	}
	if req.City != "" {
		user.City = &req.City
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login deliberately returns the same error for an unknown email and a wrong
// password, so callers cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	user, err := s.userRepo.GetRegisteredByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if user == nil || user.PasswordHash == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

func (s *AuthService) generateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.jwtExpiry).Unix(),
		"iat":   time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
