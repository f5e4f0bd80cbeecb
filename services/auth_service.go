package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"news-portal/models"
	"news-portal/repositories"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type authService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	jwtExpiration time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret []byte, jwtExpiration time.Duration) AuthService {
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

var errInvalidCredentials = models.ErrorUnauthorized{Message: "invalid credentials"}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, models.ErrorBadRequest{Message: "invalid role"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return nil, models.ErrorConflict{Message: "user already exists"}
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return user, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     now.Add(s.jwtExpiration).Unix(),
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
