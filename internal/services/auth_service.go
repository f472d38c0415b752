package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"kasir/internal/models"
	"kasir/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on a failed login. Deliberately the
// same whether the email is unknown or the password is wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles registration, login, and profile access.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// RegisterUser registers a new user, hashing their password before it is
// stored. A duplicate email is a conflict.
func (s *AuthService) RegisterUser(ctx context.Context, user *models.User) error {
	existing, err := s.userRepo.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return classify(err, "user not found")
	}
	if existing != nil {
		return NewConflictError(fmt.Sprintf("email '%s' already registered", user.Email))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return NewStorageError(err)
	}
	user.Password = string(hashed)

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The GetByEmail check above is not atomic with the insert; a
		// concurrent registration can still hit the unique index.
		if errors.Is(err, repositories.ErrDuplicate) {
			return NewConflictError(fmt.Sprintf("email '%s' already registered", user.Email))
		}
		return classify(err, "user not found")
	}
	return nil
}

// Login authenticates by email and returns the user plus a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", classify(err, "user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", NewStorageError(err)
	}
	return user, signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GetProfile returns a user by id.
func (s *AuthService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, NewValidationError("user id is required")
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err, "user not found")
	}
	return user, nil
}

// UpdateProfile updates a user's name, phone, and address.
func (s *AuthService) UpdateProfile(ctx context.Context, id, name, phone, address string) error {
	if id == "" {
		return NewValidationError("user id is required")
	}
	if name == "" {
		return NewValidationError("name is required")
	}
	if err := s.userRepo.UpdateProfile(ctx, id, name, phone, address); err != nil {
		return classify(err, "user not found")
	}
	return nil
}
