package service

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AkashAman27/cuddly-nest-blog/common"
	"github.com/AkashAman27/cuddly-nest-blog/config"
	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/AkashAman27/cuddly-nest-blog/model"
	"github.com/AkashAman27/cuddly-nest-blog/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func getJwtKey() []byte {
	return []byte(config.AppConfig.JWT.SecretKey)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// AuthService owns credential checks and token handling. It is also the
// identity collaborator the secure route pipeline delegates to.
type AuthService struct {
	userRepo repository.IUserRepository
}

func NewAuthService(userRepo repository.IUserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Login verifies credentials and issues a signed token. Both unknown emails
// and bad passwords return the same message, so the endpoint cannot be used
// to probe for accounts.
func (s *AuthService) Login(email, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, common.NewAuthenticationError("Invalid email or password", err)
	}

	if !CheckPasswordHash(password, user.Password) {
		return nil, common.NewAuthenticationError("Invalid email or password", nil)
	}

	token, err := GenerateJWT(user)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		Token: token,
		User: &model.Principal{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

func GenerateJWT(user *model.User) (string, error) {
	expirationTime := time.Now().Add(1 * time.Hour)

	claims := &model.AppClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(getJwtKey())
	if err != nil {
		logger.Log.WithError(err).WithField("email", user.Email).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// Authenticate resolves the request's bearer token into a principal. A
// request without an Authorization header yields (nil, nil); a malformed or
// invalid token yields an error. The pipeline decides what either means for
// the route's access requirement.
func (s *AuthService) Authenticate(r *http.Request) (*model.Principal, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
		return nil, fmt.Errorf("invalid authorization header format")
	}

	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(headerParts[1], claims, func(token *jwt.Token) (interface{}, error) {
		return getJwtKey(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return &model.Principal{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  model.Role(claims.Role),
	}, nil
}

// Authorize reports whether the principal satisfies the required role.
func (s *AuthService) Authorize(p *model.Principal, required model.Role) bool {
	return p != nil && p.Role == required
}
