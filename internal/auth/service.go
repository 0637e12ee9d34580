package auth

import (
	"catalogue/internal/config"
	"catalogue/internal/user"
	"context"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"time"
)

type ServiceImpl struct {
	userService user.Service
	config      config.JWTConfig
	now         func() time.Time
}

func NewServiceImpl(userService user.Service, config config.JWTConfig) *ServiceImpl {
	return &ServiceImpl{
		userService: userService,
		config:      config,
		now:         time.Now,
	}
}

func (s *ServiceImpl) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	principal, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(principal)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token}, nil
}

// Authenticate checks a username and password against the stored bcrypt hash.
func (s *ServiceImpl) Authenticate(ctx context.Context, username, password string) (*Principal, error) {
	userResponse, err := s.userService.GetUserPassword(ctx, user.GetUserRequest{Username: username})
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userResponse.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Principal{ID: userResponse.ID, Username: userResponse.Username, Role: userResponse.Role}, nil
}

func (s *ServiceImpl) ParseToken(tokenString string) (*Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return &Principal{ID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}

func (s *ServiceImpl) generateToken(p *Principal) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:   p.ID,
		Username: p.Username,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.config.ExpiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	return token.SignedString([]byte(s.config.SecretKey))
}
