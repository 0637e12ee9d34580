package auth

import (
	"catalogue/internal/user"
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Controller interface {
	Login(ctx *gin.Context)
	RegisterRoutes(router gin.IRouter, limiters ...gin.HandlerFunc)
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Authenticate(ctx context.Context, username, password string) (*Principal, error)
	ParseToken(token string) (*Principal, error)
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID       int64
	Username string
	Role     user.Role
}

type Claims struct {
	UserID   int64     `json:"uid"`
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
	jwt.RegisteredClaims
}
