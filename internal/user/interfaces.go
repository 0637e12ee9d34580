package user

import (
	"catalogue/internal/config"
	"context"
	"errors"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type Service interface {
	GetUser(ctx context.Context, req GetUserRequest) (*GetUserResponse, error)
	GetUserPassword(ctx context.Context, req GetUserRequest) (*GetUserPasswordResponse, error)
	GetAllUsers(ctx context.Context) ([]*GetUserResponse, error)
	CreateUser(ctx context.Context, req *CreateUserRequest) error
	EnsureUsers(ctx context.Context, users []config.UserConfig) error
}

type Repository interface {
	GetById(ctx context.Context, id int64) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, user *User) error
}

type GetUserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type GetUserRequest struct {
	ID       int64  `json:"id" form:"id" uri:"id"`
	Username string `json:"username" form:"username" uri:"username"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Realname string `json:"realname"`
}

type GetUserPasswordResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)
