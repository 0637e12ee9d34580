package user

import (
	"catalogue/internal/config"
	"context"
	"errors"
	"github.com/juju/loggo/v2"
	"golang.org/x/crypto/bcrypt"
	"strings"
)

var logger = loggo.GetLogger("catalogue.user")

type ServiceImpl struct {
	repo Repository
}

func NewServiceImpl(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) lookup(ctx context.Context, req GetUserRequest) (User, error) {
	if req.ID != 0 {
		return s.repo.GetById(ctx, req.ID)
	}
	return s.repo.GetByUsername(ctx, req.Username)
}

func (s *ServiceImpl) GetUser(ctx context.Context, req GetUserRequest) (*GetUserResponse, error) {
	user, err := s.lookup(ctx, req)
	if err != nil {
		return nil, err
	}
	return &GetUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

func (s *ServiceImpl) GetUserPassword(ctx context.Context, req GetUserRequest) (*GetUserPasswordResponse, error) {
	user, err := s.lookup(ctx, req)
	if err != nil {
		return nil, err
	}
	return &GetUserPasswordResponse{
		ID:       user.ID,
		Username: user.Username,
		Password: user.Password,
		Role:     user.Role,
	}, nil
}

func (s *ServiceImpl) GetAllUsers(ctx context.Context) ([]*GetUserResponse, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	response := make([]*GetUserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, &GetUserResponse{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		})
	}
	return response, nil
}

func (s *ServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest) error {
	_, err := s.repo.GetByUsername(ctx, req.Username)
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &User{
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     Role(strings.ToUpper(req.Role)),
		Realname: req.Realname,
	}
	return s.repo.Create(ctx, user)
}

// EnsureUsers creates the configured accounts that do not exist yet. Existing
// accounts keep their stored password.
func (s *ServiceImpl) EnsureUsers(ctx context.Context, users []config.UserConfig) error {
	for _, u := range users {
		role := u.Role
		if role == "" {
			role = string(RoleUser)
		}
		err := s.CreateUser(ctx, &CreateUserRequest{Username: u.Username, Password: u.Password, Role: role})
		switch {
		case errors.Is(err, ErrUserExists):
			logger.Debugf("user %q already exists", u.Username)
		case err != nil:
			return err
		default:
			logger.Infof("created %s account %q", role, u.Username)
		}
	}
	return nil
}
