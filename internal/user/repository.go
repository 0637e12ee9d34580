package user

import (
	"catalogue/internal/db"
	"context"
	"github.com/juju/errors"
	"sync"
)

const userColumns = "id, username, password, role, realname"

type RepositoryImpl struct {
	db *db.HDb
}

func NewRepositoryImpl(db *db.HDb) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetById(ctx context.Context, id int64) (User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, r.db.Rebind("SELECT "+userColumns+" FROM user_account WHERE id = ?"), id)
	return user, notFound(err)
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.SelectContext(ctx, &users, "SELECT "+userColumns+" FROM user_account ORDER BY id")
	return users, errors.Annotate(err, "selecting users")
}

func (r *RepositoryImpl) GetByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, r.db.Rebind("SELECT "+userColumns+" FROM user_account WHERE username = ?"), username)
	return user, notFound(err)
}

func (r *RepositoryImpl) Create(ctx context.Context, user *User) error {
	query := r.db.Rebind("INSERT INTO user_account (username, password, role, realname) VALUES (?, ?, ?, ?) RETURNING id")
	err := r.db.GetContext(ctx, &user.ID, query, user.Username, user.Password, user.Role, user.Realname)
	return errors.Annotatef(err, "inserting user %q", user.Username)
}

func notFound(err error) error {
	if db.IsNoRows(err) {
		return ErrUserNotFound
	}
	return errors.Annotate(err, "selecting user")
}

// MemoryRepository keeps accounts in process memory; it backs the memory
// database driver.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  []User
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) GetById(_ context.Context, id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *MemoryRepository) GetAll(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]User(nil), r.users...), nil
}

func (r *MemoryRepository) GetByUsername(_ context.Context, username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *MemoryRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return ErrUserExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, *user)
	return nil
}
