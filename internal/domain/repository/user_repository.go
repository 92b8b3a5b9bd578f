package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/multitenant-notes/internal/domain/entity"
)

// ErrNotFound is returned by repositories when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a record with the same unique key already exists.
var ErrConflict = errors.New("already exists")

// UserRepository defines the interface for user-related storage operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
