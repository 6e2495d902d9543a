package repository

import (
	"context"

	"github.com/studysphere/backend/internal/domain"
)

// AccountRepository defines the interface for user account persistence operations.
type AccountRepository interface {
	// Create inserts a new account into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves an account by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves an account by its normalized email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves an account by its username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// GroupRepository defines the interface for study group persistence operations.
type GroupRepository interface {
	// Create inserts a new group into the store.
	Create(ctx context.Context, group *domain.Group) error

	// GetByName retrieves a group by its unique name.
	GetByName(ctx context.Context, name string) (*domain.Group, error)

	// List returns all groups ordered by creation time, newest first.
	List(ctx context.Context) ([]domain.Group, error)

	// Update modifies an existing group in the store.
	Update(ctx context.Context, group *domain.Group) error

	// Delete removes a group from the store by its name.
	Delete(ctx context.Context, name string) error
}
