package ports

import (
	"context"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

// UserRepository defines the persistence interface for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByUsernames returns the users matching any of the given usernames.
	// Missing usernames are skipped, not an error.
	FindByUsernames(ctx context.Context, usernames []string) ([]*domain.User, error)
	UpdateProvince(ctx context.Context, username, province string) error
	// CountByProvince returns the number of accounts per province, excluding
	// accounts that have not picked one yet.
	CountByProvince(ctx context.Context) (map[string]int64, error)
}
