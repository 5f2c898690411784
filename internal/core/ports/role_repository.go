package ports

import (
	"context"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

// RoleRepository defines the persistence interface for roles and their
// assignments. Assignments are keyed by username so a role can be granted
// before the account exists; it takes effect once the user registers.
type RoleRepository interface {
	CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindByName(ctx context.Context, province, name string) (*domain.Role, error)
	ListByProvince(ctx context.Context, province string) ([]*domain.Role, error)
	// Assign links a user to a role. Returns false when the assignment
	// already existed.
	Assign(ctx context.Context, username, roleID string) (bool, error)
	RolesForUser(ctx context.Context, username string) ([]*domain.Role, error)
}
