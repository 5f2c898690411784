package ports

import (
	"context"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

// CreateRoleInput carries the data for a new role.
type CreateRoleInput struct {
	Name        string
	Province    string
	Permissions []string
}

// RoleService defines role management and the permission lookup used by the
// authorization middleware.
type RoleService interface {
	CreateRole(ctx context.Context, input CreateRoleInput) (*domain.Role, error)
	AssignRole(ctx context.Context, username, province, roleName string) error
	ListRoles(ctx context.Context, province string) ([]*domain.Role, error)
	// EffectivePermissions returns the union of permission strings across all
	// roles assigned to the user, sorted.
	EffectivePermissions(ctx context.Context, username string) ([]string, error)
	// EnsureOverseer seeds the bootstrap overseer role in the given province
	// and assigns it to username. Called once at startup.
	EnsureOverseer(ctx context.Context, province, username string) error
}
