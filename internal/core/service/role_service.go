package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/frenchreborn/province-chat/internal/core/domain"
	"github.com/frenchreborn/province-chat/internal/core/ports"
)

// overseerRole is the bootstrap role seeded at startup; it carries every
// permission the service gates on.
const overseerRole = "overseer"

type roleService struct {
	repo ports.RoleRepository
	log  zerolog.Logger
}

// NewRoleService returns a RoleService implementation.
func NewRoleService(repo ports.RoleRepository, log zerolog.Logger) ports.RoleService {
	return &roleService{repo: repo, log: log}
}

func (s *roleService) CreateRole(ctx context.Context, input ports.CreateRoleInput) (*domain.Role, error) {
	if input.Name == "" || input.Province == "" {
		return nil, domain.ErrInvalidInput
	}

	perms := input.Permissions
	if perms == nil {
		perms = []string{}
	}

	role := &domain.Role{
		Name:        input.Name,
		Province:    input.Province,
		Permissions: perms,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.CreateRole(ctx, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("role", created.Name).Str("province", created.Province).Msg("role created")
	return created, nil
}

func (s *roleService) AssignRole(ctx context.Context, username, province, roleName string) error {
	role, err := s.repo.FindByName(ctx, province, roleName)
	if err != nil {
		return err
	}

	if _, err := s.repo.Assign(ctx, username, role.ID); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}

	s.log.Info().Str("username", username).Str("role", roleName).Msg("role assigned")
	return nil
}

func (s *roleService) ListRoles(ctx context.Context, province string) ([]*domain.Role, error) {
	return s.repo.ListByProvince(ctx, province)
}

func (s *roleService) EffectivePermissions(ctx context.Context, username string) ([]string, error) {
	roles, err := s.repo.RolesForUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("effective permissions: %w", err)
	}
	return domain.EffectivePermissions(roles), nil
}

// EnsureOverseer seeds the overseer role and assigns it to the bootstrap
// admin. The assignment is keyed by username, so it works even before the
// account registers.
func (s *roleService) EnsureOverseer(ctx context.Context, province, username string) error {
	role, err := s.repo.FindByName(ctx, province, overseerRole)
	if errors.Is(err, domain.ErrRoleNotFound) {
		role, err = s.repo.CreateRole(ctx, &domain.Role{
			Name:        overseerRole,
			Province:    province,
			Permissions: domain.AllPermissions,
			CreatedAt:   time.Now().UTC(),
		})
		// Another instance may have raced us to the insert.
		if errors.Is(err, domain.ErrRoleExists) {
			role, err = s.repo.FindByName(ctx, province, overseerRole)
		}
	}
	if err != nil {
		return fmt.Errorf("ensure overseer: %w", err)
	}

	if _, err := s.repo.Assign(ctx, username, role.ID); err != nil {
		return fmt.Errorf("ensure overseer: assign: %w", err)
	}

	s.log.Info().Str("username", username).Str("province", province).Msg("overseer role ensured")
	return nil
}
