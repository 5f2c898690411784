package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/frenchreborn/province-chat/internal/core/domain"
	"github.com/frenchreborn/province-chat/internal/core/ports"
)

func TestRoleService_CreateRole(t *testing.T) {
	repo := newMemRoleRepo()
	svc := NewRoleService(repo, zerolog.Nop())

	role, err := svc.CreateRole(context.Background(), ports.CreateRoleInput{
		Name:        "prefect",
		Province:    testProvince,
		Permissions: []string{domain.PermMute, domain.PermUnmute},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if role.ID == "" {
		t.Fatalf("expected role ID to be assigned")
	}

	if _, err := svc.CreateRole(context.Background(), ports.CreateRoleInput{
		Name:     "prefect",
		Province: testProvince,
	}); err != domain.ErrRoleExists {
		t.Fatalf("expected ErrRoleExists, got %v", err)
	}

	if _, err := svc.CreateRole(context.Background(), ports.CreateRoleInput{Name: "", Province: testProvince}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRoleService_AssignRole(t *testing.T) {
	repo := newMemRoleRepo()
	svc := NewRoleService(repo, zerolog.Nop())

	if err := svc.AssignRole(context.Background(), "alice", testProvince, "prefect"); err != domain.ErrRoleNotFound {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}

	if _, err := svc.CreateRole(context.Background(), ports.CreateRoleInput{
		Name:        "prefect",
		Province:    testProvince,
		Permissions: []string{domain.PermMute},
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.AssignRole(context.Background(), "alice", testProvince, "prefect"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	// Assigning twice is safe.
	if err := svc.AssignRole(context.Background(), "alice", testProvince, "prefect"); err != nil {
		t.Fatalf("repeated assign failed: %v", err)
	}

	perms, err := svc.EffectivePermissions(context.Background(), "alice")
	if err != nil {
		t.Fatalf("permissions lookup failed: %v", err)
	}
	if !reflect.DeepEqual(perms, []string{domain.PermMute}) {
		t.Fatalf("unexpected permissions: %v", perms)
	}
}

func TestRoleService_EffectivePermissions_Union(t *testing.T) {
	repo := newMemRoleRepo()
	svc := NewRoleService(repo, zerolog.Nop())

	for _, r := range []ports.CreateRoleInput{
		{Name: "silencer", Province: testProvince, Permissions: []string{domain.PermMute}},
		{Name: "restorer", Province: testProvince, Permissions: []string{domain.PermMute, domain.PermUnmute}},
	} {
		if _, err := svc.CreateRole(context.Background(), r); err != nil {
			t.Fatalf("create %s failed: %v", r.Name, err)
		}
		if err := svc.AssignRole(context.Background(), "alice", testProvince, r.Name); err != nil {
			t.Fatalf("assign %s failed: %v", r.Name, err)
		}
	}

	perms, err := svc.EffectivePermissions(context.Background(), "alice")
	if err != nil {
		t.Fatalf("permissions lookup failed: %v", err)
	}
	if !reflect.DeepEqual(perms, []string{domain.PermMute, domain.PermUnmute}) {
		t.Fatalf("expected deduplicated union, got %v", perms)
	}

	// Users with no assignments have no permissions.
	perms, err = svc.EffectivePermissions(context.Background(), "bob")
	if err != nil {
		t.Fatalf("permissions lookup failed: %v", err)
	}
	if len(perms) != 0 {
		t.Fatalf("expected empty set, got %v", perms)
	}
}

func TestRoleService_EnsureOverseer(t *testing.T) {
	repo := newMemRoleRepo()
	svc := NewRoleService(repo, zerolog.Nop())

	if err := svc.EnsureOverseer(context.Background(), testProvince, "admin"); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	// Idempotent across restarts.
	if err := svc.EnsureOverseer(context.Background(), testProvince, "admin"); err != nil {
		t.Fatalf("repeated ensure failed: %v", err)
	}

	perms, err := svc.EffectivePermissions(context.Background(), "admin")
	if err != nil {
		t.Fatalf("permissions lookup failed: %v", err)
	}
	for _, p := range domain.AllPermissions {
		if !domain.HasPermission(perms, p) {
			t.Fatalf("overseer missing permission %s: %v", p, perms)
		}
	}
}
