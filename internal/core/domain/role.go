package domain

import (
	"errors"
	"sort"
	"time"
)

// Permission strings checked by the authorization layer. Roles may carry any
// string, but these are the ones the service itself gates on.
const (
	PermMute        = "mute"
	PermUnmute      = "unmute"
	PermManageRoles = "manage_roles"
)

// AllPermissions is the full grant given to the bootstrap overseer role.
var AllPermissions = []string{PermMute, PermUnmute, PermManageRoles}

var ErrRoleExists = errors.New("role already exists")
var ErrRoleNotFound = errors.New("role not found")
var ErrUnknownProvince = errors.New("unknown province")

// Role is a named bundle of permission strings owned by a province.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Province    string    `json:"province"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

// EffectivePermissions returns the union of permission strings across the
// given roles, sorted and deduplicated. Authorization decisions are made
// against this set only; role names and provinces carry no implicit grants.
func EffectivePermissions(roles []*Role) []string {
	set := make(map[string]struct{})
	for _, r := range roles {
		for _, p := range r.Permissions {
			set[p] = struct{}{}
		}
	}

	perms := make([]string, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	sort.Strings(perms)
	return perms
}

// HasPermission reports whether perm appears in perms.
func HasPermission(perms []string, perm string) bool {
	for _, p := range perms {
		if p == perm {
			return true
		}
	}
	return false
}
