package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

// In-memory fakes shared by the service tests.

type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = strconv.Itoa(r.nextID)
	r.users[created.Username] = cloneUser(created)
	return created, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) FindByUsernames(_ context.Context, usernames []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, name := range usernames {
		if u, ok := r.users[name]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateProvince(_ context.Context, username, province string) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Province = province
	return nil
}

func (r *memUserRepo) CountByProvince(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, u := range r.users {
		if u.Province != "" {
			counts[u.Province]++
		}
	}
	return counts, nil
}

// addUser seeds an account directly, bypassing registration.
func (r *memUserRepo) addUser(username, role, province string) {
	r.nextID++
	r.users[username] = &domain.User{
		ID:       strconv.Itoa(r.nextID),
		Username: username,
		Role:     role,
		Province: province,
	}
}

type memMessageRepo struct {
	msgs   []*domain.Message
	nextID int
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{}
}

func (r *memMessageRepo) Insert(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	r.nextID++
	created := *msg
	created.ID = strconv.Itoa(r.nextID)
	r.msgs = append(r.msgs, &created)
	return &created, nil
}

func (r *memMessageRepo) ListByProvince(_ context.Context, province string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.msgs {
		if m.Province == province {
			copy := *m
			out = append(out, &copy)
		}
	}
	return out, nil
}

type memMuteRepo struct {
	entries map[string]map[string]*domain.MuteEntry // province -> username
}

func newMemMuteRepo() *memMuteRepo {
	return &memMuteRepo{entries: make(map[string]map[string]*domain.MuteEntry)}
}

func (r *memMuteRepo) Add(_ context.Context, entry *domain.MuteEntry) (bool, error) {
	byUser, ok := r.entries[entry.Province]
	if !ok {
		byUser = make(map[string]*domain.MuteEntry)
		r.entries[entry.Province] = byUser
	}
	if _, exists := byUser[entry.Username]; exists {
		return false, nil
	}
	copy := *entry
	byUser[entry.Username] = &copy
	return true, nil
}

func (r *memMuteRepo) Remove(_ context.Context, province, username string) (bool, error) {
	byUser, ok := r.entries[province]
	if !ok {
		return false, nil
	}
	if _, exists := byUser[username]; !exists {
		return false, nil
	}
	delete(byUser, username)
	return true, nil
}

func (r *memMuteRepo) IsMuted(_ context.Context, province, username string) (bool, error) {
	_, ok := r.entries[province][username]
	return ok, nil
}

func (r *memMuteRepo) ListUsernames(_ context.Context, province string) ([]string, error) {
	var out []string
	for username := range r.entries[province] {
		out = append(out, username)
	}
	return out, nil
}

type memRoleRepo struct {
	roles       map[string]*domain.Role // id -> role
	assignments map[string]map[string]struct{}
	nextID      int
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{
		roles:       make(map[string]*domain.Role),
		assignments: make(map[string]map[string]struct{}),
	}
}

func (r *memRoleRepo) CreateRole(_ context.Context, role *domain.Role) (*domain.Role, error) {
	for _, existing := range r.roles {
		if existing.Province == role.Province && existing.Name == role.Name {
			return nil, domain.ErrRoleExists
		}
	}
	r.nextID++
	created := *role
	created.ID = strconv.Itoa(r.nextID)
	r.roles[created.ID] = &created
	return &created, nil
}

func (r *memRoleRepo) FindByName(_ context.Context, province, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Province == province && role.Name == name {
			copy := *role
			return &copy, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *memRoleRepo) ListByProvince(_ context.Context, province string) ([]*domain.Role, error) {
	var out []*domain.Role
	for _, role := range r.roles {
		if role.Province == province {
			copy := *role
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *memRoleRepo) Assign(_ context.Context, username, roleID string) (bool, error) {
	byRole, ok := r.assignments[username]
	if !ok {
		byRole = make(map[string]struct{})
		r.assignments[username] = byRole
	}
	if _, exists := byRole[roleID]; exists {
		return false, nil
	}
	byRole[roleID] = struct{}{}
	return true, nil
}

func (r *memRoleRepo) RolesForUser(_ context.Context, username string) ([]*domain.Role, error) {
	var out []*domain.Role
	for roleID := range r.assignments[username] {
		if role, ok := r.roles[roleID]; ok {
			copy := *role
			out = append(out, &copy)
		}
	}
	return out, nil
}

type recordingAudit struct {
	mu      sync.Mutex
	actions []domain.ModerationAction
}

func (a *recordingAudit) Enqueue(action domain.ModerationAction) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
}

func (a *recordingAudit) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.actions)
}

type memMuteCache struct {
	data          map[string][]string
	invalidations int
	fills         int
}

func newMemMuteCache() *memMuteCache {
	return &memMuteCache{data: make(map[string][]string)}
}

func (c *memMuteCache) Members(_ context.Context, province string) ([]string, bool, error) {
	usernames, ok := c.data[province]
	return usernames, ok, nil
}

func (c *memMuteCache) Fill(_ context.Context, province string, usernames []string) error {
	c.fills++
	c.data[province] = usernames
	return nil
}

func (c *memMuteCache) Invalidate(_ context.Context, province string) error {
	c.invalidations++
	delete(c.data, province)
	return nil
}
