package ports

import (
	"context"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

// AuthService defines registration and login. Both return a signed session
// token on success; registration logs the new account in immediately.
type AuthService interface {
	Register(ctx context.Context, username, password string) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
