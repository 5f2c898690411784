package ports

import (
	"context"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

// MuteRepository defines the persistence interface for per-province mutes.
type MuteRepository interface {
	// Add records a mute. Returns false when the pair was already muted.
	Add(ctx context.Context, entry *domain.MuteEntry) (bool, error)
	// Remove deletes a mute. Returns false when the pair was not muted.
	Remove(ctx context.Context, province, username string) (bool, error)
	IsMuted(ctx context.Context, province, username string) (bool, error)
	ListUsernames(ctx context.Context, province string) ([]string, error)
}
