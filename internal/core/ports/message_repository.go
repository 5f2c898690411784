package ports

import (
	"context"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

// MessageRepository defines the persistence interface for the append-only
// message store.
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// ListByProvince returns every message in the province, ascending by
	// creation time.
	ListByProvince(ctx context.Context, province string) ([]*domain.Message, error)
}
