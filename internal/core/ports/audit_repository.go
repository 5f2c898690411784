package ports

import (
	"context"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

// AuditRepository persists moderation audit records.
type AuditRepository interface {
	Insert(ctx context.Context, action *domain.ModerationAction) error
}
