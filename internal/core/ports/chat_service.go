package ports

import (
	"context"
	"time"

	"github.com/frenchreborn/province-chat/internal/core/domain"
)

// PostMessageInput carries all data needed to post a message. Username comes
// from the session token; the province is the author's current one.
type PostMessageInput struct {
	Username string
	Content  string
}

// MessageResult is returned by the service after posting a message.
type MessageResult struct {
	ID        string
	Province  string
	CreatedAt time.Time
}

// ProvinceCount is one entry of the province membership stats.
type ProvinceCount struct {
	Province string `json:"province"`
	Members  int64  `json:"members"`
}

// ChatService defines use-case operations for provinces and messages.
type ChatService interface {
	// Provinces returns the configured province names.
	Provinces() []string
	// ChooseProvince sets the caller's province. Idempotent.
	ChooseProvince(ctx context.Context, username, province string) error
	ProvinceStats(ctx context.Context) ([]ProvinceCount, error)
	PostMessage(ctx context.Context, input PostMessageInput) (*MessageResult, error)
	// ListMessages returns the caller's visible message feed: all messages in
	// their province, ascending by creation time, minus muted authors. A
	// caller without a province sees an empty feed.
	ListMessages(ctx context.Context, username string) ([]domain.MessageView, error)
}
