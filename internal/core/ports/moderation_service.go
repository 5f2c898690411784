package ports

import "context"

// MuteResult reports the outcome of a mute or unmute. Both operations are
// idempotent; the flags tell the caller whether anything actually changed.
type MuteResult struct {
	// AlreadyMuted is true when a mute found the pair already muted.
	AlreadyMuted bool
	// WasMuted is true when an unmute actually removed an entry.
	WasMuted bool
}

// ModerationService defines mute and unmute within the actor's province.
// Permission gating happens in the HTTP layer; the service validates the
// target and applies the change.
type ModerationService interface {
	Mute(ctx context.Context, actor, target string) (*MuteResult, error)
	Unmute(ctx context.Context, actor, target string) (*MuteResult, error)
}
