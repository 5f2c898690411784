package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/frenchreborn/province-chat/internal/api/metrics"
	"github.com/frenchreborn/province-chat/internal/core/domain"
	"github.com/frenchreborn/province-chat/internal/core/ports"
)

// AuditDispatcher abstracts the async moderation audit queue.
type AuditDispatcher interface {
	Enqueue(action domain.ModerationAction)
}

type moderationService struct {
	userRepo  ports.UserRepository
	muteRepo  ports.MuteRepository
	muteCache MuteCache
	audit     AuditDispatcher
	log       zerolog.Logger
}

// NewModerationService returns a ModerationService implementation.
func NewModerationService(
	userRepo ports.UserRepository,
	muteRepo ports.MuteRepository,
	muteCache MuteCache,
	audit AuditDispatcher,
	log zerolog.Logger,
) ports.ModerationService {
	return &moderationService{
		userRepo:  userRepo,
		muteRepo:  muteRepo,
		muteCache: muteCache,
		audit:     audit,
		log:       log,
	}
}

// Mute hides target's messages within the actor's province. Muting an
// already-muted user is a no-op success.
func (s *moderationService) Mute(ctx context.Context, actor, target string) (*ports.MuteResult, error) {
	province, err := s.resolve(ctx, actor, target)
	if err != nil {
		return nil, err
	}

	added, err := s.muteRepo.Add(ctx, &domain.MuteEntry{
		Province:  province,
		Username:  target,
		MutedBy:   actor,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("mute: %w", err)
	}

	if added {
		s.afterChange(ctx, domain.ActionMute, actor, target, province)
	}
	return &ports.MuteResult{AlreadyMuted: !added}, nil
}

// Unmute restores target's visibility within the actor's province. Unmuting a
// user who was not muted is reported back, not an error.
func (s *moderationService) Unmute(ctx context.Context, actor, target string) (*ports.MuteResult, error) {
	province, err := s.resolve(ctx, actor, target)
	if err != nil {
		return nil, err
	}

	removed, err := s.muteRepo.Remove(ctx, province, target)
	if err != nil {
		return nil, fmt.Errorf("unmute: %w", err)
	}

	if removed {
		s.afterChange(ctx, domain.ActionUnmute, actor, target, province)
	}
	return &ports.MuteResult{WasMuted: removed}, nil
}

// resolve loads both accounts and returns the actor's province, which scopes
// the mute. The target must exist but need not share the province: muting is
// keyed by username and applies whenever they post there.
func (s *moderationService) resolve(ctx context.Context, actor, target string) (string, error) {
	actorUser, err := s.userRepo.FindByUsername(ctx, actor)
	if err != nil {
		return "", fmt.Errorf("moderation: load actor: %w", err)
	}
	if actorUser.Province == "" {
		return "", domain.ErrNoProvince
	}

	if _, err := s.userRepo.FindByUsername(ctx, target); err != nil {
		return "", err
	}
	return actorUser.Province, nil
}

// afterChange invalidates the province's mute cache and records the action.
// Both are best-effort: the store is already updated and reads fall back to it.
func (s *moderationService) afterChange(ctx context.Context, action, actor, target, province string) {
	if s.muteCache != nil {
		if err := s.muteCache.Invalidate(ctx, province); err != nil {
			s.log.Warn().Err(err).Str("province", province).Msg("failed to invalidate mute cache")
		}
	}

	if s.audit != nil {
		s.audit.Enqueue(domain.ModerationAction{
			Action:    action,
			Actor:     actor,
			Target:    target,
			Province:  province,
			Timestamp: time.Now().UTC(),
		})
	}

	metrics.ModerationActionsTotal.WithLabelValues(action).Inc()
	s.log.Info().
		Str("action", action).
		Str("actor", actor).
		Str("target", target).
		Str("province", province).
		Msg("moderation action applied")
}
