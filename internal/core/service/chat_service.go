package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/frenchreborn/province-chat/internal/api/metrics"
	"github.com/frenchreborn/province-chat/internal/core/domain"
	"github.com/frenchreborn/province-chat/internal/core/ports"
)

// MuteCache abstracts the Redis cache of muted usernames per province.
type MuteCache interface {
	// Members returns the cached muted set; ok is false on a cache miss.
	Members(ctx context.Context, province string) (usernames []string, ok bool, err error)
	Fill(ctx context.Context, province string, usernames []string) error
	Invalidate(ctx context.Context, province string) error
}

type chatService struct {
	provinces   []string
	userRepo    ports.UserRepository
	messageRepo ports.MessageRepository
	muteRepo    ports.MuteRepository
	muteCache   MuteCache
	log         zerolog.Logger
}

// NewChatService returns a ChatService scoped to the configured provinces.
func NewChatService(
	provinces []string,
	userRepo ports.UserRepository,
	messageRepo ports.MessageRepository,
	muteRepo ports.MuteRepository,
	muteCache MuteCache,
	log zerolog.Logger,
) ports.ChatService {
	return &chatService{
		provinces:   provinces,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		muteRepo:    muteRepo,
		muteCache:   muteCache,
		log:         log,
	}
}

func (s *chatService) Provinces() []string {
	out := make([]string, len(s.provinces))
	copy(out, s.provinces)
	return out
}

// ChooseProvince sets the user's province. Re-choosing the same province is a
// no-op success.
func (s *chatService) ChooseProvince(ctx context.Context, username, province string) error {
	if !s.knownProvince(province) {
		return domain.ErrUnknownProvince
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("choose province: %w", err)
	}
	if user.Province == province {
		return nil
	}

	if err := s.userRepo.UpdateProvince(ctx, username, province); err != nil {
		return fmt.Errorf("choose province: %w", err)
	}

	s.log.Info().Str("username", username).Str("province", province).Msg("province chosen")
	return nil
}

func (s *chatService) ProvinceStats(ctx context.Context) ([]ports.ProvinceCount, error) {
	counts, err := s.userRepo.CountByProvince(ctx)
	if err != nil {
		return nil, fmt.Errorf("province stats: %w", err)
	}

	stats := make([]ports.ProvinceCount, 0, len(s.provinces))
	for _, p := range s.provinces {
		stats = append(stats, ports.ProvinceCount{Province: p, Members: counts[p]})
	}
	return stats, nil
}

// PostMessage appends a message to the author's province. The content is
// trimmed first; the author must have a province and must not be muted in it.
func (s *chatService) PostMessage(ctx context.Context, input ports.PostMessageInput) (*ports.MessageResult, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		metrics.MessagesRejectedTotal.WithLabelValues("empty").Inc()
		return nil, domain.ErrEmptyMessage
	}

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	if user.Province == "" {
		metrics.MessagesRejectedTotal.WithLabelValues("no_province").Inc()
		return nil, domain.ErrNoProvince
	}

	muted, err := s.muteRepo.IsMuted(ctx, user.Province, user.Username)
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	if muted {
		metrics.MessagesRejectedTotal.WithLabelValues("muted").Inc()
		return nil, domain.ErrAuthorMuted
	}

	msg := &domain.Message{
		AuthorID:  user.ID,
		Author:    user.Username,
		Province:  user.Province,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.messageRepo.Insert(ctx, msg)
	if err != nil {
		s.log.Error().Err(err).Str("username", user.Username).Msg("failed to insert message")
		return nil, err
	}

	metrics.MessagesPostedTotal.WithLabelValues(user.Province).Inc()
	s.log.Info().Str("username", user.Username).Str("province", user.Province).Msg("message posted")

	return &ports.MessageResult{
		ID:        created.ID,
		Province:  created.Province,
		CreatedAt: created.CreatedAt,
	}, nil
}

// ListMessages builds the caller's visible feed: every message in their
// province in insertion order, minus messages from muted authors. Roles are
// resolved per author at read time.
func (s *chatService) ListMessages(ctx context.Context, username string) ([]domain.MessageView, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if user.Province == "" {
		return []domain.MessageView{}, nil
	}

	timer := time.Now()
	defer func() {
		metrics.MessageListDuration.WithLabelValues(user.Province).Observe(time.Since(timer).Seconds())
	}()

	muted, err := s.mutedSet(ctx, user.Province)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	msgs, err := s.messageRepo.ListByProvince(ctx, user.Province)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	roles, err := s.authorRoles(ctx, msgs)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	views := make([]domain.MessageView, 0, len(msgs))
	for _, m := range msgs {
		if _, hidden := muted[m.Author]; hidden {
			continue
		}
		views = append(views, domain.MessageView{
			Username:  m.Author,
			Role:      roles[m.Author],
			Content:   m.Content,
			Timestamp: m.CreatedAt,
		})
	}
	return views, nil
}

// mutedSet reads the province's muted usernames through the cache. Cache
// errors degrade to a direct repository read; the cache is never the source
// of truth.
func (s *chatService) mutedSet(ctx context.Context, province string) (map[string]struct{}, error) {
	if s.muteCache != nil {
		cached, ok, err := s.muteCache.Members(ctx, province)
		if err != nil {
			s.log.Warn().Err(err).Str("province", province).Msg("mute cache read failed, falling back to store")
		} else if ok {
			return toSet(cached), nil
		}
	}

	usernames, err := s.muteRepo.ListUsernames(ctx, province)
	if err != nil {
		return nil, err
	}

	if s.muteCache != nil {
		if err := s.muteCache.Fill(ctx, province, usernames); err != nil {
			s.log.Warn().Err(err).Str("province", province).Msg("failed to fill mute cache")
		}
	}
	return toSet(usernames), nil
}

// authorRoles resolves the role of each distinct author in msgs.
func (s *chatService) authorRoles(ctx context.Context, msgs []*domain.Message) (map[string]string, error) {
	seen := make(map[string]struct{})
	authors := make([]string, 0)
	for _, m := range msgs {
		if _, ok := seen[m.Author]; ok {
			continue
		}
		seen[m.Author] = struct{}{}
		authors = append(authors, m.Author)
	}
	sort.Strings(authors)

	if len(authors) == 0 {
		return map[string]string{}, nil
	}

	users, err := s.userRepo.FindByUsernames(ctx, authors)
	if err != nil {
		return nil, err
	}

	roles := make(map[string]string, len(users))
	for _, u := range users {
		roles[u.Username] = u.Role
	}
	return roles, nil
}

func (s *chatService) knownProvince(name string) bool {
	for _, p := range s.provinces {
		if p == name {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
