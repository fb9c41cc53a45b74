package profile

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"banking-user-service/internal/domain"
)

type Service struct {
	users    domain.UserRepository
	profiles domain.ProfileRepository
	log      *zap.Logger
}

func NewService(users domain.UserRepository, profiles domain.ProfileRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, profiles: profiles, log: log}
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound()
	}
	return p, nil
}

// Upsert 用户必须存在；无 profile 则懒创建空档案，再应用 patch。
// patch 里没出现的字段保持原值
func (s *Service) Upsert(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	s.log.Info("updating profile", zap.String("user_id", userID))

	p, err := s.loadOrNew(ctx, userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateAvatar(ctx context.Context, userID, avatarURL string) (*domain.UserProfile, error) {
	s.log.Info("updating avatar", zap.String("user_id", userID))

	p, err := s.loadOrNew(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.AvatarURL = avatarURL
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete 幂等：没有档案也算成功
func (s *Service) Delete(ctx context.Context, userID string) error {
	s.log.Info("deleting profile", zap.String("user_id", userID))
	return s.profiles.DeleteByUserID(ctx, userID)
}

func (s *Service) loadOrNew(ctx context.Context, userID string) (*domain.UserProfile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound()
	}
	p, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &domain.UserProfile{
			ID:                   uuid.NewString(),
			UserID:               userID,
			PreferredLanguage:    "en",
			NotificationsEnabled: true,
		}
	}
	return p, nil
}
