package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"banking-user-service/internal/core/cache"
	"banking-user-service/internal/domain"
)

const defaultUserTTL = 5 * time.Minute

type Service struct {
	users    domain.UserRepository
	accounts *AccountNumbers
	obs      domain.Observer
	cache    *cache.Cache
	userTTL  time.Duration
	log      *zap.Logger
	now      func() time.Time
}

type Option func(*Service)

// WithObserver 注入变更计数器，可不挂
func WithObserver(o domain.Observer) Option {
	return func(s *Service) { s.obs = o }
}

// WithCache 读模型缓存（按 id），写路径负责失效
func WithCache(c *cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		if ttl > 0 {
			s.userTTL = ttl
		}
	}
}

func WithAccountNumbers(g *AccountNumbers) Option {
	return func(s *Service) { s.accounts = g }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(users domain.UserRepository, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		users:    users,
		accounts: NewAccountNumbers(),
		userTTL:  defaultUserTTL,
		log:      log,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateInput 已通过边界层结构校验的创建指令
type CreateInput struct {
	AuthID      string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth *time.Time
	Currency    string
}

// UpdatePatch 部分更新：nil 字段不动
type UpdatePatch struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	DateOfBirth *time.Time
	Currency    *string
}

// StatusChange 状态变更指令；Actor/FromIP 由边界层透传，不在此处鉴别
type StatusChange struct {
	Status domain.UserStatus
	Reason string
	Actor  string
	FromIP string
}

// Create 唯一性校验顺序固定：authId → email → phone，先中先报
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.UserView, error) {
	s.log.Info("creating user", zap.String("email", in.Email))

	if exists, err := s.users.ExistsByAuthID(ctx, in.AuthID); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrAuthIDExists()
	}
	if exists, err := s.users.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrEmailExists()
	}
	if in.PhoneNumber != "" {
		if exists, err := s.users.ExistsByPhone(ctx, in.PhoneNumber); err != nil {
			return nil, err
		} else if exists {
			return nil, domain.ErrPhoneExists()
		}
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	u := &domain.User{
		ID:            uuid.NewString(),
		AuthID:        in.AuthID,
		Email:         in.Email,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		PhoneNumber:   in.PhoneNumber,
		DateOfBirth:   in.DateOfBirth,
		Status:        domain.StatusPendingVerification,
		KycStatus:     domain.KycPending,
		AccountNumber: s.accounts.Next(),
		Currency:      currency,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	if s.obs != nil {
		s.obs.UserCreated()
	}

	s.log.Info("user created", zap.String("user_id", u.ID))
	return u.View(), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.UserView, error) {
	if s.cache != nil {
		return cache.GetOrLoadJSON[domain.UserView](s.cache, ctx, userKey(id), s.userTTL,
			func(ctx context.Context) (*domain.UserView, error) {
				return s.loadByID(ctx, id)
			})
	}
	return s.loadByID(ctx, id)
}

func (s *Service) loadByID(ctx context.Context, id string) (*domain.UserView, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound()
	}
	return u.View(), nil
}

func (s *Service) GetByAuthID(ctx context.Context, authID string) (*domain.UserView, error) {
	u, err := s.users.FindByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFoundByAuthID()
	}
	return u.View(), nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.UserView, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound()
	}
	return u.View(), nil
}

func (s *Service) List(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.UserView], error) {
	page = page.Normalize()
	users, total, err := s.users.List(ctx, page)
	if err != nil {
		return domain.Page[*domain.UserView]{}, err
	}
	return domain.NewPage(views(users), total, page), nil
}

func (s *Service) ListByStatus(ctx context.Context, status domain.UserStatus, page domain.PageRequest) (domain.Page[*domain.UserView], error) {
	page = page.Normalize()
	users, total, err := s.users.ListByStatus(ctx, status, page)
	if err != nil {
		return domain.Page[*domain.UserView]{}, err
	}
	return domain.NewPage(views(users), total, page), nil
}

func (s *Service) Search(ctx context.Context, query string, page domain.PageRequest) (domain.Page[*domain.UserView], error) {
	page = page.Normalize()
	users, total, err := s.users.Search(ctx, query, page)
	if err != nil {
		return domain.Page[*domain.UserView]{}, err
	}
	return domain.NewPage(views(users), total, page), nil
}

func (s *Service) Update(ctx context.Context, id string, patch UpdatePatch) (*domain.UserView, error) {
	s.log.Info("updating user", zap.String("user_id", id))

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound()
	}

	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		// 号码变了才查重，避免自冲突
		if *patch.PhoneNumber != u.PhoneNumber {
			exists, err := s.users.ExistsByPhone(ctx, *patch.PhoneNumber)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrPhoneExists()
			}
		}
		u.PhoneNumber = *patch.PhoneNumber
	}
	if patch.DateOfBirth != nil {
		u.DateOfBirth = patch.DateOfBirth
	}
	if patch.Currency != nil {
		u.Currency = *patch.Currency
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	if s.obs != nil {
		s.obs.UserUpdated()
	}
	s.invalidate(ctx, id)

	return u.View(), nil
}

// UpdateStatus 状态机唯一的变更入口：
// 校验转移表 → 同一事务内追加审计记录并切换状态（带版本校验）
func (s *Service) UpdateStatus(ctx context.Context, id string, change StatusChange) (*domain.UserView, error) {
	s.log.Info("updating user status",
		zap.String("user_id", id),
		zap.String("target", string(change.Status)),
	)

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound()
	}

	previous := u.Status
	if !domain.CanTransition(previous, change.Status) {
		return nil, domain.ErrInvalidStatusTransition(previous, change.Status)
	}

	h := &domain.UserStatusHistory{
		ID:             uuid.NewString(),
		UserID:         u.ID,
		PreviousStatus: previous,
		NewStatus:      change.Status,
		Reason:         change.Reason,
		ChangedBy:      change.Actor,
		ChangedFromIP:  change.FromIP,
		ChangedAt:      s.now(),
	}
	u.Status = change.Status
	if err := s.users.ApplyStatusChange(ctx, u, h); err != nil {
		return nil, err
	}
	if s.obs != nil {
		s.obs.StatusChanged()
	}
	s.invalidate(ctx, id)

	s.log.Info("user status updated",
		zap.String("user_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(change.Status)),
	)
	return u.View(), nil
}

// Delete 先删审计记录再删用户（repo 内同一事务）。
// 注意：profile 不级联删除，维持既有孤儿行为，见 DESIGN.md
func (s *Service) Delete(ctx context.Context, id string) error {
	s.log.Info("deleting user", zap.String("user_id", id))

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound()
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userKey(id))
	}
}

func userKey(id string) string { return "user:view:" + id }

func views(users []domain.User) []*domain.UserView {
	out := make([]*domain.UserView, 0, len(users))
	for i := range users {
		out = append(out, users[i].View())
	}
	return out
}
