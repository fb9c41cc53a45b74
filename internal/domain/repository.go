package domain

import "context"

// UserRepository 用户存储端口；实现见 internal/repo
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByAuthID(ctx context.Context, authID string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	ExistsByAuthID(ctx context.Context, authID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)

	List(ctx context.Context, page PageRequest) ([]User, int64, error)
	ListByStatus(ctx context.Context, status UserStatus, page PageRequest) ([]User, int64, error)
	Search(ctx context.Context, query string, page PageRequest) ([]User, int64, error)

	// Update 条件更新：WHERE id AND version，未命中返回 ErrConcurrentModification
	Update(ctx context.Context, u *User) error

	// ApplyStatusChange 在同一事务内追加审计记录并（带版本校验）切换状态
	ApplyStatusChange(ctx context.Context, u *User, h *UserStatusHistory) error

	// Delete 同一事务内先删审计记录再删用户
	Delete(ctx context.Context, id string) error
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*UserProfile, error)
	Save(ctx context.Context, p *UserProfile) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type StatusHistoryRepository interface {
	// ListByUserID 按 changed_at 倒序；用户不存在时返回空页而非错误
	ListByUserID(ctx context.Context, userID string, page PageRequest) ([]UserStatusHistory, int64, error)
}

// Observer 变更计数回调，可为 nil；失败或缺席不影响业务正确性
type Observer interface {
	UserCreated()
	UserUpdated()
	StatusChanged()
}
