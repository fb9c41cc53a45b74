package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"banking-user-service/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	// 并发兜底：唯一索引冲突转成业务错误
	if err != nil && isDupKey(err) {
		return dupKeyError(err)
	}
	return err
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepo) FindByAuthID(ctx context.Context, authID string) (*domain.User, error) {
	return r.findOne(ctx, "auth_id = ?", authID)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *UserRepo) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ExistsByAuthID(ctx context.Context, authID string) (bool, error) {
	return r.exists(ctx, "auth_id = ?", authID)
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *UserRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone_number = ?", phone)
}

func (r *UserRepo) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where(query, args...).Count(&n).Error
	return n > 0, err
}

func (r *UserRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	return r.page(ctx, r.db.WithContext(ctx).Model(&domain.User{}), page)
}

func (r *UserRepo) ListByStatus(ctx context.Context, status domain.UserStatus, page domain.PageRequest) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{}).Where("status = ?", status)
	return r.page(ctx, q, page)
}

func (r *UserRepo) Search(ctx context.Context, query string, page domain.PageRequest) ([]domain.User, int64, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	q := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	return r.page(ctx, q, page)
}

func (r *UserRepo) page(ctx context.Context, q *gorm.DB, page domain.PageRequest) ([]domain.User, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	order := "created_at DESC"
	if s := sanitizeSort(page.Sort); s != "" {
		order = s
	}
	var users []domain.User
	if err := q.Order(order).Limit(page.Size).Offset(page.Offset()).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update 乐观锁：WHERE id AND version 条件更新，未命中说明版本已变
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND version = ?", u.ID, u.Version).
		Updates(map[string]any{
			"first_name":    u.FirstName,
			"last_name":     u.LastName,
			"phone_number":  u.PhoneNumber,
			"date_of_birth": u.DateOfBirth,
			"currency":      u.Currency,
			"status":        u.Status,
			"updated_at":    time.Now(),
			"version":       u.Version + 1,
		})
	if res.Error != nil {
		if isDupKey(res.Error) {
			return dupKeyError(res.Error)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrentModification()
	}
	u.Version++
	return nil
}

// ApplyStatusChange 审计追加 + 状态切换必须同生共死
func (r *UserRepo) ApplyStatusChange(ctx context.Context, u *domain.User, h *domain.UserStatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(h).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.User{}).
			Where("id = ? AND version = ?", u.ID, u.Version).
			Updates(map[string]any{
				"status":     u.Status,
				"updated_at": time.Now(),
				"version":    u.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrConcurrentModification()
		}
		u.Version++
		return nil
	})
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	// 先删审计记录（外键引用用户），再删用户
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&domain.UserStatusHistory{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound()
		}
		return nil
	})
}

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}

func dupKeyError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "auth_id"):
		return domain.ErrAuthIDExists()
	case strings.Contains(msg, "phone"):
		return domain.ErrPhoneExists()
	default:
		return domain.ErrEmailExists()
	}
}

// sanitizeSort 只放行 "列名 [asc|desc]" 形式的白名单列，防注入
func sanitizeSort(sort string) string {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		return ""
	}
	parts := strings.Fields(strings.ToLower(sort))
	if len(parts) > 2 {
		return ""
	}
	allowed := map[string]bool{
		"created_at": true, "updated_at": true, "email": true,
		"first_name": true, "last_name": true, "status": true,
	}
	if !allowed[parts[0]] {
		return ""
	}
	dir := "ASC"
	if len(parts) == 2 {
		if parts[1] != "asc" && parts[1] != "desc" {
			return ""
		}
		dir = strings.ToUpper(parts[1])
	}
	return parts[0] + " " + dir
}
