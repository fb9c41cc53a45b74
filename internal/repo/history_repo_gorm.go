package repo

import (
	"context"

	"gorm.io/gorm"

	"banking-user-service/internal/domain"
)

type HistoryRepo struct{ db *gorm.DB }

func NewHistoryRepo(db *gorm.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// ListByUserID 审计展示固定 changed_at 倒序；用户没有记录返回空集
func (r *HistoryRepo) ListByUserID(ctx context.Context, userID string, page domain.PageRequest) ([]domain.UserStatusHistory, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.UserStatusHistory{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []domain.UserStatusHistory
	if err := q.Order("changed_at DESC").Limit(page.Size).Offset(page.Offset()).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
