package history

import (
	"context"

	"banking-user-service/internal/domain"
)

// Service 审计记录只读入口；不校验用户是否存在，未知用户返回空页
type Service struct {
	history domain.StatusHistoryRepository
}

func NewService(h domain.StatusHistoryRepository) *Service {
	return &Service{history: h}
}

func (s *Service) ListByUser(ctx context.Context, userID string, page domain.PageRequest) (domain.Page[domain.UserStatusHistory], error) {
	page = page.Normalize()
	items, total, err := s.history.ListByUserID(ctx, userID, page)
	if err != nil {
		return domain.Page[domain.UserStatusHistory]{}, err
	}
	return domain.NewPage(items, total, page), nil
}
