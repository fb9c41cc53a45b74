package history

import (
	"context"
	"testing"
	"time"

	"banking-user-service/internal/domain"
)

type stubHistory struct {
	rows []domain.UserStatusHistory
}

func (s *stubHistory) ListByUserID(_ context.Context, userID string, page domain.PageRequest) ([]domain.UserStatusHistory, int64, error) {
	var matched []domain.UserStatusHistory
	for _, h := range s.rows {
		if h.UserID == userID {
			matched = append(matched, h)
		}
	}
	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func TestListByUser_EmptyPageForUnknownUser(t *testing.T) {
	svc := NewService(&stubHistory{})

	page, err := svc.ListByUser(context.Background(), "ghost", domain.PageRequest{})
	if err != nil {
		t.Fatalf("unknown user must not be an error: %v", err)
	}
	if page.Total != 0 || len(page.List) != 0 {
		t.Errorf("want empty page, got total=%d len=%d", page.Total, len(page.List))
	}
	if page.List == nil {
		t.Error("list must be an empty slice, not nil")
	}
}

func TestListByUser_Pagination(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubHistory{}
	for i := 0; i < 5; i++ {
		repo.rows = append(repo.rows, domain.UserStatusHistory{
			ID:        string(rune('a' + i)),
			UserID:    "u1",
			ChangedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	svc := NewService(repo)

	page, err := svc.ListByUser(context.Background(), "u1", domain.PageRequest{Page: 2, Size: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 5 || len(page.List) != 2 {
		t.Errorf("total=%d len=%d, want 5/2", page.Total, len(page.List))
	}
	if page.Page != 2 || page.Size != 2 {
		t.Errorf("page meta %d/%d, want 2/2", page.Page, page.Size)
	}
	if page.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", page.TotalPages)
	}
}
