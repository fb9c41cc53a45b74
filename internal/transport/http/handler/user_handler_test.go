package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"banking-user-service/internal/domain"
	"banking-user-service/internal/feature/history"
	"banking-user-service/internal/feature/user"
)

// memUserRepo 内存版 UserRepository，够 handler 测试用
type memUserRepo struct {
	users   map[string]*domain.User
	history []domain.UserStatusHistory
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*domain.User{}} }

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) FindByAuthID(_ context.Context, authID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.AuthID == authID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ExistsByAuthID(ctx context.Context, a string) (bool, error) {
	u, _ := r.FindByAuthID(ctx, a)
	return u != nil, nil
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, e string) (bool, error) {
	u, _ := r.FindByEmail(ctx, e)
	return u != nil, nil
}

func (r *memUserRepo) ExistsByPhone(_ context.Context, p string) (bool, error) {
	for _, u := range r.users {
		if u.PhoneNumber == p {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) List(_ context.Context, _ domain.PageRequest) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) ListByStatus(_ context.Context, s domain.UserStatus, _ domain.PageRequest) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Status == s {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) Search(_ context.Context, q string, _ domain.PageRequest) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.FirstName+" "+u.LastName+" "+u.Email), strings.ToLower(q)) {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) Update(_ context.Context, u *domain.User) error {
	cur, ok := r.users[u.ID]
	if !ok || cur.Version != u.Version {
		return domain.ErrConcurrentModification()
	}
	cp := *u
	cp.Version++
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) ApplyStatusChange(_ context.Context, u *domain.User, h *domain.UserStatusHistory) error {
	if err := r.Update(context.Background(), u); err != nil {
		return err
	}
	r.history = append(r.history, *h)
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound()
	}
	delete(r.users, id)
	return nil
}

type memHistoryRepo struct{ repo *memUserRepo }

func (r *memHistoryRepo) ListByUserID(_ context.Context, userID string, _ domain.PageRequest) ([]domain.UserStatusHistory, int64, error) {
	var out []domain.UserStatusHistory
	for _, h := range r.repo.history {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, int64(len(out)), nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemUserRepo()
	svc := user.NewService(repo, nil)
	r := gin.New()
	api := r.Group("/api/v1")
	NewUserHandler(svc, nil).Mount(api)
	NewHistoryHandler(history.NewService(&memHistoryRepo{repo: repo}), nil).Mount(api)
	return r, repo
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("bad response body %q: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func TestCreateUser_Created(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/users",
		`{"authId":"auth-1","email":"e@x.com","firstName":"John","lastName":"Doe"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}
	var v domain.UserView
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("data: %v", err)
	}
	if v.FullName != "John Doe" || v.Status != domain.StatusPendingVerification || v.Currency != "USD" {
		t.Errorf("unexpected view: %+v", v)
	}
}

func TestCreateUser_ValidationFieldMap(t *testing.T) {
	r, _ := newTestRouter(t)

	// 缺 email 和 lastName：两个字段错误都要一次性返回
	w, env := doJSON(t, r, http.MethodPost, "/api/v1/users",
		`{"authId":"auth-1","firstName":"John"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if _, ok := env.Errors["email"]; !ok {
		t.Errorf("missing email violation: %v", env.Errors)
	}
	if _, ok := env.Errors["lastName"]; !ok {
		t.Errorf("missing lastName violation: %v", env.Errors)
	}
}

func TestCreateUser_FutureDOB(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/users",
		`{"authId":"auth-1","email":"e@x.com","firstName":"John","lastName":"Doe","dateOfBirth":"2999-01-01"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env.Errors["dateOfBirth"] == "" {
		t.Errorf("want dateOfBirth violation, got %v", env.Errors)
	}
}

func TestCreateUser_Conflict(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"authId":"auth-1","email":"e@x.com","firstName":"John","lastName":"Doe"}`
	doJSON(t, r, http.MethodPost, "/api/v1/users", body)
	w, env := doJSON(t, r, http.MethodPost, "/api/v1/users", body)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if env.Errors["code"] != "USER_005" {
		t.Errorf("code = %s, want USER_005", env.Errors["code"])
	}
}

func TestGetUser_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/users/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if env.Errors["code"] != "USER_001" {
		t.Errorf("code = %s, want USER_001", env.Errors["code"])
	}

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/users/auth/nope", "")
	if w.Code != http.StatusNotFound || env.Errors["code"] != "USER_002" {
		t.Errorf("by auth id: status=%d code=%s, want 404/USER_002", w.Code, env.Errors["code"])
	}
}

func TestUpdateStatus_FlowOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/v1/users",
		`{"authId":"auth-1","email":"e@x.com","firstName":"John","lastName":"Doe"}`)
	var v domain.UserView
	_ = json.Unmarshal(env.Data, &v)

	w, _ := doJSON(t, r, http.MethodPut, "/api/v1/users/"+v.ID+"/status",
		`{"status":"ACTIVE","reason":"docs verified"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("to ACTIVE: status = %d; body %s", w.Code, w.Body.String())
	}

	w, env2 := doJSON(t, r, http.MethodPut, "/api/v1/users/"+v.ID+"/status",
		`{"status":"PENDING_VERIFICATION"}`)
	if w.Code != http.StatusBadRequest || env2.Errors["code"] != "USER_007" {
		t.Errorf("illegal transition: status=%d code=%s, want 400/USER_007", w.Code, env2.Errors["code"])
	}

	// 审计记录落了一条
	w, env3 := doJSON(t, r, http.MethodGet, "/api/v1/users/"+v.ID+"/status-history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("history: status = %d", w.Code)
	}
	var page struct {
		List  []domain.UserStatusHistory `json:"list"`
		Total int64                      `json:"total"`
	}
	if err := json.Unmarshal(env3.Data, &page); err != nil {
		t.Fatalf("history data: %v", err)
	}
	if page.Total != 1 || len(page.List) != 1 {
		t.Fatalf("history total = %d, want 1", page.Total)
	}
	if page.List[0].PreviousStatus != domain.StatusPendingVerification || page.List[0].NewStatus != domain.StatusActive {
		t.Errorf("history row %+v", page.List[0])
	}
}

func TestDeleteUser_NoContentAndEmptyHistory(t *testing.T) {
	r, _ := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/v1/users",
		`{"authId":"auth-1","email":"e@x.com","firstName":"John","lastName":"Doe"}`)
	var v domain.UserView
	_ = json.Unmarshal(env.Data, &v)

	w, _ := doJSON(t, r, http.MethodDelete, "/api/v1/users/"+v.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d, want 204", w.Code)
	}

	// 删除后查审计：空页而不是 404
	w, env2 := doJSON(t, r, http.MethodGet, "/api/v1/users/"+v.ID+"/status-history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("history after delete: status = %d, want 200", w.Code)
	}
	var page struct {
		Total int64 `json:"total"`
	}
	_ = json.Unmarshal(env2.Data, &page)
	if page.Total != 0 {
		t.Errorf("history total = %d, want 0", page.Total)
	}

	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/users/"+v.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", w.Code)
	}
}
