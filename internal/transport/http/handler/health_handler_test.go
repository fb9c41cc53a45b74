package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newHealthRouter() (*gin.Engine, *HealthHandler) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler(nil)
	r := gin.New()
	h.Mount(r)
	return r, h
}

func TestHealth_AlwaysUp(t *testing.T) {
	r, _ := newHealthRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body["status"] != "UP" || body["service"] != "user-service" {
		t.Errorf("body = %v", body)
	}
}

func TestReadiness_DownWithoutDB(t *testing.T) {
	r, h := newHealthRouter()
	h.SetReady(true)

	// 没有 DB 连接就绪探针必须 503，存活探针不受影响
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body["status"] != "DOWN" || body["database"] != "DOWN" || body["readiness"] != "UP" {
		t.Errorf("body = %v", body)
	}
}

func TestReadiness_NotAcceptingBeforeStart(t *testing.T) {
	r, _ := newHealthRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}
