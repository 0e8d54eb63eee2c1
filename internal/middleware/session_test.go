package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/studiva/classwork-backend/internal/model"
	"github.com/studiva/classwork-backend/internal/response"
	"github.com/studiva/classwork-backend/internal/service"
)

type stubSessionStore struct {
	identities map[string]model.Identity
}

func (s *stubSessionStore) ResolveToken(ctx context.Context, token string) (*model.Identity, time.Time, error) {
	id, ok := s.identities[token]
	if !ok {
		return nil, time.Time{}, pgx.ErrNoRows
	}
	return &id, time.Now().Add(time.Hour), nil
}

// nullCache always misses so resolution goes straight to the store.
type nullCache struct{}

func (nullCache) Get(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}
func (nullCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return redis.NewStatusResult("OK", nil)
}
func (nullCache) SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return redis.NewStatusResult("OK", nil)
}
func (nullCache) GetDel(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}
func (nullCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return redis.NewIntResult(0, nil)
}

const (
	studentToken = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	teacherToken = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := &stubSessionStore{identities: map[string]model.Identity{
		studentToken: {SubjectID: 1, ClassroomID: 1, Role: model.RoleStudent},
		teacherToken: {SubjectID: 9, ClassroomID: 1, Role: model.RoleTeacher},
	}}
	tokens := service.NewTokenService(store, nullCache{}, zerolog.Nop())

	r := gin.New()
	r.GET("/student", RequireStudentSession(tokens), func(c *gin.Context) {
		id := GetIdentity(c)
		response.Success(c, http.StatusOK, gin.H{"subject_id": id.SubjectID})
	})
	r.GET("/teacher", RequireTeacherSession(tokens), func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path, authHeader string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return w, body
}

func TestSessionMiddlewareMissingToken(t *testing.T) {
	r := newTestEngine()
	w, body := doRequest(t, r, "/student", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if body.Error == nil || body.Error.Code != response.ErrTokenRequired {
		t.Errorf("error = %+v, want TOKEN_REQUIRED", body.Error)
	}
}

func TestSessionMiddlewareIndistinguishableRejections(t *testing.T) {
	r := newTestEngine()

	// Malformed and unknown-but-well-formed tokens must be identical on
	// the wire so callers cannot probe the session store.
	_, malformed := doRequest(t, r, "/student", "Bearer not-a-token")
	_, unknown := doRequest(t, r, "/student", "Bearer "+strings.Repeat("c", 64))

	if malformed.Error == nil || unknown.Error == nil {
		t.Fatal("expected error bodies on both rejections")
	}
	if malformed.Error.Code != response.ErrInvalidToken || unknown.Error.Code != response.ErrInvalidToken {
		t.Errorf("codes = %s / %s, want INVALID_TOKEN for both", malformed.Error.Code, unknown.Error.Code)
	}
	if malformed.Error.Message != unknown.Error.Message {
		t.Errorf("messages differ: %q vs %q", malformed.Error.Message, unknown.Error.Message)
	}
}

func TestSessionMiddlewareHappyPath(t *testing.T) {
	r := newTestEngine()
	w, body := doRequest(t, r, "/student", "Bearer "+studentToken)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (error: %+v)", w.Code, body.Error)
	}
}

func TestSessionMiddlewareRoleEnforcement(t *testing.T) {
	r := newTestEngine()

	w, body := doRequest(t, r, "/teacher", "Bearer "+studentToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("student on teacher route: status = %d, want 403", w.Code)
	}
	if body.Error == nil || body.Error.Code != response.ErrTeacherAccessOnly {
		t.Errorf("error = %+v, want TEACHER_ACCESS_ONLY", body.Error)
	}

	w, body = doRequest(t, r, "/student", "Bearer "+teacherToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("teacher on student route: status = %d, want 403", w.Code)
	}
	if body.Error == nil || body.Error.Code != response.ErrStudentAccessOnly {
		t.Errorf("error = %+v, want STUDENT_ACCESS_ONLY", body.Error)
	}
}

func TestSessionMiddlewareBearerSchemeOnly(t *testing.T) {
	r := newTestEngine()
	w, body := doRequest(t, r, "/student", "Token "+studentToken)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if body.Error == nil || body.Error.Code != response.ErrTokenRequired {
		t.Errorf("error = %+v, want TOKEN_REQUIRED", body.Error)
	}
}
