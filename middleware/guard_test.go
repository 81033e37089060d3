package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gourmoire/authkit"
)

type singleUserProvider struct {
	user     authkit.User
	password string
}

func (p *singleUserProvider) Authenticate(_ context.Context, username, password string) (*authkit.User, error) {
	if username != p.user.Username || password != p.password {
		return nil, authkit.ErrInvalidCredentials
	}
	u := p.user
	return &u, nil
}

func (p *singleUserProvider) FindByID(_ context.Context, id string) (*authkit.User, error) {
	if id != p.user.ID {
		return nil, authkit.ErrUserNotFound
	}
	u := p.user
	return &u, nil
}

func (p *singleUserProvider) FindByUsername(_ context.Context, username string) (*authkit.User, error) {
	if username != p.user.Username {
		return nil, authkit.ErrUserNotFound
	}
	u := p.user
	return &u, nil
}

func newTestEngine(t *testing.T) *authkit.Engine {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	engine, err := authkit.New().
		WithConfig(authkit.Config{AccessSecret: "mw-access", RefreshSecret: "mw-refresh"}).
		WithRedis(rdb).
		WithUserProvider(&singleUserProvider{
			user:     authkit.User{ID: "u1", Username: "alice", Email: "a@example.com", CreatedAt: time.Now()},
			password: "hunter2",
		}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return engine
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) failureEnvelope {
	t.Helper()

	var env failureEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	engine := newTestEngine(t)

	handler := RequireAuth(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Code != authkit.CodeUnauthorized {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	engine := newTestEngine(t)

	login, aerr := engine.Login(context.Background(), "alice", "hunter2", false)
	if aerr != nil {
		t.Fatalf("Login failed: %v", aerr)
	}

	called := false
	handler := RequireAuth(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Fatal("identity missing from context")
		}
		if id.ID != "u1" || id.Token != login.AccessToken {
			t.Fatalf("unexpected identity: %+v", id)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler did not run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestOptionalAuthPassesThrough(t *testing.T) {
	engine := newTestEngine(t)

	handler := OptionalAuth(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); ok {
			t.Fatal("unexpected identity for anonymous request")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestOptionalAuthAttachesWhenValid(t *testing.T) {
	engine := newTestEngine(t)

	login, aerr := engine.Login(context.Background(), "alice", "hunter2", false)
	if aerr != nil {
		t.Fatalf("Login failed: %v", aerr)
	}

	handler := OptionalAuth(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok || id.Username != "alice" {
			t.Fatalf("expected identity, got (%+v, %v)", id, ok)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestRequireRefreshToken(t *testing.T) {
	engine := newTestEngine(t)

	login, aerr := engine.Login(context.Background(), "alice", "hunter2", false)
	if aerr != nil {
		t.Fatalf("Login failed: %v", aerr)
	}

	handler := RequireRefreshToken(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := RefreshClaimsFromContext(r.Context())
		if !ok || claims.UserID != "u1" {
			t.Fatalf("expected refresh claims, got (%+v, %v)", claims, ok)
		}
		cred, ok := RefreshTokenFromContext(r.Context())
		if !ok || cred != login.RefreshToken {
			t.Fatal("raw credential missing from context")
		}
	}))

	body := strings.NewReader(`{"refreshToken":"` + login.RefreshToken + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRefreshTokenMissingBody(t *testing.T) {
	engine := newTestEngine(t)

	handler := RequireRefreshToken(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for _, body := range []string{"", "{}", `{"refreshToken":""}`, "not json"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Code != authkit.CodeTokenInvalid || env.Message != "Refresh token is required" {
			t.Fatalf("body %q: unexpected envelope %+v", body, env)
		}
	}
}

func TestRequireRefreshTokenRejectsAccessCredential(t *testing.T) {
	engine := newTestEngine(t)

	login, aerr := engine.Login(context.Background(), "alice", "hunter2", false)
	if aerr != nil {
		t.Fatalf("Login failed: %v", aerr)
	}

	handler := RequireRefreshToken(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	body := strings.NewReader(`{"refreshToken":"` + login.AccessToken + `"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", body))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Invalid refresh token signature" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
