package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
)

type stubStore struct {
	sessions map[string]*domain.Session
}

func newStubStore() *stubStore {
	return &stubStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubStore) Put(_ context.Context, sess *domain.Session, _ time.Duration) error {
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

func (s *stubStore) Get(_ context.Context, id string) (*domain.Session, error) {
	if sess, ok := s.sessions[id]; ok {
		clone := *sess
		return &clone, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *stubStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func issueCookie(t *testing.T, sc *SessionCookie, sid string) *http.Cookie {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := sc.Issue(c, sid); err != nil {
		t.Fatalf("issue cookie: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestRequireSession_ValidCookie(t *testing.T) {
	e := echo.New()
	sc := NewSessionCookie("secret", time.Hour)
	store := newStubStore()
	sess := &domain.Session{ID: "sid-1", User: domain.User{ID: "u1", Name: "Ana"}}
	_ = store.Put(context.Background(), sess, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(issueCookie(t, sc, "sid-1"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := RequireSession(sc, store)(func(c echo.Context) error {
		called = true
		got := CurrentSession(c)
		if got == nil || got.User.Name != "Ana" {
			t.Fatalf("session not in context: %+v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireSession_NoCookieRedirectsToLogin(t *testing.T) {
	e := echo.New()
	sc := NewSessionCookie("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSession(sc, newStubStore())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireSession_ExpiredStoreEntryRedirects(t *testing.T) {
	e := echo.New()
	sc := NewSessionCookie("secret", time.Hour)

	// Valid cookie, but the session is gone from the store.
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(issueCookie(t, sc, "sid-gone"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSession(sc, newStubStore())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 302 to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

type failingStore struct {
	err error
}

func (s *failingStore) Put(context.Context, *domain.Session, time.Duration) error { return s.err }
func (s *failingStore) Get(context.Context, string) (*domain.Session, error)      { return nil, s.err }
func (s *failingStore) Delete(context.Context, string) error                      { return s.err }

func TestRequireSession_StoreFaultIsNotARedirect(t *testing.T) {
	e := echo.New()
	sc := NewSessionCookie("secret", time.Hour)
	storeErr := errors.New("load session: connection refused")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(issueCookie(t, sc, "sid-1"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSession(sc, &failingStore{err: storeErr})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected the store error to propagate, got %v", err)
	}
	if rec.Code == http.StatusFound {
		t.Fatalf("a store fault must not masquerade as an anonymous request")
	}
}

func TestRequireSession_ForgedCookieRejected(t *testing.T) {
	e := echo.New()
	sc := NewSessionCookie("secret", time.Hour)
	store := newStubStore()
	_ = store.Put(context.Background(), &domain.Session{ID: "sid-1"}, time.Hour)

	// Token signed with the wrong secret.
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": "sid-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("wrong"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: forged})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSession(sc, store)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}

func TestLoadSession_AnonymousContinues(t *testing.T) {
	e := echo.New()
	sc := NewSessionCookie("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := LoadSession(sc, newStubStore())(func(c echo.Context) error {
		if CurrentSession(c) != nil {
			t.Fatalf("expected anonymous request")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
