package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
	"github.com/laundryhub/laundry-marketplace/internal/core/ports"
)

// CookieName is the session cookie set on login.
const CookieName = "laundry_session"

const sessionContextKey = "session"

// SessionCookie issues and verifies the session cookie. The cookie value is
// an HS256 token wrapping the opaque session id, so a tampered id is
// rejected before the store is ever consulted.
type SessionCookie struct {
	secret []byte
	maxAge time.Duration
}

func NewSessionCookie(secret string, maxAge time.Duration) *SessionCookie {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &SessionCookie{secret: []byte(secret), maxAge: maxAge}
}

// Issue signs the session id and sets the cookie on the response.
func (sc *SessionCookie) Issue(c echo.Context, sessionID string) error {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(sc.maxAge).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sc.secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(sc.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the cookie on the response.
func (sc *SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionID extracts and verifies the session id from the request cookie.
// The second return is false when the cookie is absent, expired or forged.
func (sc *SessionCookie) SessionID(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return sc.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}

	sid, _ := claims["sid"].(string)
	return sid, sid != ""
}

// RequireSession gates a route group on an authenticated session. Requests
// without a valid cookie-backed session are redirected to the login form;
// otherwise the session is placed in the request context.
func RequireSession(cookie *SessionCookie, store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, ok := cookie.SessionID(c)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}

			sess, err := store.Get(c.Request().Context(), sid)
			if err != nil {
				// Expired or unknown session: treat like anonymous.
				// Anything else is a store fault, not an auth decision.
				if errors.Is(err, domain.ErrSessionNotFound) {
					return c.Redirect(http.StatusFound, "/login")
				}
				return err
			}

			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// LoadSession populates the request context with the session when one is
// present but never blocks the request. Used on public pages that adapt
// to login state.
func LoadSession(cookie *SessionCookie, store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sid, ok := cookie.SessionID(c); ok {
				if sess, err := store.Get(c.Request().Context(), sid); err == nil {
					c.Set(sessionContextKey, sess)
				}
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session injected by RequireSession or
// LoadSession, or nil when the request is anonymous.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	return sess
}
