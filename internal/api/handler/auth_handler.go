package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/laundryhub/laundry-marketplace/internal/api/metrics"
	"github.com/laundryhub/laundry-marketplace/internal/api/middleware"
	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
	"github.com/laundryhub/laundry-marketplace/internal/core/ports"
)

// AuthHandler serves the signup/login/logout forms. Form-level failures
// re-render the form with an errorMessage local; they are never surfaced
// as HTTP error codes.
type AuthHandler struct {
	authService ports.AuthService
	cookie      *middleware.SessionCookie
}

func NewAuthHandler(authService ports.AuthService, cookie *middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Home handles GET /.
func (h *AuthHandler) Home(c echo.Context) error {
	data := echo.Map{"isUserLoggedIn": false}
	if sess := middleware.CurrentSession(c); sess != nil {
		data["isUserLoggedIn"] = true
		data["currentUser"] = sess.User
	}
	return c.Render(http.StatusOK, "home.html", data)
}

// SignUpForm handles GET /signup.
func (h *AuthHandler) SignUpForm(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", echo.Map{"errorMessage": ""})
}

// SignUp handles POST /signup. On success the new account is NOT logged
// in; the user lands on the home page anonymous.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var form signupForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusOK, "signup.html", echo.Map{
			"errorMessage": "Enter both email and password to sign up.",
		})
	}

	_, err := h.authService.SignUp(c.Request().Context(), form.Name, form.Email, form.Password)
	switch {
	case err == nil:
		metrics.SignupsTotal.Inc()
		return c.Redirect(http.StatusFound, "/")
	case errors.Is(err, domain.ErrMissingCredentials):
		return c.Render(http.StatusOK, "signup.html", echo.Map{
			"errorMessage": "Enter both email and password to sign up.",
		})
	case errors.Is(err, domain.ErrEmailTaken):
		return c.Render(http.StatusOK, "signup.html", echo.Map{
			"errorMessage": fmt.Sprintf("The email %s is already in use.", form.Email),
		})
	default:
		return err
	}
}

// LogInForm handles GET /login.
func (h *AuthHandler) LogInForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{"errorMessage": ""})
}

// LogIn handles POST /login.
func (h *AuthHandler) LogIn(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusOK, "login.html", echo.Map{
			"errorMessage": "Enter both email and password to log in.",
		})
	}

	sess, err := h.authService.LogIn(c.Request().Context(), form.Email, form.Password)
	switch {
	case err == nil:
		if err := h.cookie.Issue(c, sess.ID); err != nil {
			return err
		}
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		metrics.SessionsActive.Inc()
		return c.Redirect(http.StatusFound, "/")
	case errors.Is(err, domain.ErrMissingCredentials):
		return c.Render(http.StatusOK, "login.html", echo.Map{
			"errorMessage": "Enter both email and password to log in.",
		})
	case errors.Is(err, domain.ErrUserNotFound):
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.Render(http.StatusOK, "login.html", echo.Map{
			"errorMessage": fmt.Sprintf("There isn't an account with email %s.", form.Email),
		})
	case errors.Is(err, domain.ErrInvalidPassword):
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.Render(http.StatusOK, "login.html", echo.Map{
			"errorMessage": "Invalid password.",
		})
	default:
		return err
	}
}

// LogOut handles GET /logout. Anonymous requests are redirected home
// untouched; a session-destroy failure is fatal for the request.
func (h *AuthHandler) LogOut(c echo.Context) error {
	sid, ok := h.cookie.SessionID(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/")
	}

	destroyed, err := h.authService.LogOut(c.Request().Context(), sid)
	if err != nil {
		return err
	}

	h.cookie.Clear(c)
	// Repeated or stale logouts must not drive the gauge negative.
	if destroyed {
		metrics.SessionsActive.Dec()
	}
	return c.Redirect(http.StatusFound, "/")
}
