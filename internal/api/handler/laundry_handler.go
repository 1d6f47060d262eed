package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/laundryhub/laundry-marketplace/internal/api/metrics"
	"github.com/laundryhub/laundry-marketplace/internal/api/middleware"
	"github.com/laundryhub/laundry-marketplace/internal/core/domain"
	"github.com/laundryhub/laundry-marketplace/internal/core/ports"
)

// pickupDateLayouts are accepted for the pickupDate form field. The first
// matches the datetime-local input on the profile page.
var pickupDateLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

// LaundryHandler serves the authenticated marketplace pages. Every route
// sits behind the RequireSession middleware, so CurrentSession is always
// non-nil here.
type LaundryHandler struct {
	laundryService ports.LaundryService
}

func NewLaundryHandler(laundryService ports.LaundryService) *LaundryHandler {
	return &LaundryHandler{laundryService: laundryService}
}

// Dashboard handles GET /dashboard: the role-filtered pickup list.
func (h *LaundryHandler) Dashboard(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	pickups, err := h.laundryService.Dashboard(c.Request().Context(), &sess.User)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "dashboard.html", echo.Map{
		"currentUser": sess.User,
		"pickups":     pickups,
	})
}

// Promote handles POST /launderers: flips the current user to launderer.
func (h *LaundryHandler) Promote(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	var form promoteForm
	if err := c.Bind(&form); err != nil {
		return h.renderDashboardError(c, sess, "Enter a valid fee to become a launderer.")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderDashboardError(c, sess, "Enter a valid fee to become a launderer.")
	}

	if _, err := h.laundryService.Promote(c.Request().Context(), sess, form.Fee); err != nil {
		if errors.Is(err, domain.ErrInvalidFee) {
			return h.renderDashboardError(c, sess, "Enter a valid fee to become a launderer.")
		}
		return err
	}

	metrics.PromotionsTotal.Inc()
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Launderers handles GET /launderers: the directory, excluding self.
func (h *LaundryHandler) Launderers(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	launderers, err := h.laundryService.ListLaunderers(c.Request().Context(), sess.User.ID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "launderers.html", echo.Map{
		"currentUser": sess.User,
		"launderers":  launderers,
	})
}

// Profile handles GET /launderers/:id. A missing id is a 404 via the
// central error handler.
func (h *LaundryHandler) Profile(c echo.Context) error {
	launderer, err := h.laundryService.GetLaunderer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "launderer-profile.html", echo.Map{
		"theLaunderer": launderer,
	})
}

// CreatePickup handles POST /laundry-pickups.
func (h *LaundryHandler) CreatePickup(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	var form pickupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pickup form")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderProfileError(c, form.LaundererID, "Pick a date and a launderer to schedule a pickup.")
	}

	pickupDate, ok := parsePickupDate(form.PickupDate)
	if !ok {
		return h.renderProfileError(c, form.LaundererID, "Enter a valid pickup date.")
	}

	_, err := h.laundryService.RequestPickup(c.Request().Context(), sess.User.ID, form.LaundererID, pickupDate)
	if err != nil {
		return err
	}

	metrics.PickupsCreatedTotal.Inc()
	return c.Redirect(http.StatusFound, "/dashboard")
}

func parsePickupDate(raw string) (time.Time, bool) {
	for _, layout := range pickupDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (h *LaundryHandler) renderDashboardError(c echo.Context, sess *domain.Session, msg string) error {
	pickups, err := h.laundryService.Dashboard(c.Request().Context(), &sess.User)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "dashboard.html", echo.Map{
		"currentUser":  sess.User,
		"pickups":      pickups,
		"errorMessage": msg,
	})
}

func (h *LaundryHandler) renderProfileError(c echo.Context, laundererID, msg string) error {
	launderer, err := h.laundryService.GetLaunderer(c.Request().Context(), laundererID)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "launderer-profile.html", echo.Map{
		"theLaunderer": launderer,
		"errorMessage": msg,
	})
}
