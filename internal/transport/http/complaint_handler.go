package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/civicdesk/civicdesk-api/internal/domain"
	"github.com/civicdesk/civicdesk-api/internal/service"
	"github.com/civicdesk/civicdesk-api/internal/util"
)

type ComplaintHandler struct {
	complaints *service.ComplaintService
}

// ComplaintResponse is the dashboard representation of a complaint.
type ComplaintResponse struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   string    `json:"created_at"`
}

// DashboardUser is the admin-only user listing entry.
type DashboardUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func RegisterComplaints(e *echo.Echo, auth *service.AuthService, complaints *service.ComplaintService) {
	handler := &ComplaintHandler{complaints: complaints}
	authed := RequireAuth(auth)

	e.GET("/", servePage(submitComplaintPage), authed)
	e.POST("/", handler.submit, authed)
	e.GET("/dashboard", handler.dashboard, authed)
	e.POST("/status", handler.updateStatus, authed)
}

func (h *ComplaintHandler) submit(c echo.Context) error {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	category := strings.TrimSpace(c.FormValue("category"))
	description := strings.TrimSpace(c.FormValue("description"))
	if category == "" || description == "" {
		return redirectWithFlash(c, "/", "Category and description are required")
	}

	if _, err := h.complaints.Submit(c.Request().Context(), identity.UserID, category, description); err != nil {
		return err
	}
	return redirectWithFlash(c, "/dashboard", "Complaint submitted successfully")
}

func (h *ComplaintHandler) dashboard(c echo.Context) error {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	complaints, err := h.complaints.List(c.Request().Context(), identity.UserID, identity.IsAdmin())
	if err != nil {
		return err
	}

	items := make([]ComplaintResponse, 0, len(complaints))
	for _, complaint := range complaints {
		items = append(items, toComplaintResponse(complaint))
	}

	response := util.Envelope{
		"complaints": items,
		"is_admin":   identity.IsAdmin(),
	}

	if identity.IsAdmin() {
		users, err := h.complaints.ListUsers(c.Request().Context(), true)
		if err != nil {
			return err
		}
		listed := make([]DashboardUser, 0, len(users))
		for _, user := range users {
			listed = append(listed, DashboardUser{ID: user.ID, Email: user.Email, Role: user.Role})
		}
		response["users"] = listed
	}

	return c.JSON(http.StatusOK, response)
}

func (h *ComplaintHandler) updateStatus(c echo.Context) error {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	complaintID, err := uuid.Parse(strings.TrimSpace(c.FormValue("id")))
	if err != nil {
		// Unresolvable ids are dropped silently, same as unknown ones.
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	status := strings.TrimSpace(c.FormValue("status"))

	if err := h.complaints.SetStatus(c.Request().Context(), identity.IsAdmin(), complaintID, status); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return redirectWithFlash(c, "/dashboard", "Unauthorized access")
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func toComplaintResponse(complaint domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          complaint.ID,
		Category:    complaint.Category,
		Description: complaint.Description,
		Status:      complaint.Status,
		UserID:      complaint.UserID,
		CreatedAt:   complaint.CreatedAt.UTC().Format(time.RFC3339),
	}
}
