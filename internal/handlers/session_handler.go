package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baatolabs/baatometrics-api/internal/domain/team"
	"github.com/baatolabs/baatometrics-api/internal/response"
	"github.com/baatolabs/baatometrics-api/internal/store"
	"github.com/baatolabs/baatometrics-api/internal/validation"
)

type SessionHandler struct {
	session   *store.SessionStore
	validator validation.InviteValidation
}

func NewSessionHandler(session *store.SessionStore) *SessionHandler {
	return &SessionHandler{session: session}
}

// LoginRequest carries the sign-in credentials. Any non-empty pair is
// accepted; there is no real credential check.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/login
func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	user, err := h.session.Login(req.Email, req.Password)
	if err != nil {
		response.Unauthorized(c, err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Signed in", user)
}

// Logout handles POST /api/logout
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.session.Logout(); err != nil {
		response.Internal(c, err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Signed out", nil)
}

// Me handles GET /api/me
func (h *SessionHandler) Me(c *gin.Context) {
	user := h.session.CurrentUser()
	if user == nil {
		response.Unauthorized(c, "Not signed in")
		return
	}
	response.Success(c, http.StatusOK, "", user)
}

// UpdateProfile handles PATCH /api/me
func (h *SessionHandler) UpdateProfile(c *gin.Context) {
	var patch store.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.session.UpdateProfile(patch)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

// ListMembers handles GET /api/team
func (h *SessionHandler) ListMembers(c *gin.Context) {
	response.Success(c, http.StatusOK, "", gin.H{
		"members": h.session.Members(),
	})
}

// UpdateRoleRequest carries the new role for a roster entry
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateMemberRole handles PATCH /api/team/:id/role
func (h *SessionHandler) UpdateMemberRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "role is required")
		return
	}
	if err := h.validator.ValidateRole(req.Role); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	role, _ := team.RoleFromString(req.Role)
	if err := h.session.UpdateRole(c.Param("id"), role); err != nil {
		writeStoreError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Role updated", nil)
}

// RemoveMember handles DELETE /api/team/:id
func (h *SessionHandler) RemoveMember(c *gin.Context) {
	if err := h.session.RemoveMember(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Member removed", nil)
}
