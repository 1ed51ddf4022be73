package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baatolabs/baatometrics-api/internal/config"
	"github.com/baatolabs/baatometrics-api/internal/domain/team"
	"github.com/baatolabs/baatometrics-api/internal/invite"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/response"
	"github.com/baatolabs/baatometrics-api/internal/store"
	"github.com/baatolabs/baatometrics-api/internal/validation"
)

type InviteHandler struct {
	session    *store.SessionStore
	shortLinks *invite.ShortLinks
	cfg        *config.Config
	validator  validation.InviteValidation
}

func NewInviteHandler(session *store.SessionStore, shortLinks *invite.ShortLinks, cfg *config.Config) *InviteHandler {
	return &InviteHandler{
		session:    session,
		shortLinks: shortLinks,
		cfg:        cfg,
	}
}

// InviteRequest is the body of POST /api/invite
type InviteRequest struct {
	Email            string `json:"email" binding:"required"`
	Role             string `json:"role" binding:"required"`
	InviterName      string `json:"inviterName" binding:"required"`
	OrganizationName string `json:"organizationName"`
}

// SendInvite handles POST /api/invite: signs an invitation token, adds a
// pending roster entry, renders the invitation email and returns a short
// link. The email content is returned to the caller; delivery is left to
// a mail provider.
func (h *InviteHandler) SendInvite(c *gin.Context) {
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields: email, role, inviterName")
		return
	}

	if err := h.validator.ValidateInviteEmail(req.Email); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.validator.ValidateRole(req.Role); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	organization := req.OrganizationName
	if organization == "" {
		organization = h.cfg.Invite.Organization
	}

	role, _ := team.RoleFromString(req.Role)
	member, err := h.session.Invite(req.Email, role)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	token, err := invite.NewToken(h.cfg.Invite.TokenSecret, req.Email, role, req.InviterName)
	if err != nil {
		response.Internal(c, "Failed to generate invitation token")
		return
	}

	code, err := h.shortLinks.Create(token)
	if err != nil {
		response.Internal(c, "Failed to create short link")
		return
	}

	baseURL := h.cfg.Invite.Domain
	inviteLink := baseURL + "/j/" + code

	email, err := invite.RenderEmail(req.Email, role, req.InviterName, organization, inviteLink)
	if err != nil {
		response.Internal(c, "Failed to render invitation email")
		return
	}

	log := logger.Invite()
	log.Info("invitation generated", "to", req.Email, "role", role, "link", inviteLink)

	response.Success(c, http.StatusOK, "Invitation email sent successfully", gin.H{
		"member":      member,
		"inviteToken": token,
		"inviteLink":  inviteLink,
		"emailPreview": gin.H{
			"to":      email.To,
			"subject": email.Subject,
			"content": email.Text,
		},
	})
}

// ResolveShortLink handles GET /j/:code. A known code redirects to the
// join page with the full token; an unknown code falls back to a ref
// parameter so the frontend can report it.
func (h *InviteHandler) ResolveShortLink(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "Short code required")
		return
	}

	if token, ok := h.shortLinks.Resolve(code); ok {
		c.Redirect(http.StatusFound, "/join?token="+token)
		return
	}

	logger.Invite().Warn("unknown short link accessed", "code", code)
	c.Redirect(http.StatusFound, "/join?ref="+code)
}
