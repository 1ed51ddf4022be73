package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baatolabs/baatometrics-api/internal/config"
	"github.com/baatolabs/baatometrics-api/internal/invite"
	"github.com/baatolabs/baatometrics-api/internal/storage/memory"
	"github.com/baatolabs/baatometrics-api/internal/store"
)

func newInviteRouter(t *testing.T, loggedIn bool) (*gin.Engine, *invite.ShortLinks) {
	t.Helper()

	backend := memory.New()
	session := store.NewSessionStore(backend)
	if loggedIn {
		_, err := session.Login("admin@baato.io", "pw")
		require.NoError(t, err)
	}

	cfg := &config.Config{}
	cfg.Invite.Domain = "https://app.baato.io"
	cfg.Invite.Organization = "BaatoMetrics"
	cfg.Invite.TokenSecret = "test-secret"

	shortLinks := invite.NewShortLinks(backend)
	h := NewInviteHandler(session, shortLinks, cfg)

	router := gin.New()
	router.POST("/api/invite", h.SendInvite)
	router.GET("/j/:code", h.ResolveShortLink)
	return router, shortLinks
}

func TestSendInvite(t *testing.T) {
	router, shortLinks := newInviteRouter(t, true)

	w := doJSON(router, http.MethodPost, "/api/invite", gin.H{
		"email":       "new@baato.io",
		"role":        "editor",
		"inviterName": "ram bahadur",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			InviteToken  string `json:"inviteToken"`
			InviteLink   string `json:"inviteLink"`
			EmailPreview struct {
				To      string `json:"to"`
				Subject string `json:"subject"`
			} `json:"emailPreview"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	assert.NotEmpty(t, envelope.Data.InviteToken)
	assert.Contains(t, envelope.Data.InviteLink, "https://app.baato.io/j/")
	assert.Equal(t, "new@baato.io", envelope.Data.EmailPreview.To)
	assert.Contains(t, envelope.Data.EmailPreview.Subject, "BaatoMetrics")

	// the short code behind the link resolves to the signed token
	code := envelope.Data.InviteLink[len("https://app.baato.io/j/"):]
	token, ok := shortLinks.Resolve(code)
	assert.True(t, ok)
	assert.Equal(t, envelope.Data.InviteToken, token)

	claims, err := invite.ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "new@baato.io", claims.Email)
}

func TestSendInviteRequiresPermission(t *testing.T) {
	router, _ := newInviteRouter(t, false)

	w := doJSON(router, http.MethodPost, "/api/invite", gin.H{
		"email":       "new@baato.io",
		"role":        "editor",
		"inviterName": "nobody",
	})
	assert.Equal(t, http.StatusForbidden, w.Code, "Inviting without a signed-in admin must be rejected")
}

func TestSendInviteValidation(t *testing.T) {
	router, _ := newInviteRouter(t, true)

	w := doJSON(router, http.MethodPost, "/api/invite", gin.H{
		"email": "new@baato.io", "role": "editor",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "Missing inviterName must be rejected")

	w = doJSON(router, http.MethodPost, "/api/invite", gin.H{
		"email": "not-an-email", "role": "editor", "inviterName": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/invite", gin.H{
		"email": "new@baato.io", "role": "owner", "inviterName": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveShortLink(t *testing.T) {
	router, shortLinks := newInviteRouter(t, true)

	code, err := shortLinks.Create("the-token")
	require.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/j/"+code, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/join?token=the-token", w.Header().Get("Location"))

	// unknown codes fall back to a ref parameter instead of a dead link
	w = doJSON(router, http.MethodGet, "/j/unknownc", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/join?ref=unknownc", w.Header().Get("Location"))
}
