package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baatolabs/baatometrics-api/internal/domain/notification"
	"github.com/baatolabs/baatometrics-api/internal/response"
	"github.com/baatolabs/baatometrics-api/internal/store"
)

type NotificationHandler struct {
	notifications *store.NotificationStore
}

func NewNotificationHandler(notifications *store.NotificationStore) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// CreateNotificationRequest is the body of POST /api/notifications
type CreateNotificationRequest struct {
	Type       string `json:"type" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Message    string `json:"message" binding:"required"`
	ActionType string `json:"actionType"`
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	all := h.notifications.All()
	response.Success(c, http.StatusOK, "Notifications retrieved successfully", gin.H{
		"notifications": all,
		"unreadCount":   h.notifications.UnreadCount(),
	})
}

// CreateNotification handles POST /api/notifications
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields: type, title, message")
		return
	}

	action := notification.ActionType(req.ActionType)
	if action == "" {
		action = notification.ActionSystem
	}

	n, err := h.notifications.Add(notification.Kind(req.Type), req.Title, req.Message, action)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Notification created successfully", n)
}

// MarkNotificationRead handles PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllNotificationsRead handles PATCH /api/notifications/read-all
func (h *NotificationHandler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(); err != nil {
		writeStoreError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "All notifications marked as read", nil)
}

// DeleteNotification handles DELETE /api/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	if err := h.notifications.Remove(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Notification deleted successfully", nil)
}

// ClearNotifications handles DELETE /api/notifications
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	if err := h.notifications.Clear(); err != nil {
		writeStoreError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "All notifications cleared", nil)
}
