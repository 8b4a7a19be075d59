package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellargigs/stellargigs-be/internal/api/service"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	logger  *slog.Logger
	service *service.Service
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(deps *Dependencies) *NotificationHandler {
	return &NotificationHandler{
		logger:  deps.Logger,
		service: deps.Service,
	}
}

// UserNotifications handles GET /api/v1/users/:user_id/notifications
func (h *NotificationHandler) UserNotifications(c *gin.Context) {
	notifications, err := h.service.UserNotifications(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationsRead handles POST /api/v1/users/:user_id/notifications/read
func (h *NotificationHandler) MarkNotificationsRead(c *gin.Context) {
	updated, err := h.service.MarkNotificationsRead(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"updated": updated,
	})
}
