package handler

import (
	"net/http"

	"messagely/internal/services"
	"messagely/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Get handles GET /messages/:id
func (h *MessageHandler) Get(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), username, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httpdto.MessageResponse[httpdto.MessageDetailDTO]{
		Message: httpdto.ToMessageDetailDTO(detail),
	})
}

// Create handles POST /messages. The sender is always the logged in user.
func (h *MessageHandler) Create(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}

	var req httpdto.CreateMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.service.Create(c.Request.Context(), services.CreateMessageInput{
		FromUsername: username,
		ToUsername:   req.ToUsername,
		Body:         req.Body,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.MessageResponse[httpdto.CreatedMessageDTO]{
		Message: httpdto.ToCreatedMessageDTO(msg),
	})
}

// MarkRead handles POST /messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}

	receipt, err := h.service.MarkRead(c.Request.Context(), username, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httpdto.MessageResponse[httpdto.ReadReceiptDTO]{
		Message: httpdto.ToReadReceiptDTO(receipt),
	})
}
