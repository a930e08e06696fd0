package handler

import (
	"net/http"

	"messagely/internal/services"
	"messagely/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	profiles, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httpdto.UsersResponse{Users: httpdto.ToProfileDTOs(profiles)})
}

// Get handles GET /users/:username
func (h *UserHandler) Get(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	u, err := h.service.Get(c.Request.Context(), actor, c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httpdto.UserResponse{User: httpdto.ToUserDTO(u)})
}

// MessagesTo handles GET /users/:username/to
func (h *UserHandler) MessagesTo(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	msgs, err := h.service.MessagesTo(c.Request.Context(), actor, c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httpdto.MessagesResponse[httpdto.InboxMessageDTO]{Messages: httpdto.ToInboxDTOs(msgs)})
}

// MessagesFrom handles GET /users/:username/from
func (h *UserHandler) MessagesFrom(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	msgs, err := h.service.MessagesFrom(c.Request.Context(), actor, c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httpdto.MessagesResponse[httpdto.OutboxMessageDTO]{Messages: httpdto.ToOutboxDTOs(msgs)})
}
