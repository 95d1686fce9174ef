package handlers

import (
	"errors"
	"net/http"

	"battery-lab-api/services"
	"battery-lab-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UsersHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewUsersHandler(users *services.UserService, log *zap.Logger) *UsersHandler {
	return &UsersHandler{users: users, log: log}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

func (h *UsersHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, "Invalid user data", err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, store.ErrUsernameTaken) {
		respondError(c, http.StatusConflict, "Username already taken")
		return
	}
	if err != nil {
		respondInternal(c, h.log, "Failed to create user", err)
		return
	}
	usersRegistered.Inc()

	c.JSON(http.StatusCreated, user)
}

func (h *UsersHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternal(c, h.log, "Failed to fetch user", err)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}
