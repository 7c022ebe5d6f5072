package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/apperr"
	"hostel-backend/internal/auth"
	"hostel-backend/internal/model"
)

type registerRequest struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=6"`
	Role     model.Role `json:"role" binding:"required,oneof=student warden"`
	Hostel   string     `json:"hostel"`
	Room     string     `json:"room"`
	Roll     string     `json:"roll"`
}

// Register creates a user account. The role cannot be changed later.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !bind(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := h.store.FindUserByEmail(c.Request.Context(), email)
	switch {
	case err == nil:
		apperr.Respond(c, apperr.Conflict("Email already registered"))
		return
	case !errors.Is(err, apperr.ErrNotFound):
		apperr.Respond(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    email,
		Password: hash,
		Role:     req.Role,
		Hostel:   req.Hostel,
		Room:     req.Room,
		Roll:     req.Roll,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

var errBadCredentials = &apperr.Error{Err: apperr.ErrInvalidCredentials, Message: "Invalid email or password"}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}

	user, err := h.store.FindUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			err = errBadCredentials
		}
		apperr.Respond(c, err)
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		apperr.Respond(c, errBadCredentials)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Profile returns the caller's own account.
func (h *Handler) Profile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	user, err := h.store.FindUserByID(c.Request.Context(), p.UserID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
