package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contact-api/internal/domain"
	"contact-api/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
	}
}

type phoneRequest struct {
	Number      string `json:"number"`
	CityCode    string `json:"citycode"`
	CountryCode string `json:"countrycode"`
}

func phonesFromRequest(in []phoneRequest) []domain.Phone {
	phones := make([]domain.Phone, 0, len(in))
	for _, p := range in {
		phones = append(phones, domain.Phone{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}
	return phones
}

func phonesProjection(phones []domain.Phone) []gin.H {
	out := make([]gin.H, 0, len(phones))
	for _, p := range phones {
		out = append(out, gin.H{
			"number":      p.Number,
			"citycode":    p.CityCode,
			"countrycode": p.CountryCode,
		})
	}
	return out
}

// Register maneja POST /users/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Name     string         `json:"name" binding:"required"`
		Email    string         `json:"email" binding:"required"`
		Password string         `json:"password" binding:"required"`
		Phones   []phoneRequest `json:"phones"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phones:   phonesFromRequest(req.Phones),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail),
			errors.Is(err, service.ErrInvalidEmailFormat),
			errors.Is(err, service.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		default:
			h.logger.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"created":    user.Created,
		"last_login": user.LastLogin,
		"isactive":   user.IsActive,
		"phones":     phonesProjection(user.Phones),
	})
}

// Login maneja POST /users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"token":      user.Token,
		"last_login": user.LastLogin,
	})
}

// GetUserByID maneja GET /users/:id.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id := c.Param("id")

	user, err := h.userServ.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("get user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"created":    user.Created,
		"modified":   user.Modified,
		"last_login": user.LastLogin,
		"token":      user.Token,
		"isactive":   user.IsActive,
		"phones":     phonesProjection(user.Phones),
	})
}

// ListUsers maneja GET /users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userServ.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users"})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, user := range users {
		out = append(out, gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"created":    user.Created,
			"modified":   user.Modified,
			"last_login": user.LastLogin,
			"isactive":   user.IsActive,
			"phones":     phonesProjection(user.Phones),
		})
	}

	c.JSON(http.StatusOK, out)
}
