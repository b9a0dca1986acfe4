package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	"github.com/anrodrig/comanda/internal/server/http/dto"
	"github.com/anrodrig/comanda/internal/server/http/middleware"
)

// AuthHandler processes registration, login and account blocking.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/user/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usr, token, err := h.facade.Register(c.Request.Context(), req.Email, req.Password, req.Name, req.Surname, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, toUserResponse(usr))
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usr, token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, toUserResponse(usr))
}

// Block handles PUT /api/admin/users/block.
func (h *AuthHandler) Block(c *gin.Context) {
	var req dto.BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.BlockUser(c.Request.Context(), CurrentUserID(c), req.UserID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotAdmin):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func toUserResponse(usr *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:      usr.ID,
		Email:   usr.Email,
		Name:    usr.Name,
		Surname: usr.Surname,
		Role:    string(usr.Role),
	}
}
