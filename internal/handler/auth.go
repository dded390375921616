package handler

import (
	"errors"
	"net/http"

	"projecthub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	log         *logrus.Logger
}

func NewAuthHandler(authService service.AuthService, log *logrus.Logger) AuthHandler {
	return &authHandler{authService: authService, log: log}
}

type RegisterRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  *string `json:"lastName"`
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required"`
	Role      string  `json:"role"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/users/register
func (h *authHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for registration: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	id, err := h.authService.Register(&service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "User Already Exists!", "id": nil})
			return
		}
		if errors.Is(err, service.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role"})
			return
		}
		h.log.Errorf("Failed to register user: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error during user registration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User Registered Successfully", "id": id})
}

// Login handles POST /api/v1/users/login. A wrong password is a structured
// failure, not an HTTP error; an unknown identifier is a 404.
func (h *authHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for login: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	token, err := h.authService.Login(req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "This account is not registered with us!", "token": nil})
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Username or password is incorrect!", "token": nil})
			return
		}
		h.log.Errorf("Failed to login user: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error during user authentication"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", token, 3600, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User logged in successfully!", "token": token})
}
