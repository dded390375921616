package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"projecthub/internal/middleware"
	"projecthub/internal/models"
	"projecthub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Profile picture upload constraints.
const maxImageUploadSize = 2 << 20 // 2 MiB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

type UserHandler interface {
	WhoAmI(c *gin.Context)
	GetByID(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
}

type userHandler struct {
	userService service.UserService
	log         *logrus.Logger
}

func NewUserHandler(userService service.UserService, log *logrus.Logger) UserHandler {
	return &userHandler{userService: userService, log: log}
}

// WhoAmI handles GET /api/v1/users/whoami
func (h *userHandler) WhoAmI(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// GetByID handles GET /api/v1/users/:userId
func (h *userHandler) GetByID(c *gin.Context) {
	userID := c.Param("userId")
	if _, err := uuid.Parse(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		h.log.Errorf("Failed to get user %s: %v", userID, err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error during user retrieval"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// List handles GET /api/v1/users/?page&page_size
func (h *userHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	users, err := h.userService.List(page, pageSize)
	if err != nil {
		h.log.Errorf("Failed to list users: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error during user retrieval"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

// Update handles PUT /api/v1/users/:userId. The body is a multipart form:
// absent fields stay untouched, an optional image replaces the profile
// picture.
func (h *userHandler) Update(c *gin.Context) {
	userID := c.Param("userId")
	if _, err := uuid.Parse(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	upd := &models.UserUpdate{}
	if v, ok := c.GetPostForm("first_name"); ok {
		upd.FirstName = &v
	}
	if v, ok := c.GetPostForm("last_name"); ok {
		upd.LastName = &v
	}
	if v, ok := c.GetPostForm("username"); ok {
		upd.Username = &v
	}
	if v, ok := c.GetPostForm("email"); ok {
		upd.Email = &v
	}
	if v, ok := c.GetPostForm("role"); ok {
		upd.Role = &v
	}
	if v, ok := c.GetPostForm("is_verified"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid is_verified value"})
			return
		}
		upd.IsVerified = &parsed
	}
	if v, ok := c.GetPostForm("is_deleted"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid is_deleted value"})
			return
		}
		upd.IsDeleted = &parsed
	}

	file, err := c.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid file upload"})
			return
		}
		file = nil
	}
	if file != nil {
		if msg, ok := validateImage(file); !ok {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"success": false, "message": msg})
			return
		}
	}

	err = h.userService.UpdateWithImage(c.Request.Context(), userID, upd, file)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "User Already Exists with that information", "id": nil})
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found", "id": nil})
			return
		}
		if errors.Is(err, service.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role", "id": nil})
			return
		}
		h.log.Errorf("Failed to update user %s: %v", userID, err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to update user!", "id": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User Updated Successfully", "id": userID})
}

func validateImage(file *multipart.FileHeader) (string, bool) {
	if !allowedImageTypes[file.Header.Get("Content-Type")] {
		return "Invalid File Format, only supports .png, .jpg, or .jpeg", false
	}
	if file.Size > maxImageUploadSize {
		return "Max 2 MB file is allowed", false
	}
	return "", true
}
