package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"projecthub/internal/middleware"
	"projecthub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ProjectHandler interface {
	Create(c *gin.Context)
	AddMembers(c *gin.Context)
	List(c *gin.Context)
	ListMembers(c *gin.Context)
	AddDocuments(c *gin.Context)
}

type projectHandler struct {
	projectService service.ProjectService
	log            *logrus.Logger
}

func NewProjectHandler(projectService service.ProjectService, log *logrus.Logger) ProjectHandler {
	return &projectHandler{projectService: projectService, log: log}
}

type CreateProjectRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description" binding:"required"`
	City        string    `json:"city" binding:"required"`
	Country     string    `json:"country" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type AddMembersRequest struct {
	EmailIDs []string `json:"email_ids" binding:"required,min=1,dive,email"`
}

// Create handles POST /api/v1/projects/details
func (h *projectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for project creation: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	owner := middleware.CurrentUser(c)
	id, err := h.projectService.Create(owner.ID, &service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Country:     req.Country,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Something went wrong while creating project!", "id": nil})
			return
		}
		h.log.Errorf("Failed to create project: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error during project creation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project Created Successfully", "id": id})
}

// AddMembers handles POST /api/v1/projects/:projectId/members
func (h *projectHandler) AddMembers(c *gin.Context) {
	projectID := c.Param("projectId")
	if _, err := uuid.Parse(projectID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID"})
		return
	}

	var req AddMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for project members: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	owner := middleware.CurrentUser(c)
	id, err := h.projectService.AddMembers(projectID, owner.ID, req.EmailIDs)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found", "id": nil})
			return
		}
		h.log.Errorf("Failed to add members to project %s: %v", projectID, err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error while adding project members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Members Added Successfully", "id": id})
}

// List handles GET /api/v1/projects/?page&page_size. Only the caller's own
// projects are listed.
func (h *projectHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	owner := middleware.CurrentUser(c)
	projects, err := h.projectService.List(owner.ID, page, pageSize)
	if err != nil {
		h.log.Errorf("Failed to list projects: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error during project retrieval"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": projects})
}

// ListMembers handles GET /api/v1/projects/:projectId/members
func (h *projectHandler) ListMembers(c *gin.Context) {
	projectID := c.Param("projectId")
	if _, err := uuid.Parse(projectID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID"})
		return
	}

	owner := middleware.CurrentUser(c)
	members, err := h.projectService.ListMembers(projectID, owner.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
			return
		}
		h.log.Errorf("Failed to list members of project %s: %v", projectID, err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error during member retrieval"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": members})
}

// AddDocuments handles POST /api/v1/projects/:projectId/documents with a
// multipart files[] field.
func (h *projectHandler) AddDocuments(c *gin.Context) {
	projectID := c.Param("projectId")
	if _, err := uuid.Parse(projectID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid multipart form"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No files uploaded"})
		return
	}

	ids, err := h.projectService.AddDocuments(c.Request.Context(), projectID, files)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found", "id": nil})
			return
		}
		h.log.Errorf("Failed to upload documents to project %s: %v", projectID, err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error during document upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Documents Uploaded Successfully", "id": ids})
}
