package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complaint-service/internal/auth"
	"complaint-service/internal/model"
	"complaint-service/internal/service"
)

type ComplaintHandler struct {
	complaintService *service.ComplaintService
}

func NewComplaintHandler(complaintService *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// Handles POST /complaints - opens a new complaint in submitted status.
func (h *ComplaintHandler) Create(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	var req model.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.complaintService.Create(claim, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Handles GET /complaints - lists complaints scoped by the caller's role.
func (h *ComplaintHandler) List(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	response, err := h.complaintService.List(claim)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Handles GET /complaints/:id
func (h *ComplaintHandler) Get(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	complaint, err := h.complaintService.Get(claim, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// Handles PUT /complaints/:id - citizen edits their own submission.
func (h *ComplaintHandler) Update(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	var req model.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	complaint, err := h.complaintService.UpdateContent(claim, id, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Complaint updated successfully",
		"complaint": complaint,
	})
}

// Handles PATCH /complaints/:id/status - runs a lifecycle transition.
// A failed notification dispatch surfaces as a warning, never a failure.
func (h *ComplaintHandler) Transition(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	var req model.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.complaintService.TransitionStatus(claim, id, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	body := gin.H{
		"message":   "Status updated successfully",
		"complaint": result.Complaint,
	}
	if result.Warning != nil {
		body["warning"] = result.Warning.Error()
	}
	c.JSON(http.StatusOK, body)
}

// Handles PATCH /complaints/:id/assign - routes the complaint to an agency.
func (h *ComplaintHandler) Assign(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	var req model.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.complaintService.Assign(claim, id, req.AgencyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	body := gin.H{
		"message":   "Complaint assigned successfully",
		"complaint": result.Complaint,
	}
	if result.Warning != nil {
		body["warning"] = result.Warning.Error()
	}
	c.JSON(http.StatusOK, body)
}

// Handles POST /complaints/:id/responses - official response.
func (h *ComplaintHandler) AddResponse(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	var req model.AddResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.complaintService.AddResponse(claim, id, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	body := gin.H{
		"message":  "Response added successfully",
		"response": result.Response,
	}
	if result.Warning != nil {
		body["warning"] = result.Warning.Error()
	}
	c.JSON(http.StatusCreated, body)
}

// Handles GET /complaints/:id/responses
func (h *ComplaintHandler) ListResponses(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	responses, err := h.complaintService.ListResponses(claim, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

// Handles GET /categories
func (h *ComplaintHandler) GetCategories(c *gin.Context) {
	categories, err := h.complaintService.GetCategories()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Handles POST /categories - admin creates a category.
func (h *ComplaintHandler) CreateCategory(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.complaintService.CreateCategory(claim, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}
