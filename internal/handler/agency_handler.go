package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complaint-service/internal/auth"
	"complaint-service/internal/model"
	"complaint-service/internal/service"
)

type AgencyHandler struct {
	agencyService *service.AgencyService
}

func NewAgencyHandler(agencyService *service.AgencyService) *AgencyHandler {
	return &AgencyHandler{agencyService: agencyService}
}

// Handles POST /agencies - admin provisions an agency together with its
// administering official. Both rows are created or neither is.
func (h *AgencyHandler) Provision(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	var req model.ProvisionAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.agencyService.Provision(claim, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Agency and official account created successfully",
		"agency":   response.Agency,
		"official": response.Official,
	})
}

// Handles GET /agencies
func (h *AgencyHandler) List(c *gin.Context) {
	agencies, err := h.agencyService.List()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agencies": agencies})
}

// Handles GET /agencies/:id
func (h *AgencyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agency id"})
		return
	}

	agency, err := h.agencyService.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, agency)
}

// Handles GET /agencies/:id/complaints - the agency's assigned queue.
func (h *AgencyHandler) ListComplaints(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agency id"})
		return
	}

	complaints, err := h.agencyService.ListComplaints(claim, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "total": len(complaints)})
}
