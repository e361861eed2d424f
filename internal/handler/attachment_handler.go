package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complaint-service/internal/auth"
	"complaint-service/internal/model"
	"complaint-service/internal/service"
)

type AttachmentHandler struct {
	attachmentService *service.AttachmentService
}

func NewAttachmentHandler(attachmentService *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Handles POST /attachments - links uploaded file metadata to a complaint or
// response. The file bytes themselves live in external storage.
func (h *AttachmentHandler) Attach(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	var req model.AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attachment, err := h.attachmentService.Attach(claim, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Attachment created successfully",
		"attachment": attachment,
	})
}

// Handles GET /attachments - lists attachments of one polymorphic parent,
// selected by related_type and related_id query params.
func (h *AttachmentHandler) ListByRelated(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	relatedType := model.RelatedType(c.Query("related_type"))
	relatedID, err := uuid.Parse(c.Query("related_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid related_id"})
		return
	}

	attachments, err := h.attachmentService.ListByRelated(claim, relatedType, relatedID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attachments": attachments})
}
