package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complaint-service/internal/auth"
	"complaint-service/internal/model"
	"complaint-service/internal/service"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Handles POST /complaints/:id/feedback - the submitter rates a resolved
// complaint, once.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	var req model.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.feedbackService.Submit(claim, complaintID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Feedback submitted successfully",
		"feedback": feedback,
	})
}

// Handles GET /complaints/:id/feedback
func (h *FeedbackHandler) ListByComplaint(c *gin.Context) {
	claim := auth.ClaimFrom(c)

	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	feedbacks, err := h.feedbackService.ListByComplaint(claim, complaintID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": feedbacks})
}
