package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadpilot/leadpilot-backend/internal/api/middleware"
	"github.com/leadpilot/leadpilot-backend/internal/models"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/service"
)

type InteractionHandler struct {
	interactionService service.InteractionService
}

func NewInteractionHandler(interactionService service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// Create records an interaction on a lead's timeline.
// POST /api/leads/:id/interactions
func (h *InteractionHandler) Create(c *gin.Context) {
	var req models.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interaction, err := h.interactionService.Create(
		c.Request.Context(), c.Param("id"), middleware.GetUserID(c), &req,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toInteractionResponse(interaction))
}

// ListByLead returns a lead's interactions, newest first.
// GET /api/leads/:id/interactions
func (h *InteractionHandler) ListByLead(c *gin.Context) {
	interactions, err := h.interactionService.ListByLead(
		c.Request.Context(), c.Param("id"), middleware.GetUserID(c),
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInteractionResponses(interactions))
}

// Delete removes an interaction.
// DELETE /api/interactions/:id
func (h *InteractionHandler) Delete(c *gin.Context) {
	if err := h.interactionService.Delete(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interaction deleted successfully"})
}

func toInteractionResponses(interactions []*repository.Interaction) []models.InteractionResponse {
	responses := make([]models.InteractionResponse, 0, len(interactions))
	for _, interaction := range interactions {
		responses = append(responses, toInteractionResponse(interaction))
	}
	return responses
}
