package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadpilot/leadpilot-backend/internal/api/middleware"
	"github.com/leadpilot/leadpilot-backend/internal/models"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/service"
)

type LeadHandler struct {
	leadService service.LeadService
}

func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create adds a single lead.
// POST /api/leads
func (h *LeadHandler) Create(c *gin.Context) {
	var req models.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.leadService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLeadResponse(lead))
}

// List returns the user's leads, optionally filtered.
// GET /api/leads?status=&source=&search=
func (h *LeadHandler) List(c *gin.Context) {
	filters := &repository.LeadFilters{
		Status: c.Query("status"),
		Source: c.Query("source"),
		Search: c.Query("search"),
	}

	leads, err := h.leadService.List(c.Request.Context(), middleware.GetUserID(c), filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLeadResponses(leads))
}

// Get returns one lead by ID.
// GET /api/leads/:id
func (h *LeadHandler) Get(c *gin.Context) {
	lead, err := h.leadService.GetByID(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLeadResponse(lead))
}

// Update modifies lead fields.
// PUT /api/leads/:id
func (h *LeadHandler) Update(c *gin.Context) {
	var req models.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.leadService.Update(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLeadResponse(lead))
}

// UpdateStatus moves a lead between pipeline stages (kanban drag).
// PATCH /api/leads/:id/status
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.leadService.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLeadResponse(lead))
}

// Delete removes a lead and its interactions.
// DELETE /api/leads/:id
func (h *LeadHandler) Delete(c *gin.Context) {
	if err := h.leadService.Delete(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted successfully"})
}

// Stats returns aggregate pipeline numbers for the dashboard.
// GET /api/leads/stats
func (h *LeadHandler) Stats(c *gin.Context) {
	stats, err := h.leadService.GetStats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
