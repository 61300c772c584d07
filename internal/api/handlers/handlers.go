package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadpilot/leadpilot-backend/internal/config"
	"github.com/leadpilot/leadpilot-backend/internal/models"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/service"
)

// ============================================
// Handlers Container
// ============================================

type Handlers struct {
	Auth        *AuthHandler
	User        *UserHandler
	Lead        *LeadHandler
	Interaction *InteractionHandler
	Import      *ImportHandler
}

func NewHandlers(cfg *config.Config, services *service.Services) *Handlers {
	return &Handlers{
		Auth:        NewAuthHandler(services.Auth),
		User:        NewUserHandler(services.User),
		Lead:        NewLeadHandler(services.Lead),
		Interaction: NewInteractionHandler(services.Interaction),
		Import:      NewImportHandler(cfg, services.Import),
	}
}

// handleServiceError maps service sentinel errors onto HTTP responses.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(user *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

func toLeadResponse(lead *repository.Lead) models.LeadResponse {
	resp := models.LeadResponse{
		ID:        lead.ID,
		UserID:    lead.UserID,
		Name:      lead.Name,
		Email:     deref(lead.Email),
		Phone:     deref(lead.Phone),
		Company:   deref(lead.Company),
		Status:    lead.Status,
		Source:    deref(lead.Source),
		Notes:     deref(lead.Notes),
		IsActive:  lead.IsActive,
		Priority:  lead.Priority,
		Tags:      lead.Tags,
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if lead.DealValue.Valid {
		v := lead.DealValue.Decimal.InexactFloat64()
		resp.DealValue = &v
	}
	return resp
}

func toLeadResponses(leads []*repository.Lead) []models.LeadResponse {
	responses := make([]models.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		responses = append(responses, toLeadResponse(lead))
	}
	return responses
}

func toInteractionResponse(interaction *repository.Interaction) models.InteractionResponse {
	return models.InteractionResponse{
		ID:          interaction.ID,
		LeadID:      interaction.LeadID,
		UserID:      interaction.UserID,
		Type:        interaction.Type,
		Description: interaction.Description,
		CreatedAt:   interaction.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
