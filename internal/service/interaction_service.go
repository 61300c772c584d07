package service

import (
	"context"
	"fmt"

	"github.com/leadpilot/leadpilot-backend/internal/models"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/socket"
	"github.com/leadpilot/leadpilot-backend/internal/types"
)

type InteractionService interface {
	Create(ctx context.Context, leadID, userID string, req *models.CreateInteractionRequest) (*repository.Interaction, error)
	ListByLead(ctx context.Context, leadID, userID string) ([]*repository.Interaction, error)
	Delete(ctx context.Context, id, userID string) error
}

type interactionService struct {
	interactionRepo repository.InteractionRepository
	leadRepo        repository.LeadRepository
	broadcaster     *socket.Broadcaster
}

func NewInteractionService(
	interactionRepo repository.InteractionRepository,
	leadRepo repository.LeadRepository,
	broadcaster *socket.Broadcaster,
) InteractionService {
	return &interactionService{
		interactionRepo: interactionRepo,
		leadRepo:        leadRepo,
		broadcaster:     broadcaster,
	}
}

func (s *interactionService) Create(ctx context.Context, leadID, userID string, req *models.CreateInteractionRequest) (*repository.Interaction, error) {
	if !types.IsValidInteractionType(req.Type) {
		return nil, fmt.Errorf("%w: invalid interaction type %q", ErrInvalidInput, req.Type)
	}

	if _, err := s.ownedLead(ctx, leadID, userID); err != nil {
		return nil, err
	}

	interaction := &repository.Interaction{
		LeadID:      leadID,
		UserID:      userID,
		Type:        req.Type,
		Description: req.Description,
	}
	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to create interaction: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.SendInteractionAdded(userID, map[string]interface{}{
			"id":          interaction.ID,
			"lead_id":     interaction.LeadID,
			"type":        interaction.Type,
			"description": interaction.Description,
			"created_at":  interaction.CreatedAt,
		})
	}
	return interaction, nil
}

func (s *interactionService) ListByLead(ctx context.Context, leadID, userID string) ([]*repository.Interaction, error) {
	if _, err := s.ownedLead(ctx, leadID, userID); err != nil {
		return nil, err
	}

	interactions, err := s.interactionRepo.FindByLeadID(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return interactions, nil
}

func (s *interactionService) Delete(ctx context.Context, id, userID string) error {
	interaction, err := s.interactionRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find interaction: %w", err)
	}
	if interaction == nil || interaction.UserID != userID {
		return ErrNotFound
	}

	if err := s.interactionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	return nil
}

func (s *interactionService) ownedLead(ctx context.Context, leadID, userID string) (*repository.Lead, error) {
	lead, err := s.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to find lead: %w", err)
	}
	if lead == nil || lead.UserID != userID {
		return nil, ErrNotFound
	}
	return lead, nil
}
