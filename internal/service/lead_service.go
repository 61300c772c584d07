package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/leadpilot/leadpilot-backend/internal/db"
	"github.com/leadpilot/leadpilot-backend/internal/models"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/socket"
	"github.com/leadpilot/leadpilot-backend/internal/types"
)

const statsCacheTTL = 60 * time.Second

type LeadService interface {
	Create(ctx context.Context, userID string, req *models.CreateLeadRequest) (*repository.Lead, error)
	GetByID(ctx context.Context, id, userID string) (*repository.Lead, error)
	List(ctx context.Context, userID string, filters *repository.LeadFilters) ([]*repository.Lead, error)
	Update(ctx context.Context, id, userID string, req *models.UpdateLeadRequest) (*repository.Lead, error)
	UpdateStatus(ctx context.Context, id, userID, status string) (*repository.Lead, error)
	Delete(ctx context.Context, id, userID string) error
	GetStats(ctx context.Context, userID string) (*models.LeadStatsResponse, error)
}

type leadService struct {
	leadRepo        repository.LeadRepository
	interactionRepo repository.InteractionRepository
	cache           *db.RedisDB
	broadcaster     *socket.Broadcaster
}

func NewLeadService(
	leadRepo repository.LeadRepository,
	interactionRepo repository.InteractionRepository,
	cache *db.RedisDB,
	broadcaster *socket.Broadcaster,
) LeadService {
	return &leadService{
		leadRepo:        leadRepo,
		interactionRepo: interactionRepo,
		cache:           cache,
		broadcaster:     broadcaster,
	}
}

func (s *leadService) Create(ctx context.Context, userID string, req *models.CreateLeadRequest) (*repository.Lead, error) {
	status := req.Status
	if status == "" {
		status = types.StatusNew
	}
	if !types.IsValidLeadStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	priority := req.Priority
	if priority == "" {
		priority = types.PriorityNormal
	}
	if !types.IsValidPriority(priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, req.Priority)
	}

	lead := &repository.Lead{
		UserID:   userID,
		Name:     req.Name,
		Email:    optional(req.Email),
		Phone:    optional(req.Phone),
		Company:  optional(req.Company),
		Status:   status,
		Source:   optional(strings.ToLower(req.Source)),
		Notes:    optional(req.Notes),
		IsActive: true,
		Priority: priority,
		Tags:     req.Tags,
	}
	if lead.Tags == nil {
		lead.Tags = []string{}
	}
	if req.DealValue != nil {
		lead.DealValue = decimal.NullDecimal{
			Decimal: decimal.NewFromFloat(*req.DealValue),
			Valid:   true,
		}
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.invalidateStats(ctx, userID)
	if s.broadcaster != nil {
		s.broadcaster.SendLeadCreated(userID, leadPayload(lead))
	}
	return lead, nil
}

func (s *leadService) GetByID(ctx context.Context, id, userID string) (*repository.Lead, error) {
	return s.findOwnedLead(ctx, id, userID)
}

func (s *leadService) List(ctx context.Context, userID string, filters *repository.LeadFilters) ([]*repository.Lead, error) {
	leads, err := s.leadRepo.FindByUserID(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

func (s *leadService) Update(ctx context.Context, id, userID string, req *models.UpdateLeadRequest) (*repository.Lead, error) {
	lead, err := s.findOwnedLead(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && !types.IsValidLeadStatus(*req.Status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
	}
	if req.Priority != nil && !types.IsValidPriority(*req.Priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, *req.Priority)
	}

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Email != nil {
		lead.Email = optional(*req.Email)
	}
	if req.Phone != nil {
		lead.Phone = optional(*req.Phone)
	}
	if req.Company != nil {
		lead.Company = optional(*req.Company)
	}
	if req.Status != nil {
		lead.Status = *req.Status
	}
	if req.Source != nil {
		lead.Source = optional(strings.ToLower(*req.Source))
	}
	if req.DealValue != nil {
		lead.DealValue = decimal.NullDecimal{
			Decimal: decimal.NewFromFloat(*req.DealValue),
			Valid:   true,
		}
	}
	if req.Notes != nil {
		lead.Notes = optional(*req.Notes)
	}
	if req.IsActive != nil {
		lead.IsActive = *req.IsActive
	}
	if req.Priority != nil {
		lead.Priority = *req.Priority
	}
	if req.Tags != nil {
		lead.Tags = req.Tags
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	s.invalidateStats(ctx, userID)
	if s.broadcaster != nil {
		s.broadcaster.SendLeadUpdated(userID, leadPayload(lead))
	}
	return lead, nil
}

// UpdateStatus moves a lead between pipeline stages and records the
// transition on the interaction timeline.
func (s *leadService) UpdateStatus(ctx context.Context, id, userID, status string) (*repository.Lead, error) {
	if !types.IsValidLeadStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, status)
	}

	lead, err := s.findOwnedLead(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	oldStatus := lead.Status
	if oldStatus == status {
		return lead, nil
	}

	if err := s.leadRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	lead.Status = status

	interaction := &repository.Interaction{
		LeadID:      lead.ID,
		UserID:      userID,
		Type:        types.InteractionStatusChange,
		Description: fmt.Sprintf("Status changed from %s to %s", oldStatus, status),
	}
	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		log.Printf("[Leads] Failed to record status change for lead %s: %v", lead.ID, err)
	}

	s.invalidateStats(ctx, userID)
	if s.broadcaster != nil {
		s.broadcaster.SendLeadStatusChanged(userID, leadPayload(lead), oldStatus, status)
	}
	return lead, nil
}

func (s *leadService) Delete(ctx context.Context, id, userID string) error {
	lead, err := s.findOwnedLead(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.leadRepo.Delete(ctx, lead.ID); err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}

	s.invalidateStats(ctx, userID)
	if s.broadcaster != nil {
		s.broadcaster.SendLeadDeleted(userID, lead.ID)
	}
	return nil
}

func (s *leadService) GetStats(ctx context.Context, userID string) (*models.LeadStatsResponse, error) {
	cacheKey := statsCacheKey(userID)
	if s.cache != nil {
		var cached models.LeadStatsResponse
		if err := s.cache.GetCache(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.leadRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lead stats: %w", err)
	}

	resp := buildStatsResponse(stats)
	if s.cache != nil {
		if err := s.cache.SetCache(ctx, cacheKey, resp, statsCacheTTL); err != nil {
			log.Printf("[Leads] Failed to cache stats for user %s: %v", userID, err)
		}
	}
	return resp, nil
}

func buildStatsResponse(stats *repository.LeadStats) *models.LeadStatsResponse {
	conversionRate := "0.00"
	if stats.Total > 0 {
		rate := float64(stats.Won) / float64(stats.Total) * 100
		conversionRate = fmt.Sprintf("%.2f", rate)
	}
	return &models.LeadStatsResponse{
		Total:          stats.Total,
		Active:         stats.Active,
		Won:            stats.Won,
		Lost:           stats.Lost,
		NewToday:       stats.NewToday,
		ConversionRate: conversionRate,
		PipelineValue:  stats.PipelineValue.InexactFloat64(),
	}
}

// findOwnedLead returns ErrNotFound for both missing leads and leads
// owned by a different user, so ownership is never leaked.
func (s *leadService) findOwnedLead(ctx context.Context, id, userID string) (*repository.Lead, error) {
	lead, err := s.leadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find lead: %w", err)
	}
	if lead == nil || lead.UserID != userID {
		return nil, ErrNotFound
	}
	return lead, nil
}

func (s *leadService) invalidateStats(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteCache(ctx, statsCacheKey(userID)); err != nil {
		log.Printf("[Leads] Failed to invalidate stats cache for user %s: %v", userID, err)
	}
}

func statsCacheKey(userID string) string {
	return "lead-stats:" + userID
}

func leadPayload(lead *repository.Lead) map[string]interface{} {
	payload := map[string]interface{}{
		"id":         lead.ID,
		"user_id":    lead.UserID,
		"name":       lead.Name,
		"status":     lead.Status,
		"is_active":  lead.IsActive,
		"priority":   lead.Priority,
		"tags":       lead.Tags,
		"created_at": lead.CreatedAt,
		"updated_at": lead.UpdatedAt,
	}
	if lead.Email != nil {
		payload["email"] = *lead.Email
	}
	if lead.Company != nil {
		payload["company"] = *lead.Company
	}
	if lead.DealValue.Valid {
		payload["deal_value"] = lead.DealValue.Decimal.InexactFloat64()
	}
	return payload
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
