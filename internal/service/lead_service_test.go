package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot/leadpilot-backend/internal/models"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/types"
)

func newTestLeadService(leadRepo *mockLeadRepo, interactionRepo *mockInteractionRepo) LeadService {
	return NewLeadService(leadRepo, interactionRepo, nil, nil)
}

func TestLeadCreate_Defaults(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	svc := newTestLeadService(leadRepo, new(mockInteractionRepo))

	leadRepo.On("Create", mock.Anything, mock.MatchedBy(func(lead *repository.Lead) bool {
		return lead.Status == types.StatusNew &&
			lead.Priority == types.PriorityNormal &&
			lead.IsActive &&
			lead.Tags != nil
	})).Return(nil)

	lead, err := svc.Create(context.Background(), testUserID, &models.CreateLeadRequest{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", lead.Name)
	leadRepo.AssertExpectations(t)
}

func TestLeadCreate_InvalidStatus(t *testing.T) {
	svc := newTestLeadService(new(mockLeadRepo), new(mockInteractionRepo))

	_, err := svc.Create(context.Background(), testUserID, &models.CreateLeadRequest{
		Name:   "Acme",
		Status: "bogus",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLeadGetByID_OwnershipNotLeaked(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	svc := newTestLeadService(leadRepo, new(mockInteractionRepo))

	leadRepo.On("FindByID", mock.Anything, "lead-1").Return(&repository.Lead{
		ID:     "lead-1",
		UserID: "someone-else",
	}, nil)

	_, err := svc.GetByID(context.Background(), "lead-1", testUserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeadUpdateStatus_RecordsInteraction(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	interactionRepo := new(mockInteractionRepo)
	svc := newTestLeadService(leadRepo, interactionRepo)

	leadRepo.On("FindByID", mock.Anything, "lead-1").Return(&repository.Lead{
		ID:     "lead-1",
		UserID: testUserID,
		Status: types.StatusNew,
	}, nil)
	leadRepo.On("UpdateStatus", mock.Anything, "lead-1", types.StatusQualified).Return(nil)
	interactionRepo.On("Create", mock.Anything, mock.MatchedBy(func(i *repository.Interaction) bool {
		return i.Type == types.InteractionStatusChange &&
			i.Description == "Status changed from new to qualified"
	})).Return(nil)

	lead, err := svc.UpdateStatus(context.Background(), "lead-1", testUserID, types.StatusQualified)
	require.NoError(t, err)
	assert.Equal(t, types.StatusQualified, lead.Status)
	interactionRepo.AssertExpectations(t)
}

func TestLeadUpdateStatus_NoopWhenUnchanged(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	interactionRepo := new(mockInteractionRepo)
	svc := newTestLeadService(leadRepo, interactionRepo)

	leadRepo.On("FindByID", mock.Anything, "lead-1").Return(&repository.Lead{
		ID:     "lead-1",
		UserID: testUserID,
		Status: types.StatusNew,
	}, nil)

	_, err := svc.UpdateStatus(context.Background(), "lead-1", testUserID, types.StatusNew)
	require.NoError(t, err)
	leadRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	interactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBuildStatsResponse(t *testing.T) {
	resp := buildStatsResponse(&repository.LeadStats{
		Total:         8,
		Active:        5,
		Won:           2,
		Lost:          1,
		NewToday:      3,
		PipelineValue: decimal.NewFromInt(45000),
	})

	assert.Equal(t, 8, resp.Total)
	assert.Equal(t, "25.00", resp.ConversionRate)
	assert.Equal(t, 45000.0, resp.PipelineValue)
}

func TestBuildStatsResponse_EmptyPipeline(t *testing.T) {
	resp := buildStatsResponse(&repository.LeadStats{})
	assert.Equal(t, "0.00", resp.ConversionRate)
	assert.Equal(t, 0.0, resp.PipelineValue)
}
