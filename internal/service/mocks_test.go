package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/leadpilot/leadpilot-backend/internal/repository"
)

type mockLeadRepo struct {
	mock.Mock
}

func (m *mockLeadRepo) Create(ctx context.Context, lead *repository.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *mockLeadRepo) FindByID(ctx context.Context, id string) (*repository.Lead, error) {
	args := m.Called(ctx, id)
	if lead := args.Get(0); lead != nil {
		return lead.(*repository.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeadRepo) FindByUserID(ctx context.Context, userID string, filters *repository.LeadFilters) ([]*repository.Lead, error) {
	args := m.Called(ctx, userID, filters)
	if leads := args.Get(0); leads != nil {
		return leads.([]*repository.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLeadRepo) ExistsByEmail(ctx context.Context, userID, email string) (bool, error) {
	args := m.Called(ctx, userID, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockLeadRepo) Update(ctx context.Context, lead *repository.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *mockLeadRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockLeadRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLeadRepo) BulkInsert(ctx context.Context, leads []*repository.Lead) (int, error) {
	args := m.Called(ctx, leads)
	return args.Int(0), args.Error(1)
}

func (m *mockLeadRepo) GetStats(ctx context.Context, userID string) (*repository.LeadStats, error) {
	args := m.Called(ctx, userID)
	if stats := args.Get(0); stats != nil {
		return stats.(*repository.LeadStats), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *repository.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*repository.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*repository.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*repository.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*repository.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *repository.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) SaveRefreshToken(ctx context.Context, token *repository.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockUserRepo) FindRefreshToken(ctx context.Context, token string) (*repository.RefreshToken, error) {
	args := m.Called(ctx, token)
	if rt := args.Get(0); rt != nil {
		return rt.(*repository.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) DeleteRefreshToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockUserRepo) DeleteUserRefreshTokens(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUserRepo) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockInteractionRepo struct {
	mock.Mock
}

func (m *mockInteractionRepo) Create(ctx context.Context, interaction *repository.Interaction) error {
	return m.Called(ctx, interaction).Error(0)
}

func (m *mockInteractionRepo) FindByID(ctx context.Context, id string) (*repository.Interaction, error) {
	args := m.Called(ctx, id)
	if interaction := args.Get(0); interaction != nil {
		return interaction.(*repository.Interaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInteractionRepo) FindByLeadID(ctx context.Context, leadID string) ([]*repository.Interaction, error) {
	args := m.Called(ctx, leadID)
	if interactions := args.Get(0); interactions != nil {
		return interactions.([]*repository.Interaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInteractionRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
