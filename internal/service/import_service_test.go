package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot/leadpilot-backend/internal/config"
	"github.com/leadpilot/leadpilot-backend/internal/models"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/spreadsheet"
	"github.com/leadpilot/leadpilot-backend/internal/types"
)

const testUserID = "user-1"

func newTestImportService(leadRepo *mockLeadRepo, userRepo *mockUserRepo) *importService {
	return &importService{
		cfg:      &config.Config{},
		leadRepo: leadRepo,
		userRepo: userRepo,
	}
}

func TestImport_ValidAndInvalidRows(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	userRepo := new(mockUserRepo)
	svc := newTestImportService(leadRepo, userRepo)

	csv := "name,email\nAlice,alice@x.com\nBob,not-an-email\n"

	leadRepo.On("ExistsByEmail", mock.Anything, testUserID, "alice@x.com").Return(false, nil)
	leadRepo.On("BulkInsert", mock.Anything, mock.MatchedBy(func(leads []*repository.Lead) bool {
		return len(leads) == 1 && leads[0].Name == "Alice"
	})).Return(1, nil)

	result, err := svc.Import(context.Background(), []byte(csv), "leads.csv", testUserID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "Invalid email format", result.Errors[0].Description)
	leadRepo.AssertExpectations(t)
}

func TestImport_MissingName(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	svc := newTestImportService(leadRepo, new(mockUserRepo))

	csv := "name,email\n,noname@x.com\n"

	result, err := svc.Import(context.Background(), []byte(csv), "leads.csv", testUserID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "Name is required", result.Errors[0].Description)
	leadRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything, mock.Anything)
	leadRepo.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything)
}

func TestImport_DuplicateDetected(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	svc := newTestImportService(leadRepo, new(mockUserRepo))

	csv := "name,email\nAlice,alice@x.com\n"
	leadRepo.On("ExistsByEmail", mock.Anything, testUserID, "alice@x.com").Return(true, nil)

	result, err := svc.Import(context.Background(), []byte(csv), "leads.csv", testUserID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Duplicate lead detected", result.Errors[0].Description)
	leadRepo.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything)
}

func TestImport_RowWithoutEmailSkipsDuplicateCheck(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	svc := newTestImportService(leadRepo, new(mockUserRepo))

	csv := "name,company\nCharlie,Initech\n"
	leadRepo.On("BulkInsert", mock.Anything, mock.MatchedBy(func(leads []*repository.Lead) bool {
		return len(leads) == 1 && leads[0].Email == nil
	})).Return(1, nil)

	result, err := svc.Import(context.Background(), []byte(csv), "leads.csv", testUserID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)
	leadRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything, mock.Anything)
	leadRepo.AssertExpectations(t)
}

func TestImport_EmptyFile(t *testing.T) {
	svc := newTestImportService(new(mockLeadRepo), new(mockUserRepo))

	_, err := svc.Import(context.Background(), []byte("name,email\n"), "leads.csv", testUserID)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestImport_UnsupportedFormat(t *testing.T) {
	svc := newTestImportService(new(mockLeadRepo), new(mockUserRepo))

	_, err := svc.Import(context.Background(), []byte("whatever"), "leads.txt", testUserID)
	assert.ErrorIs(t, err, spreadsheet.ErrUnsupportedFormat)
}

func TestImport_TotalsAccountForAllRows(t *testing.T) {
	leadRepo := new(mockLeadRepo)
	svc := newTestImportService(leadRepo, new(mockUserRepo))

	csv := "name,email\n" +
		"Alice,alice@x.com\n" + // imported
		"Bob,not-an-email\n" + // validation error
		"Carol,carol@x.com\n" + // duplicate
		",dave@x.com\n" // missing name

	leadRepo.On("ExistsByEmail", mock.Anything, testUserID, "alice@x.com").Return(false, nil)
	leadRepo.On("ExistsByEmail", mock.Anything, testUserID, "carol@x.com").Return(true, nil)
	leadRepo.On("BulkInsert", mock.Anything, mock.Anything).Return(1, nil)

	result, err := svc.Import(context.Background(), []byte(csv), "leads.csv", testUserID)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Errors, 3)

	validationErrors := 0
	for _, e := range result.Errors {
		if e.Description != "Duplicate lead detected" {
			validationErrors++
		}
	}
	assert.Equal(t, result.Total, result.Imported+result.Skipped+validationErrors)
}

func TestBuildLead_Defaults(t *testing.T) {
	svc := newTestImportService(new(mockLeadRepo), new(mockUserRepo))

	lead, msg := svc.buildLead(testUserID, spreadsheet.Row{"name": "Alice"})
	require.Empty(t, msg)
	assert.Equal(t, types.StatusNew, lead.Status)
	assert.Equal(t, types.PriorityNormal, lead.Priority)
	assert.True(t, lead.IsActive)
	assert.Equal(t, []string{}, lead.Tags)
	assert.False(t, lead.DealValue.Valid)
}

func TestBuildLead_StatusHandling(t *testing.T) {
	svc := newTestImportService(new(mockLeadRepo), new(mockUserRepo))

	lead, msg := svc.buildLead(testUserID, spreadsheet.Row{"name": "Alice", "status": "Qualified"})
	require.Empty(t, msg)
	assert.Equal(t, types.StatusQualified, lead.Status)

	_, msg = svc.buildLead(testUserID, spreadsheet.Row{"name": "Alice", "status": "frobnicated"})
	assert.Equal(t, "Invalid status value", msg)
}

func TestBuildLead_DealValue(t *testing.T) {
	svc := newTestImportService(new(mockLeadRepo), new(mockUserRepo))

	lead, msg := svc.buildLead(testUserID, spreadsheet.Row{"name": "Alice", "deal_value": "1250.50"})
	require.Empty(t, msg)
	require.True(t, lead.DealValue.Valid)
	assert.Equal(t, "1250.5", lead.DealValue.Decimal.String())

	_, msg = svc.buildLead(testUserID, spreadsheet.Row{"name": "Alice", "deal_value": "lots"})
	assert.Equal(t, "Invalid deal value", msg)
}

func TestBuildLead_FirstErrorWins(t *testing.T) {
	svc := newTestImportService(new(mockLeadRepo), new(mockUserRepo))

	// Name is checked before email, email before status.
	_, msg := svc.buildLead(testUserID, spreadsheet.Row{"email": "bad", "status": "bogus"})
	assert.Equal(t, "Name is required", msg)

	_, msg = svc.buildLead(testUserID, spreadsheet.Row{"name": "Alice", "email": "bad", "status": "bogus"})
	assert.Equal(t, "Invalid email format", msg)
}

func TestBuildLead_SourceLowercased(t *testing.T) {
	svc := newTestImportService(new(mockLeadRepo), new(mockUserRepo))

	lead, msg := svc.buildLead(testUserID, spreadsheet.Row{"name": "Alice", "source": "LinkedIn"})
	require.Empty(t, msg)
	require.NotNil(t, lead.Source)
	assert.Equal(t, "linkedin", *lead.Source)
}

func TestImport_ResultShape(t *testing.T) {
	// An import with no failures still carries an empty errors array,
	// never null.
	leadRepo := new(mockLeadRepo)
	svc := newTestImportService(leadRepo, new(mockUserRepo))

	leadRepo.On("BulkInsert", mock.Anything, mock.Anything).Return(1, nil)

	result, err := svc.Import(context.Background(), []byte("name\nAlice\n"), "leads.csv", testUserID)
	require.NoError(t, err)
	assert.Equal(t, []models.ImportError{}, result.Errors)
}
