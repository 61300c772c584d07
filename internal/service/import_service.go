package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/leadpilot/leadpilot-backend/internal/config"
	"github.com/leadpilot/leadpilot-backend/internal/db"
	"github.com/leadpilot/leadpilot-backend/internal/email"
	"github.com/leadpilot/leadpilot-backend/internal/models"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/socket"
	"github.com/leadpilot/leadpilot-backend/internal/spreadsheet"
	"github.com/leadpilot/leadpilot-backend/internal/types"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ImportService interface {
	Import(ctx context.Context, data []byte, filename, userID string) (*models.ImportResult, error)
	Template() ([]byte, error)
}

type importService struct {
	cfg         *config.Config
	leadRepo    repository.LeadRepository
	userRepo    repository.UserRepository
	cache       *db.RedisDB
	emailSvc    *email.Service
	broadcaster *socket.Broadcaster
}

func NewImportService(
	cfg *config.Config,
	leadRepo repository.LeadRepository,
	userRepo repository.UserRepository,
	cache *db.RedisDB,
	emailSvc *email.Service,
	broadcaster *socket.Broadcaster,
) ImportService {
	return &importService{
		cfg:         cfg,
		leadRepo:    leadRepo,
		userRepo:    userRepo,
		cache:       cache,
		emailSvc:    emailSvc,
		broadcaster: broadcaster,
	}
}

// Import parses the uploaded spreadsheet, validates every row, skips
// duplicates and invalid rows, and writes the surviving leads in a
// single atomic batch. Row-level problems never abort the import; they
// are reported per row in the result.
func (s *importService) Import(ctx context.Context, data []byte, filename, userID string) (*models.ImportResult, error) {
	rows, err := spreadsheet.Parse(data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	result := &models.ImportResult{
		Total:  len(rows),
		Errors: []models.ImportError{},
	}
	var leads []*repository.Lead

	for i, row := range rows {
		// Rows are numbered as in the spreadsheet: row 1 is the
		// header, so the first data row is row 2.
		rowNum := i + 2

		lead, msg := s.buildLead(userID, row)
		if msg != "" {
			result.Errors = append(result.Errors, models.ImportError{
				Row:         rowNum,
				Description: msg,
			})
			continue
		}

		if lead.Email != nil {
			exists, err := s.leadRepo.ExistsByEmail(ctx, userID, *lead.Email)
			if err != nil {
				return nil, fmt.Errorf("failed to check for duplicates: %w", err)
			}
			if exists {
				result.Skipped++
				result.Errors = append(result.Errors, models.ImportError{
					Row:         rowNum,
					Description: "Duplicate lead detected",
				})
				continue
			}
		}

		leads = append(leads, lead)
	}

	if len(leads) > 0 {
		inserted, err := s.leadRepo.BulkInsert(ctx, leads)
		if err != nil {
			return nil, fmt.Errorf("failed to import leads: %w", err)
		}
		result.Imported = inserted
	}

	if s.cache != nil {
		if err := s.cache.DeleteCache(ctx, statsCacheKey(userID)); err != nil {
			log.Printf("[Import] Failed to invalidate stats cache for user %s: %v", userID, err)
		}
	}

	failed := result.Total - result.Imported - result.Skipped
	if s.broadcaster != nil {
		s.broadcaster.SendImportCompleted(userID, result.Total, result.Imported, result.Skipped, failed)
	}
	s.notifyByEmail(ctx, userID, filename, result)

	return result, nil
}

// Template returns the workbook users download to fill out before
// importing.
func (s *importService) Template() ([]byte, error) {
	return spreadsheet.Template()
}

// buildLead maps one spreadsheet row onto a lead. The returned message
// is empty for valid rows; otherwise it names the first problem found.
func (s *importService) buildLead(userID string, row spreadsheet.Row) (*repository.Lead, string) {
	name := strings.TrimSpace(row["name"])
	if name == "" {
		return nil, "Name is required"
	}

	lead := &repository.Lead{
		UserID:   userID,
		Name:     name,
		IsActive: true,
		Priority: types.PriorityNormal,
		Tags:     []string{},
	}

	if v := strings.TrimSpace(row["email"]); v != "" {
		if !emailPattern.MatchString(v) {
			return nil, "Invalid email format"
		}
		lead.Email = &v
	}
	if v := strings.TrimSpace(row["phone"]); v != "" {
		lead.Phone = &v
	}
	if v := strings.TrimSpace(row["company"]); v != "" {
		lead.Company = &v
	}

	lead.Status = types.StatusNew
	if v := strings.TrimSpace(row["status"]); v != "" {
		v = strings.ToLower(v)
		if !types.IsValidLeadStatus(v) {
			return nil, "Invalid status value"
		}
		lead.Status = v
	}

	if v := strings.TrimSpace(row["source"]); v != "" {
		src := strings.ToLower(v)
		lead.Source = &src
	}

	if v := strings.TrimSpace(row["deal_value"]); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, "Invalid deal value"
		}
		lead.DealValue = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	if v := strings.TrimSpace(row["notes"]); v != "" {
		lead.Notes = &v
	}

	return lead, ""
}

func (s *importService) notifyByEmail(ctx context.Context, userID, filename string, result *models.ImportResult) {
	if s.emailSvc == nil {
		return
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		log.Printf("[Import] Failed to look up user %s for summary email: %v", userID, err)
		return
	}

	failed := result.Total - result.Imported - result.Skipped
	go func() {
		if err := s.emailSvc.SendImportSummary(user.Email, email.ImportSummaryData{
			Name:         user.Name,
			Filename:     filename,
			Total:        result.Total,
			Imported:     result.Imported,
			Skipped:      result.Skipped,
			Failed:       failed,
			DashboardURL: s.cfg.FrontendURL,
		}); err != nil {
			log.Printf("[Import] Failed to send summary email to %s: %v", user.Email, err)
		}
	}()
}
