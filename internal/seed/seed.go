package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/types"
)

const (
	demoEmail    = "demo@leadpilot.app"
	demoPassword = "demo1234"
)

type sampleLead struct {
	name      string
	email     string
	company   string
	status    string
	source    string
	dealValue float64
}

var sampleLeads = []sampleLead{
	{"Acme Corp", "purchasing@acme.example", "Acme Corp", types.StatusNew, "website", 12000},
	{"Globex Inc", "it@globex.example", "Globex Inc", types.StatusContacted, "referral", 45000},
	{"Initech", "ops@initech.example", "Initech", types.StatusQualified, "linkedin", 8000},
	{"Umbrella LLC", "sales@umbrella.example", "Umbrella LLC", types.StatusProposal, "website", 23000},
	{"Hooli", "bd@hooli.example", "Hooli", types.StatusWon, "conference", 67000},
}

// Run creates a demo user with a small pipeline if one does not exist
// yet. Intended for non-production environments only.
func Run(ctx context.Context, repos *repository.Repositories) error {
	existing, err := repos.UserRepo.FindByEmail(ctx, demoEmail)
	if err != nil {
		return fmt.Errorf("failed to check demo user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	user := &repository.User{
		Name:         "Demo User",
		Email:        demoEmail,
		Password:     string(hash),
	}
	if err := repos.UserRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	leads := make([]*repository.Lead, 0, len(sampleLeads))
	for _, s := range sampleLeads {
		email := s.email
		company := s.company
		source := s.source
		leads = append(leads, &repository.Lead{
			UserID:  user.ID,
			Name:    s.name,
			Email:   &email,
			Company: &company,
			Status:  s.status,
			Source:  &source,
			DealValue: decimal.NullDecimal{
				Decimal: decimal.NewFromFloat(s.dealValue),
				Valid:   true,
			},
			IsActive: true,
			Priority: types.PriorityNormal,
			Tags:     []string{"demo"},
		})
	}

	inserted, err := repos.LeadRepo.BulkInsert(ctx, leads)
	if err != nil {
		return fmt.Errorf("failed to seed demo leads: %w", err)
	}

	log.Printf("[Seed] Created demo user %s with %d leads", demoEmail, inserted)
	return nil
}
