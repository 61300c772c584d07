package service

import (
	"errors"

	"github.com/leadpilot/leadpilot-backend/internal/config"
	"github.com/leadpilot/leadpilot-backend/internal/db"
	"github.com/leadpilot/leadpilot-backend/internal/email"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/socket"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyFile          = errors.New("file is empty or invalid")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth        AuthService
	User        UserService
	Lead        LeadService
	Interaction InteractionService
	Import      ImportService
	Broadcaster *socket.Broadcaster
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	Cache       *db.RedisDB
	EmailSvc    *email.Service
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	leadService := NewLeadService(
		deps.Repos.LeadRepo,
		deps.Repos.InteractionRepo,
		deps.Cache,
		deps.Broadcaster,
	)

	return &Services{
		Auth: NewAuthService(deps.Config, deps.Repos.UserRepo, deps.EmailSvc),
		User: NewUserService(deps.Repos.UserRepo),
		Lead: leadService,
		Interaction: NewInteractionService(
			deps.Repos.InteractionRepo,
			deps.Repos.LeadRepo,
			deps.Broadcaster,
		),
		Import: NewImportService(
			deps.Config,
			deps.Repos.LeadRepo,
			deps.Repos.UserRepo,
			deps.Cache,
			deps.EmailSvc,
			deps.Broadcaster,
		),
		Broadcaster: deps.Broadcaster,
	}
}
