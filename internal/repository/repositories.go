package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	UserRepo        UserRepository
	LeadRepo        LeadRepository
	InteractionRepo InteractionRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepo:        NewUserRepository(pool),
		LeadRepo:        NewLeadRepository(pool),
		InteractionRepo: NewInteractionRepository(pool),
	}
}
