package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/leadpilot/leadpilot-backend/internal/repository"
)

// Scheduler runs background maintenance jobs.
type Scheduler struct {
	cron     *cron.Cron
	userRepo repository.UserRepository
}

func NewScheduler(userRepo repository.UserRepository) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		userRepo: userRepo,
	}
}

func (s *Scheduler) Start() {
	// Purge expired refresh tokens every hour
	if _, err := s.cron.AddFunc("0 * * * *", s.purgeExpiredTokens); err != nil {
		log.Printf("[Cron] Failed to schedule token purge: %v", err)
	}

	// Daily heartbeat so the log shows the scheduler is alive
	if _, err := s.cron.AddFunc("0 0 * * *", func() {
		log.Println("[Cron] Scheduler heartbeat")
	}); err != nil {
		log.Printf("[Cron] Failed to schedule heartbeat: %v", err)
	}

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.userRepo.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		log.Printf("[Cron] Failed to purge expired refresh tokens: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Cron] Purged %d expired refresh tokens", deleted)
	}
}
