package models

import "time"

// ============================================
// Auth
// ============================================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

// ============================================
// Leads
// ============================================

type CreateLeadRequest struct {
	Name      string   `json:"name" binding:"required"`
	Email     string   `json:"email" binding:"omitempty,email"`
	Phone     string   `json:"phone"`
	Company   string   `json:"company"`
	Status    string   `json:"status"`
	Source    string   `json:"source"`
	DealValue *float64 `json:"deal_value,omitempty"`
	Notes     string   `json:"notes"`
	Priority  string   `json:"priority"`
	Tags      []string `json:"tags"`
}

type UpdateLeadRequest struct {
	Name      *string  `json:"name,omitempty"`
	Email     *string  `json:"email,omitempty" binding:"omitempty,email"`
	Phone     *string  `json:"phone,omitempty"`
	Company   *string  `json:"company,omitempty"`
	Status    *string  `json:"status,omitempty"`
	Source    *string  `json:"source,omitempty"`
	DealValue *float64 `json:"deal_value,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
	IsActive  *bool    `json:"is_active,omitempty"`
	Priority  *string  `json:"priority,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type LeadResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	DealValue *float64  `json:"deal_value"`
	Notes     string    `json:"notes"`
	IsActive  bool      `json:"is_active"`
	Priority  string    `json:"priority"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LeadStatsResponse struct {
	Total          int     `json:"total"`
	Active         int     `json:"active"`
	Won            int     `json:"won"`
	Lost           int     `json:"lost"`
	NewToday       int     `json:"newToday"`
	ConversionRate string  `json:"conversionRate"`
	PipelineValue  float64 `json:"pipelineValue"`
}

// ============================================
// Interactions
// ============================================

type CreateInteractionRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type InteractionResponse struct {
	ID          string    `json:"id"`
	LeadID      string    `json:"lead_id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ============================================
// Import
// ============================================

type ImportError struct {
	Row         int    `json:"row"`
	Description string `json:"description"`
}

type ImportResult struct {
	Total    int           `json:"total"`
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}
