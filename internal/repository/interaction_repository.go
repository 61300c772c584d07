package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Interaction struct {
	ID          string
	LeadID      string
	UserID      string
	Type        string
	Description string
	CreatedAt   time.Time
}

type InteractionRepository interface {
	Create(ctx context.Context, interaction *Interaction) error
	FindByID(ctx context.Context, id string) (*Interaction, error)
	FindByLeadID(ctx context.Context, leadID string) ([]*Interaction, error)
	Delete(ctx context.Context, id string) error
}

type pgInteractionRepository struct {
	pool *pgxpool.Pool
}

func NewInteractionRepository(pool *pgxpool.Pool) InteractionRepository {
	return &pgInteractionRepository{pool: pool}
}

func (r *pgInteractionRepository) Create(ctx context.Context, interaction *Interaction) error {
	query := `
		INSERT INTO lead_interactions (lead_id, user_id, type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		interaction.LeadID, interaction.UserID, interaction.Type, interaction.Description,
	).Scan(&interaction.ID, &interaction.CreatedAt)
}

func (r *pgInteractionRepository) FindByID(ctx context.Context, id string) (*Interaction, error) {
	query := `
		SELECT id, lead_id, user_id, type, description, created_at
		FROM lead_interactions WHERE id = $1
	`
	interaction := &Interaction{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&interaction.ID, &interaction.LeadID, &interaction.UserID,
		&interaction.Type, &interaction.Description, &interaction.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return interaction, nil
}

func (r *pgInteractionRepository) FindByLeadID(ctx context.Context, leadID string) ([]*Interaction, error) {
	query := `
		SELECT id, lead_id, user_id, type, description, created_at
		FROM lead_interactions WHERE lead_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []*Interaction
	for rows.Next() {
		interaction := &Interaction{}
		if err := rows.Scan(
			&interaction.ID, &interaction.LeadID, &interaction.UserID,
			&interaction.Type, &interaction.Description, &interaction.CreatedAt,
		); err != nil {
			return nil, err
		}
		interactions = append(interactions, interaction)
	}
	return interactions, rows.Err()
}

func (r *pgInteractionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lead_interactions WHERE id = $1`, id)
	return err
}
