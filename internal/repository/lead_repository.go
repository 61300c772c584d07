package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Lead struct {
	ID        string
	UserID    string
	Name      string
	Email     *string
	Phone     *string
	Company   *string
	Status    string
	Source    *string
	DealValue decimal.NullDecimal
	Notes     *string
	IsActive  bool
	Priority  string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeadFilters narrows list queries; zero values mean "no filter".
type LeadFilters struct {
	Status string
	Source string
	Search string
}

type LeadStats struct {
	Total         int
	Active        int
	Won           int
	Lost          int
	NewToday      int
	PipelineValue decimal.Decimal
}

type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByUserID(ctx context.Context, userID string, filters *LeadFilters) ([]*Lead, error)
	ExistsByEmail(ctx context.Context, userID, email string) (bool, error)
	Update(ctx context.Context, lead *Lead) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	BulkInsert(ctx context.Context, leads []*Lead) (int, error)
	GetStats(ctx context.Context, userID string) (*LeadStats, error)
}

type pgLeadRepository struct {
	pool *pgxpool.Pool
}

func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &pgLeadRepository{pool: pool}
}

const leadColumns = `id, user_id, name, email, phone, company, status, source,
	deal_value, notes, is_active, priority, tags, created_at, updated_at`

func scanLead(row pgx.Row) (*Lead, error) {
	lead := &Lead{}
	err := row.Scan(
		&lead.ID, &lead.UserID, &lead.Name, &lead.Email, &lead.Phone,
		&lead.Company, &lead.Status, &lead.Source, &lead.DealValue,
		&lead.Notes, &lead.IsActive, &lead.Priority, &lead.Tags,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *pgLeadRepository) Create(ctx context.Context, lead *Lead) error {
	query := `
		INSERT INTO leads (user_id, name, email, phone, company, status, source,
			deal_value, notes, is_active, priority, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		lead.UserID, lead.Name, lead.Email, lead.Phone, lead.Company,
		lead.Status, lead.Source, lead.DealValue, lead.Notes,
		lead.IsActive, lead.Priority, lead.Tags,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

func (r *pgLeadRepository) FindByID(ctx context.Context, id string) (*Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *pgLeadRepository) FindByUserID(ctx context.Context, userID string, filters *LeadFilters) ([]*Lead, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + leadColumns + ` FROM leads WHERE user_id = $1`)
	args := []interface{}{userID}

	if filters != nil {
		if filters.Status != "" {
			args = append(args, filters.Status)
			fmt.Fprintf(&sb, " AND status = $%d", len(args))
		}
		if filters.Source != "" {
			args = append(args, strings.ToLower(filters.Source))
			fmt.Fprintf(&sb, " AND source = $%d", len(args))
		}
		if filters.Search != "" {
			args = append(args, "%"+filters.Search+"%")
			n := len(args)
			fmt.Fprintf(&sb, " AND (name ILIKE $%d OR email ILIKE $%d OR company ILIKE $%d)", n, n, n)
		}
	}
	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *pgLeadRepository) ExistsByEmail(ctx context.Context, userID, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM leads WHERE user_id = $1 AND email = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *pgLeadRepository) Update(ctx context.Context, lead *Lead) error {
	query := `
		UPDATE leads
		SET name = $2, email = $3, phone = $4, company = $5, status = $6,
			source = $7, deal_value = $8, notes = $9, is_active = $10,
			priority = $11, tags = $12, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Company,
		lead.Status, lead.Source, lead.DealValue, lead.Notes,
		lead.IsActive, lead.Priority, lead.Tags,
	).Scan(&lead.UpdatedAt)
}

func (r *pgLeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE leads SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	return err
}

func (r *pgLeadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	return err
}

// BulkInsert writes all leads in one multi-row INSERT inside a transaction.
// The batch either persists completely or not at all.
func (r *pgLeadRepository) BulkInsert(ctx context.Context, leads []*Lead) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO leads (user_id, name, email, phone, company, status, source,
			deal_value, notes, is_active, priority, tags)
		VALUES `)

	args := make([]interface{}, 0, len(leads)*12)
	for i, lead := range leads {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 12
		sb.WriteString("(")
		for j := 1; j <= 12; j++ {
			if j > 1 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", base+j)
		}
		sb.WriteString(")")
		args = append(args,
			lead.UserID, lead.Name, lead.Email, lead.Phone, lead.Company,
			lead.Status, lead.Source, lead.DealValue, lead.Notes,
			lead.IsActive, lead.Priority, lead.Tags,
		)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgLeadRepository) GetStats(ctx context.Context, userID string) (*LeadStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status NOT IN ('won', 'lost')),
			COUNT(*) FILTER (WHERE status = 'won'),
			COUNT(*) FILTER (WHERE status = 'lost'),
			COUNT(*) FILTER (WHERE created_at >= date_trunc('day', now())),
			COALESCE(SUM(deal_value) FILTER (WHERE status NOT IN ('won', 'lost')), 0)
		FROM leads WHERE user_id = $1
	`
	stats := &LeadStats{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&stats.Total, &stats.Active, &stats.Won, &stats.Lost,
		&stats.NewToday, &stats.PipelineValue,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
