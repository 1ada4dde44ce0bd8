package companies

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the company record is absent.
var ErrNotFound = errors.New("company not found")

// Repository defines persistence operations for companies.
type Repository interface {
	Get(ctx context.Context, id int64) (Company, error)
	Create(ctx context.Context, company Company) (Company, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (Company, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, plan, project_limit, created_at, updated_at
		FROM companies WHERE id = $1
	`, id)
	return scanCompany(row)
}

func (r *repository) Create(ctx context.Context, c Company) (Company, error) {
	return insertCompany(ctx, r.pool, c)
}

// CreateTx inserts a company inside an existing transaction, so signup can
// create the company and its admin user atomically.
func CreateTx(ctx context.Context, tx pgx.Tx, c Company) (Company, error) {
	return insertCompany(ctx, tx, c)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertCompany(ctx context.Context, q rowQuerier, c Company) (Company, error) {
	now := time.Now().UTC()
	row := q.QueryRow(ctx, `
		INSERT INTO companies (name, plan, project_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, name, plan, project_limit, created_at, updated_at
	`, c.Name, string(c.Plan), c.ProjectLimit, pgtype.Timestamptz{Time: now, Valid: true})
	return scanCompany(row)
}

func scanCompany(row pgx.Row) (Company, error) {
	var c Company
	var plan string
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&c.ID, &c.Name, &plan, &c.ProjectLimit, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, err
	}
	c.Plan = SubscriptionPlan(plan)
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		c.UpdatedAt = updatedAt.Time
	}
	return c, nil
}
