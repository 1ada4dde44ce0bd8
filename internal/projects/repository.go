package projects

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/measurebook/measurebook/internal/billing"
	"github.com/measurebook/measurebook/internal/platform/db"
)

// Repository defines persistence operations for projects and their sheets.
// WithTx yields a repository bound to a single transaction, so the
// reconciliation save's delete-and-recreate sequence commits atomically.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Create(ctx context.Context, p Project) (Project, error)
	Get(ctx context.Context, id, companyID int64) (*Project, error)
	List(ctx context.Context, companyID int64) ([]Project, error)
	CountByCompany(ctx context.Context, companyID int64) (int, error)
	ListSheet(ctx context.Context, projectID int64) ([]Section, error)
	DeleteSheet(ctx context.Context, projectID int64) error
	InsertSection(ctx context.Context, s Section) (int64, error)
	InsertItem(ctx context.Context, item Item) (int64, error)
	UpdateTotals(ctx context.Context, projectID int64, gstPercentage, totalAmount float64) error
	Delete(ctx context.Context, projectID int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) Create(ctx context.Context, p Project) (Project, error) {
	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	err := r.db.QueryRow(ctx, `
		INSERT INTO projects (name, client_name, project_date, location, notes,
			company_id, created_by, gst_percentage, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id, created_at, updated_at
	`,
		p.Name, p.ClientName, pgtype.Date{Time: p.Date, Valid: true}, p.Location,
		textOrNull(p.Notes), p.CompanyID, p.CreatedBy, p.GSTPercentage,
		string(p.Status), p.TotalAmount, now,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Project{}, err
	}
	return p, nil
}

func (r *repository) Get(ctx context.Context, id, companyID int64) (*Project, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, client_name, project_date, location, notes, company_id,
		       created_by, gst_percentage, status, total_amount, created_at, updated_at
		FROM projects
		WHERE id = $1 AND company_id = $2
	`, id, companyID)

	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, companyID int64) ([]Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, client_name, project_date, location, notes, company_id,
		       created_by, gst_percentage, status, total_amount, created_at, updated_at
		FROM projects
		WHERE company_id = $1
		ORDER BY created_at DESC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *repository) CountByCompany(ctx context.Context, companyID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE company_id = $1`, companyID).Scan(&count)
	return count, err
}

// ListSheet loads all sections of a project with their items, both sorted
// by their order columns. Sort order is the authoritative sequence.
func (r *repository) ListSheet(ctx context.Context, projectID int64) ([]Section, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, project_id, title, sort_order, total_amount
		FROM sections
		WHERE project_id = $1
		ORDER BY sort_order ASC, id ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []Section
	index := make(map[int64]int)
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Title, &s.Order, &s.TotalAmount); err != nil {
			return nil, err
		}
		s.Items = []Item{}
		index[s.ID] = len(sections)
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return sections, nil
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT i.id, i.section_id, i.description, i.uom, i.size, i.qty, i.rate, i.amount, i.sort_order
		FROM items i
		JOIN sections s ON s.id = i.section_id
		WHERE s.project_id = $1
		ORDER BY s.sort_order ASC, i.sort_order ASC, i.id ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it Item
		var uom string
		if err := itemRows.Scan(&it.ID, &it.SectionID, &it.Description, &uom, &it.Size, &it.Qty, &it.Rate, &it.Amount, &it.Order); err != nil {
			return nil, err
		}
		it.UOM = billing.UOM(uom)
		if pos, ok := index[it.SectionID]; ok {
			sections[pos].Items = append(sections[pos].Items, it)
		}
	}
	return sections, itemRows.Err()
}

// DeleteSheet removes every item and section of a project. Run inside
// WithTx together with the recreate steps.
func (r *repository) DeleteSheet(ctx context.Context, projectID int64) error {
	if _, err := r.db.Exec(ctx, `
		DELETE FROM items WHERE section_id IN (SELECT id FROM sections WHERE project_id = $1)
	`, projectID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM sections WHERE project_id = $1`, projectID)
	return err
}

func (r *repository) InsertSection(ctx context.Context, s Section) (int64, error) {
	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO sections (project_id, title, sort_order, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`, s.ProjectID, s.Title, s.Order, s.TotalAmount, now).Scan(&id)
	return id, err
}

func (r *repository) InsertItem(ctx context.Context, item Item) (int64, error) {
	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO items (section_id, description, uom, size, qty, rate, amount, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`, item.SectionID, item.Description, string(item.UOM), item.Size, item.Qty, item.Rate, item.Amount, item.Order, now).Scan(&id)
	return id, err
}

func (r *repository) UpdateTotals(ctx context.Context, projectID int64, gstPercentage, totalAmount float64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE projects SET gst_percentage = $1, total_amount = $2, updated_at = NOW()
		WHERE id = $3
	`, gstPercentage, totalAmount, projectID)
	return err
}

// Delete removes the project together with its sheet. Run inside WithTx.
func (r *repository) Delete(ctx context.Context, projectID int64) error {
	if err := r.DeleteSheet(ctx, projectID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	return err
}

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	var projectDate pgtype.Date
	var notes pgtype.Text
	var status string
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&p.ID, &p.Name, &p.ClientName, &projectDate, &p.Location, &notes,
		&p.CompanyID, &p.CreatedBy, &p.GSTPercentage, &status, &p.TotalAmount, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if projectDate.Valid {
		p.Date = projectDate.Time
	}
	if notes.Valid {
		val := notes.String
		p.Notes = &val
	}
	p.Status = ProjectStatus(status)
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return &p, nil
}

func textOrNull(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
