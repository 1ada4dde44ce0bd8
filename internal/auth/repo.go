package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/measurebook/measurebook/internal/companies"
	"github.com/measurebook/measurebook/internal/platform/db"
)

// ErrEmailTaken indicates a signup against an existing email address.
var ErrEmailTaken = errors.New("email already registered")

// ErrUserNotFound indicates no user exists for the given email.
var ErrUserNotFound = errors.New("user not found")

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	CreateCompanyAndAdmin(ctx context.Context, companyName string, user User) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches a user by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, role, company_id, created_at, updated_at
		FROM users WHERE email = $1
	`, strings.ToLower(email))

	var u User
	var role string
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.CompanyID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.Role = Role(role)
	if createdAt.Valid {
		u.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		u.UpdatedAt = updatedAt.Time
	}
	return &u, nil
}

// CreateCompanyAndAdmin inserts the company and its first admin user in one
// transaction, so a half-registered tenant can never exist.
func (r *PGRepository) CreateCompanyAndAdmin(ctx context.Context, companyName string, user User) (*User, error) {
	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	created := user
	created.Role = RoleAdmin
	created.Email = strings.ToLower(user.Email)

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, created.Email).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrEmailTaken
		}

		company, err := companies.CreateTx(ctx, tx, companies.NewBasic(companyName))
		if err != nil {
			return err
		}
		created.CompanyID = company.ID

		return tx.QueryRow(ctx, `
			INSERT INTO users (email, name, password_hash, role, company_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING id
		`, created.Email, created.Name, created.PasswordHash, string(created.Role), company.ID, now).Scan(&created.ID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

var _ Repository = (*PGRepository)(nil)
