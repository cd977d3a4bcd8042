package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists accounts.
type Repository interface {
	Create(ctx context.Context, account Account) error
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByID(ctx context.Context, id string) (Account, error)
	Update(ctx context.Context, account Account) error
	Delete(ctx context.Context, id string) error
}

const uniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account. A lower(email) uniqueness violation — two
// concurrent registrations racing past the existence check — maps to
// ErrEmailTaken so the loser surfaces as a conflict.
func (r *PostgresRepository) Create(ctx context.Context, account Account) error {
	accountID, err := uuid.Parse(account.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts
		(id, name, email, password_hash, role, mobile, linkedin, email_verified,
		 otp_code, otp_expiry, otp_purpose, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		accountID, account.Name, account.Email, account.PasswordHash, account.Role,
		account.Mobile, account.Linkedin, account.EmailVerified,
		account.OTPCode, nullableTime(account.OTPExpiry), account.OTPPurpose,
		account.CreatedAt.UTC(), account.UpdatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindByEmail fetches an account by email, case-insensitively.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	row := r.db.QueryRow(ctx, selectAccount+` WHERE lower(email) = lower($1)`, email)
	return scanAccount(row)
}

// FindByID fetches an account by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Account, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrAccountNotFound
	}
	row := r.db.QueryRow(ctx, selectAccount+` WHERE id = $1`, accountID)
	return scanAccount(row)
}

// Update rewrites the mutable fields of the record and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, account Account) error {
	accountID, err := uuid.Parse(account.ID)
	if err != nil {
		return ErrAccountNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET
		name = $1, password_hash = $2, mobile = $3, linkedin = $4,
		email_verified = $5, otp_code = $6, otp_expiry = $7, otp_purpose = $8,
		updated_at = now()
		WHERE id = $9`,
		account.Name, account.PasswordHash, account.Mobile, account.Linkedin,
		account.EmailVerified, account.OTPCode, nullableTime(account.OTPExpiry),
		account.OTPPurpose, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Delete removes the account record. Application rows cascade in the schema.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return ErrAccountNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

const selectAccount = `SELECT id, name, email, password_hash, role, mobile, linkedin,
	email_verified, otp_code, otp_expiry, otp_purpose, created_at, updated_at
	FROM accounts`

func scanAccount(row pgx.Row) (Account, error) {
	var (
		a         Account
		id        uuid.UUID
		otpExpiry *time.Time
	)
	err := row.Scan(&id, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.Mobile,
		&a.Linkedin, &a.EmailVerified, &a.OTPCode, &otpExpiry, &a.OTPPurpose,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	a.ID = id.String()
	if otpExpiry != nil {
		a.OTPExpiry = otpExpiry.UTC()
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}
