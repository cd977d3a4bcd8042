package jobs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists jobs and applications.
type Repository interface {
	CreateJob(ctx context.Context, job Job) error
	GetJob(ctx context.Context, id string) (Job, error)
	ListJobs(ctx context.Context) ([]Job, error)
	UpdateJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, id string) error
	CreateApplication(ctx context.Context, app Application) error
	ListApplicationsByAccount(ctx context.Context, accountID string) ([]Application, error)
	DeleteApplicationsByJob(ctx context.Context, jobID string) error
}

const uniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed jobs repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateJob inserts a job posting.
func (r *PostgresRepository) CreateJob(ctx context.Context, job Job) error {
	jobID, err := uuid.Parse(job.ID)
	if err != nil {
		return err
	}
	createdBy, err := uuid.Parse(job.CreatedBy)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO jobs
		(id, title, company, location, type, description, requirements, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		jobID, job.Title, job.Company, job.Location, job.Type, job.Description,
		job.Requirements, createdBy, job.CreatedAt.UTC(), job.UpdatedAt.UTC())
	return err
}

const selectJob = `SELECT id, title, company, location, type, description,
	requirements, created_by, created_at, updated_at FROM jobs`

// GetJob fetches a job by identifier.
func (r *PostgresRepository) GetJob(ctx context.Context, id string) (Job, error) {
	jobID, err := uuid.Parse(id)
	if err != nil {
		return Job{}, ErrJobMissing
	}
	return scanJob(r.db.QueryRow(ctx, selectJob+` WHERE id = $1`, jobID))
}

// ListJobs returns all jobs, newest first.
func (r *PostgresRepository) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := r.db.Query(ctx, selectJob+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}

// UpdateJob rewrites the mutable fields of a posting.
func (r *PostgresRepository) UpdateJob(ctx context.Context, job Job) error {
	jobID, err := uuid.Parse(job.ID)
	if err != nil {
		return ErrJobMissing
	}
	cmd, err := r.db.Exec(ctx, `UPDATE jobs SET
		title = $1, company = $2, location = $3, type = $4, description = $5,
		requirements = $6, updated_at = now()
		WHERE id = $7`,
		job.Title, job.Company, job.Location, job.Type, job.Description,
		job.Requirements, jobID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrJobMissing
	}
	return nil
}

// DeleteJob removes a posting. Applications cascade in the schema but are
// also deleted explicitly by the service for non-SQL backends.
func (r *PostgresRepository) DeleteJob(ctx context.Context, id string) error {
	jobID, err := uuid.Parse(id)
	if err != nil {
		return ErrJobMissing
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrJobMissing
	}
	return nil
}

// CreateApplication records an application, one per account per job.
func (r *PostgresRepository) CreateApplication(ctx context.Context, app Application) error {
	appID, err := uuid.Parse(app.ID)
	if err != nil {
		return err
	}
	jobID, err := uuid.Parse(app.JobID)
	if err != nil {
		return ErrJobMissing
	}
	accountID, err := uuid.Parse(app.AccountID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO applications (id, job_id, account_id, created_at)
		VALUES ($1, $2, $3, $4)`, appID, jobID, accountID, app.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

// ListApplicationsByAccount returns the account's applications, newest first.
func (r *PostgresRepository) ListApplicationsByAccount(ctx context.Context, accountID string) ([]Application, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, job_id, account_id, created_at
		FROM applications WHERE account_id = $1 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Application
	for rows.Next() {
		var (
			app             Application
			appID, jID, aID uuid.UUID
		)
		if err := rows.Scan(&appID, &jID, &aID, &app.CreatedAt); err != nil {
			return nil, err
		}
		app.ID = appID.String()
		app.JobID = jID.String()
		app.AccountID = aID.String()
		app.CreatedAt = app.CreatedAt.UTC()
		result = append(result, app)
	}
	return result, rows.Err()
}

// DeleteApplicationsByJob removes every application for the job.
func (r *PostgresRepository) DeleteApplicationsByJob(ctx context.Context, jobID string) error {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return ErrJobMissing
	}
	_, err = r.db.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, id)
	return err
}

func scanJob(row pgx.Row) (Job, error) {
	var (
		job       Job
		id        uuid.UUID
		createdBy uuid.UUID
	)
	err := row.Scan(&id, &job.Title, &job.Company, &job.Location, &job.Type,
		&job.Description, &job.Requirements, &createdBy, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobMissing
		}
		return Job{}, err
	}
	job.ID = id.String()
	job.CreatedBy = createdBy.String()
	job.CreatedAt = job.CreatedAt.UTC()
	job.UpdatedAt = job.UpdatedAt.UTC()
	return job, nil
}
