package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

// ApplicationPostgres is a PostgreSQL implementation of repository.ApplicationRepository.
type ApplicationPostgres struct {
	db *sql.DB
}

// NewApplicationPostgres creates a new ApplicationPostgres repository.
func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

const applicationSelect = `
	SELECT a.id, a.job_id, a.applicant_id, a.status, a.cover_letter, a.notes,
		a.resume, a.resume_filename, a.created_at, a.updated_at,
		j.title, j.company, j.location,
		u.name, u.email
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN users u ON u.id = a.applicant_id`

func scanApplication(row rowScanner) (*model.Application, error) {
	var (
		a   model.Application
		job model.JobSummary
		usr model.UserSummary
	)
	if err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.ApplicantID,
		&a.Status,
		&a.CoverLetter,
		&a.Notes,
		&a.Resume,
		&a.ResumeFilename,
		&a.CreatedAt,
		&a.UpdatedAt,
		&job.Title,
		&job.Company,
		&job.Location,
		&usr.Name,
		&usr.Email,
	); err != nil {
		return nil, err
	}
	job.ID = a.JobID
	usr.ID = a.ApplicantID
	a.Job = &job
	a.Applicant = &usr
	return &a, nil
}

// Create inserts a new application row and returns it with summaries populated.
func (r *ApplicationPostgres) Create(ctx context.Context, a *model.Application) (*model.Application, error) {
	const q = `
		INSERT INTO applications (id, job_id, applicant_id, status, cover_letter, notes,
			resume, resume_filename, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	var id string
	if err := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.JobID,
		a.ApplicantID,
		a.Status,
		a.CoverLetter,
		a.Notes,
		a.Resume,
		a.ResumeFilename,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&id); err != nil {
		return nil, translateErr(err)
	}
	return r.FindByID(ctx, id)
}

// FindByID fetches a single application by its ID.
func (r *ApplicationPostgres) FindByID(ctx context.Context, id string) (*model.Application, error) {
	return scanApplication(r.db.QueryRowContext(ctx, applicationSelect+` WHERE a.id = $1`, id))
}

func (r *ApplicationPostgres) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, jobID, applicantID).Scan(&ok)
	return ok, err
}

// List returns applications matching q, newest first, with the total match count.
func (r *ApplicationPostgres) List(ctx context.Context, q repository.ApplicationQuery) (*repository.PageResult[model.Application], error) {
	var w where
	if q.JobID != "" {
		w.add("a.job_id = " + w.arg(q.JobID))
	}
	if q.ApplicantID != "" {
		w.add("a.applicant_id = " + w.arg(q.ApplicantID))
	}
	if q.Status != "" {
		w.add("a.status = " + w.arg(q.Status))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications a`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	args := append(append([]any{}, w.args...), q.Page.Limit, q.Page.Offset)
	qList := fmt.Sprintf(`%s%s ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d`,
		applicationSelect, w.String(), len(w.args)+1, len(w.args)+2)
	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Application]{Items: items, Total: total}, nil
}

// UpdateStatus changes the status (and optionally the notes) of an application.
func (r *ApplicationPostgres) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus, notes *string) (*model.Application, error) {
	const q = `
		UPDATE applications
		SET status = $2, notes = COALESCE($3, notes), updated_at = now()
		WHERE id = $1`
	var n sql.NullString
	if notes != nil {
		n = sql.NullString{String: *notes, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, q, id, status, n)
	if err != nil {
		return nil, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.FindByID(ctx, id)
}

func (r *ApplicationPostgres) FindByResume(ctx context.Context, key string) ([]model.Application, error) {
	rows, err := r.db.QueryContext(ctx, applicationSelect+` WHERE a.resume = $1`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// ResumeKeysByJob skips resumes still referenced by another job's applications
// or by a profile.
func (r *ApplicationPostgres) ResumeKeysByJob(ctx context.Context, jobID string) ([]string, error) {
	const q = `
		SELECT DISTINCT a.resume FROM applications a
		WHERE a.job_id = $1 AND a.resume <> ''
			AND NOT EXISTS (SELECT 1 FROM applications o WHERE o.resume = a.resume AND o.job_id <> $1)
			AND NOT EXISTS (SELECT 1 FROM users u WHERE u.profile->>'resume' = a.resume)`
	return r.strings(ctx, q, jobID)
}

// ResumeKeysByUser covers the user's own applications, applications to the user's
// jobs and the user's profile resume, skipping keys that outlive the deletion.
func (r *ApplicationPostgres) ResumeKeysByUser(ctx context.Context, userID string) ([]string, error) {
	const q = `
		SELECT DISTINCT k.key FROM (
			SELECT a.resume AS key FROM applications a
			JOIN jobs j ON j.id = a.job_id
			WHERE (a.applicant_id = $1 OR j.employer_id = $1) AND a.resume <> ''
			UNION
			SELECT profile->>'resume' FROM users
			WHERE id = $1 AND COALESCE(profile->>'resume', '') <> ''
		) k
		WHERE NOT EXISTS (
				SELECT 1 FROM applications o JOIN jobs oj ON oj.id = o.job_id
				WHERE o.resume = k.key AND o.applicant_id <> $1 AND oj.employer_id <> $1)
			AND NOT EXISTS (SELECT 1 FROM users ou WHERE ou.id <> $1 AND ou.profile->>'resume' = k.key)`
	return r.strings(ctx, q, userID)
}

func (r *ApplicationPostgres) strings(ctx context.Context, q string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ApplicationPostgres) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&n)
	return n, err
}

// CountByStatus returns the number of applications per status. Every status is present.
func (r *ApplicationPostgres) CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.ApplicationStatus]int, len(model.ApplicationStatuses))
	for _, s := range model.ApplicationStatuses {
		out[s] = 0
	}
	for rows.Next() {
		var (
			s model.ApplicationStatus
			n int
		)
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}
