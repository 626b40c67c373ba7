package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

// JobPostgres is a PostgreSQL implementation of repository.JobRepository.
type JobPostgres struct {
	db *sql.DB
}

// NewJobPostgres creates a new JobPostgres repository.
func NewJobPostgres(db *sql.DB) *JobPostgres {
	return &JobPostgres{db: db}
}

var _ repository.JobRepository = (*JobPostgres)(nil)

const jobColumns = `j.id, j.title, j.description, j.company, j.location, j.job_type,
	j.salary_min, j.salary_max, j.salary_currency, j.skills, j.requirements, j.benefits,
	j.status, j.employer_id,
	(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS application_count,
	j.created_at, j.updated_at`

func scanJob(row rowScanner) (*model.Job, error) {
	var (
		j                              model.Job
		salaryMin, salaryMax           sql.NullInt64
		skills, requirements, benefits []byte
	)
	if err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Description,
		&j.Company,
		&j.Location,
		&j.JobType,
		&salaryMin,
		&salaryMax,
		&j.Salary.Currency,
		&skills,
		&requirements,
		&benefits,
		&j.Status,
		&j.EmployerID,
		&j.ApplicationCount,
		&j.CreatedAt,
		&j.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if salaryMin.Valid {
		j.Salary.Min = &salaryMin.Int64
	}
	if salaryMax.Valid {
		j.Salary.Max = &salaryMax.Int64
	}
	var err error
	if j.Skills, err = decodeStrings(skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	if j.Requirements, err = decodeStrings(requirements); err != nil {
		return nil, fmt.Errorf("decode requirements: %w", err)
	}
	if j.Benefits, err = decodeStrings(benefits); err != nil {
		return nil, fmt.Errorf("decode benefits: %w", err)
	}
	return &j, nil
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

// jobArrays encodes the JSONB list columns in column order.
func jobArrays(j *model.Job) (skills, requirements, benefits string, err error) {
	if skills, err = encodeJSON(j.Skills); err != nil {
		return
	}
	if requirements, err = encodeJSON(j.Requirements); err != nil {
		return
	}
	benefits, err = encodeJSON(j.Benefits)
	return
}

// Create inserts a new job row and returns the stored record.
func (r *JobPostgres) Create(ctx context.Context, j *model.Job) (*model.Job, error) {
	skills, requirements, benefits, err := jobArrays(j)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO jobs (id, title, description, company, location, job_type,
			salary_min, salary_max, salary_currency, skills, requirements, benefits,
			status, employer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11::jsonb, $12::jsonb, $13, $14, $15, $16)
		RETURNING id`
	var id string
	if err := r.db.QueryRowContext(ctx, q,
		j.ID,
		j.Title,
		j.Description,
		j.Company,
		j.Location,
		j.JobType,
		nullInt(j.Salary.Min),
		nullInt(j.Salary.Max),
		j.Salary.Currency,
		skills,
		requirements,
		benefits,
		j.Status,
		j.EmployerID,
		j.CreatedAt,
		j.UpdatedAt,
	).Scan(&id); err != nil {
		return nil, translateErr(err)
	}
	return r.FindByID(ctx, id)
}

// FindByID fetches a single job by its ID.
func (r *JobPostgres) FindByID(ctx context.Context, id string) (*model.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.id = $1`
	return scanJob(r.db.QueryRowContext(ctx, q, id))
}

// Update writes every mutable column of j.
func (r *JobPostgres) Update(ctx context.Context, j *model.Job) (*model.Job, error) {
	skills, requirements, benefits, err := jobArrays(j)
	if err != nil {
		return nil, err
	}
	const q = `
		UPDATE jobs SET title = $2, description = $3, company = $4, location = $5, job_type = $6,
			salary_min = $7, salary_max = $8, salary_currency = $9,
			skills = $10::jsonb, requirements = $11::jsonb, benefits = $12::jsonb,
			status = $13, updated_at = $14
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q,
		j.ID,
		j.Title,
		j.Description,
		j.Company,
		j.Location,
		j.JobType,
		nullInt(j.Salary.Min),
		nullInt(j.Salary.Max),
		j.Salary.Currency,
		skills,
		requirements,
		benefits,
		j.Status,
		j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, sql.ErrNoRows
	}
	return r.FindByID(ctx, j.ID)
}

// Delete removes a job by ID. A missing row yields sql.ErrNoRows.
func (r *JobPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// buildJobWhere translates q into SQL conditions over the jobs alias j.
//
// Salary bounds compare against the posted range: a job matches salaryMin when its
// upper bound (or lower bound if no upper) reaches it, and salaryMax when its lower
// bound (or upper bound if no lower) stays under it. Jobs without a salary never
// match a salary constraint.
func buildJobWhere(q repository.JobQuery) *where {
	w := &where{}
	f := q.Filter
	switch {
	case q.Status != "" && q.VisibleTo != "":
		w.add(fmt.Sprintf("(j.status = %s OR j.employer_id = %s)", w.arg(q.Status), w.arg(q.VisibleTo)))
	case q.Status != "":
		w.add("j.status = " + w.arg(q.Status))
	}
	if q.EmployerID != "" {
		w.add("j.employer_id = " + w.arg(q.EmployerID))
	}
	if f.Search != "" {
		p := w.arg(likePattern(f.Search))
		w.add(fmt.Sprintf("(j.title ILIKE %s OR j.description ILIKE %s OR j.company ILIKE %s)", p, p, p))
	}
	if f.Location != "" {
		w.add("j.location ILIKE " + w.arg(likePattern(f.Location)))
	}
	if f.Company != "" {
		w.add("j.company ILIKE " + w.arg(likePattern(f.Company)))
	}
	if f.JobType != "" {
		w.add("j.job_type = " + w.arg(f.JobType))
	}
	if len(f.Skills) > 0 {
		ph := make([]string, 0, len(f.Skills))
		for _, s := range f.Skills {
			ph = append(ph, "lower("+w.arg(s)+")")
		}
		w.add(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(j.skills) AS s(skill) WHERE lower(s.skill) IN (%s))",
			strings.Join(ph, ", ")))
	}
	if f.SalaryMin != nil {
		w.add("COALESCE(j.salary_max, j.salary_min) >= " + w.arg(*f.SalaryMin))
	}
	if f.SalaryMax != nil {
		w.add("COALESCE(j.salary_min, j.salary_max) <= " + w.arg(*f.SalaryMax))
	}
	if f.DatePosted > 0 {
		w.add("j.created_at >= now() - make_interval(days => " + w.arg(f.DatePosted) + ")")
	}
	return w
}

// List returns jobs matching q, newest first, with the total match count.
func (r *JobPostgres) List(ctx context.Context, q repository.JobQuery) (*repository.PageResult[model.Job], error) {
	w := buildJobWhere(q)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs j`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	args := append(append([]any{}, w.args...), q.Page.Limit, q.Page.Offset)
	qList := fmt.Sprintf(`SELECT %s FROM jobs j%s ORDER BY j.created_at DESC, j.id DESC LIMIT $%d OFFSET $%d`,
		jobColumns, w.String(), len(w.args)+1, len(w.args)+2)
	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Job]{Items: items, Total: total}, nil
}

func (r *JobPostgres) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n)
	return n, err
}

func (r *JobPostgres) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE status = $1`, model.JobStatusActive).Scan(&n)
	return n, err
}
