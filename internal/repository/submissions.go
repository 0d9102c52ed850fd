package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bondspire/intake-api/internal/dto"
	"github.com/bondspire/intake-api/internal/entity"
)

// SubmissionsRepository persists contact and partnership submissions.
type SubmissionsRepository interface {
	Create(ctx context.Context, submission *entity.Submission) error
	List(ctx context.Context, filter dto.SubmissionFilter) ([]entity.Submission, error)
}

// PGXSubmissionsRepository implements SubmissionsRepository with pgx.
type PGXSubmissionsRepository struct {
	pool pgxPool
}

// NewPGXSubmissionsRepository instantiates a submissions repository.
func NewPGXSubmissionsRepository(pool *pgxpool.Pool) *PGXSubmissionsRepository {
	return &PGXSubmissionsRepository{pool: pool}
}

const submissionColumns = `id, name, email, phone, subject, message, how_did_you_hear, form_type,
        organization_name, website, partnership_type, timestamp, status`

// Create inserts one form_submissions row and fills in the generated id.
func (r *PGXSubmissionsRepository) Create(ctx context.Context, submission *entity.Submission) error {
	if submission == nil {
		return fmt.Errorf("submission payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO form_submissions (name, email, phone, subject, message, how_did_you_hear, form_type,
            organization_name, website, partnership_type, timestamp, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, timestamp
    `,
		submission.Name,
		submission.Email,
		submission.Phone,
		submission.Subject,
		submission.Message,
		submission.HowDidYouHear,
		submission.FormType,
		submission.OrganizationName,
		submission.Website,
		submission.PartnershipType,
		submission.Timestamp,
		submission.Status,
	)

	if err := row.Scan(&submission.ID, &submission.Timestamp); err != nil {
		return fmt.Errorf("insert form submission: %w", err)
	}
	return nil
}

// List returns submissions newest first, optionally narrowed by form type, status and time.
func (r *PGXSubmissionsRepository) List(ctx context.Context, filter dto.SubmissionFilter) ([]entity.Submission, error) {
	conditions := make([]string, 0, 3)
	args := make([]any, 0, 5)
	idx := 1

	if formType := strings.TrimSpace(filter.FormType); formType != "" {
		conditions = append(conditions, fmt.Sprintf("form_type = $%d", idx))
		args = append(args, formType)
		idx++
	}
	if status := strings.TrimSpace(filter.Status); status != "" && status != "all" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", idx))
		args = append(args, status)
		idx++
	}
	if filter.Since != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", idx))
		args = append(args, *filter.Since)
		idx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit, offset := dto.ClampPage(filter.Limit, filter.Offset)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`SELECT %s FROM form_submissions %s ORDER BY timestamp DESC LIMIT $%d OFFSET $%d`,
		submissionColumns, where, idx, idx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list form submissions: %w", err)
	}
	defer rows.Close()

	var submissions []entity.Submission
	for rows.Next() {
		var s entity.Submission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Subject, &s.Message, &s.HowDidYouHear,
			&s.FormType, &s.OrganizationName, &s.Website, &s.PartnershipType, &s.Timestamp, &s.Status); err != nil {
			return nil, fmt.Errorf("scan form submission row: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate form submissions: %w", err)
	}
	return submissions, nil
}
