package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bondspire/intake-api/internal/dto"
	"github.com/bondspire/intake-api/internal/entity"
)

var (
	// ErrSubscriptionNotFound is returned when no subscription matches the lookup.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrEmailAlreadySubscribed is returned when the email unique constraint rejects an insert.
	ErrEmailAlreadySubscribed = errors.New("email already subscribed")
)

const (
	uniqueViolation         = "23505"
	subscriptionsEmailIndex = "newsletter_subscriptions_email_key"
)

// SubscriptionsRepository persists newsletter subscriptions.
type SubscriptionsRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Subscription, error)
	Create(ctx context.Context, subscription *entity.Subscription) error
	List(ctx context.Context, filter dto.SubscriptionFilter) ([]entity.Subscription, error)
}

// PGXSubscriptionsRepository implements SubscriptionsRepository with pgx.
type PGXSubscriptionsRepository struct {
	pool pgxPool
}

// NewPGXSubscriptionsRepository instantiates a subscriptions repository.
func NewPGXSubscriptionsRepository(pool *pgxpool.Pool) *PGXSubscriptionsRepository {
	return &PGXSubscriptionsRepository{pool: pool}
}

const subscriptionColumns = `id, email, first_name, interest_area, subscribed_at, status, source`

// FindByEmail fetches a subscription by its normalized email, whatever its status.
func (r *PGXSubscriptionsRepository) FindByEmail(ctx context.Context, email string) (*entity.Subscription, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM newsletter_subscriptions WHERE email = $1`, email)

	var s entity.Subscription
	if err := row.Scan(&s.ID, &s.Email, &s.FirstName, &s.InterestArea, &s.SubscribedAt, &s.Status, &s.Source); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("query subscription by email: %w", err)
	}
	return &s, nil
}

// Create inserts a subscription row. The email unique constraint is the source of truth for
// duplicates, so concurrent signups for one address resolve to ErrEmailAlreadySubscribed.
func (r *PGXSubscriptionsRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	if subscription == nil {
		return fmt.Errorf("subscription payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO newsletter_subscriptions (email, first_name, interest_area, subscribed_at, status, source)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, subscribed_at
    `,
		subscription.Email,
		subscription.FirstName,
		subscription.InterestArea,
		subscription.SubscribedAt,
		subscription.Status,
		subscription.Source,
	)

	if err := row.Scan(&subscription.ID, &subscription.SubscribedAt); err != nil {
		if isEmailConflict(err) {
			return fmt.Errorf("%w: %v", ErrEmailAlreadySubscribed, err)
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// List returns subscriptions newest first, optionally narrowed by status and interest area.
func (r *PGXSubscriptionsRepository) List(ctx context.Context, filter dto.SubscriptionFilter) ([]entity.Subscription, error) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 4)
	idx := 1

	if status := strings.TrimSpace(filter.Status); status != "" && status != "all" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", idx))
		args = append(args, status)
		idx++
	}
	if area := strings.TrimSpace(filter.InterestArea); area != "" {
		conditions = append(conditions, fmt.Sprintf("interest_area = $%d", idx))
		args = append(args, area)
		idx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit, offset := dto.ClampPage(filter.Limit, filter.Offset)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`SELECT %s FROM newsletter_subscriptions %s ORDER BY subscribed_at DESC LIMIT $%d OFFSET $%d`,
		subscriptionColumns, where, idx, idx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subscriptions []entity.Subscription
	for rows.Next() {
		var s entity.Subscription
		if err := rows.Scan(&s.ID, &s.Email, &s.FirstName, &s.InterestArea, &s.SubscribedAt, &s.Status, &s.Source); err != nil {
			return nil, fmt.Errorf("scan subscription row: %w", err)
		}
		subscriptions = append(subscriptions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return subscriptions, nil
}

func isEmailConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return pgErr.ConstraintName == subscriptionsEmailIndex || strings.Contains(pgErr.Message, subscriptionsEmailIndex)
}
