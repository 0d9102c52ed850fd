package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bondspire/intake-api/internal/dto"
	"github.com/bondspire/intake-api/internal/entity"
)

func TestPGXSubscriptionsRepository_FindByEmail(t *testing.T) {
	repo := &PGXSubscriptionsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = uuid.New()
				*dest[1].(*string) = args[0].(string)
				*dest[3].(*string) = entity.DefaultInterestArea
				*dest[4].(*time.Time) = time.Now()
				*dest[5].(*string) = entity.SubscriptionStatusUnsubscribed
				*dest[6].(*string) = entity.SubscriptionSourceWebsite
				return nil
			}}
		},
	}}

	sub, err := repo.FindByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Email != "jane@example.com" || sub.Status != entity.SubscriptionStatusUnsubscribed {
		t.Fatalf("unexpected subscription: %+v", sub)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	if _, err := repo.FindByEmail(context.Background(), "missing@example.com"); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestPGXSubscriptionsRepository_Create(t *testing.T) {
	id := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	repo := &PGXSubscriptionsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = id
				*dest[1].(*time.Time) = time.Now()
				return nil
			}}
		},
	}}

	sub := &entity.Subscription{
		Email:        "jane@example.com",
		InterestArea: entity.DefaultInterestArea,
		SubscribedAt: time.Now(),
		Status:       entity.SubscriptionStatusActive,
		Source:       entity.SubscriptionSourceWebsite,
	}
	if err := repo.Create(context.Background(), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.ID != id {
		t.Fatalf("expected generated id, got %s", sub.ID)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return &pgconn.PgError{
					Code:           "23505",
					Message:        `duplicate key value violates unique constraint "newsletter_subscriptions_email_key"`,
					ConstraintName: "newsletter_subscriptions_email_key",
				}
			}}
		},
	}
	if err := repo.Create(context.Background(), sub); !errors.Is(err, ErrEmailAlreadySubscribed) {
		t.Fatalf("expected ErrEmailAlreadySubscribed, got %v", err)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return &pgconn.PgError{Code: "23502", Message: "null value in column"}
			}}
		},
	}
	err := repo.Create(context.Background(), sub)
	if err == nil || errors.Is(err, ErrEmailAlreadySubscribed) {
		t.Fatalf("expected generic insert error, got %v", err)
	}
}

func TestPGXSubscriptionsRepository_List(t *testing.T) {
	var gotArgs []any
	repo := &PGXSubscriptionsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			gotArgs = args
			return &stubRows{
				scans: []func(dest ...any) error{
					func(dest ...any) error {
						*dest[1].(*string) = "a@example.com"
						return nil
					},
					func(dest ...any) error {
						*dest[1].(*string) = "b@example.com"
						return nil
					},
				},
			}, nil
		},
	}}

	rows, err := repo.List(context.Background(), dto.SubscriptionFilter{InterestArea: "education"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if gotArgs[0] != "education" || gotArgs[1] != dto.DefaultPageLimit {
		t.Fatalf("unexpected args: %v", gotArgs)
	}

	repo.pool = &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{err: errors.New("broken cursor")}, nil
		},
	}
	if _, err := repo.List(context.Background(), dto.SubscriptionFilter{}); err == nil {
		t.Fatalf("expected iteration error")
	}
}
