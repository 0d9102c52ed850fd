package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bondspire/intake-api/internal/dto"
	"github.com/bondspire/intake-api/internal/entity"
	"github.com/bondspire/intake-api/internal/repository"
	"github.com/bondspire/intake-api/pkg/validate"
)

// AdminService backs the read-only review listings used by staff.
type AdminService struct {
	submissions   repository.SubmissionsRepository
	subscriptions repository.SubscriptionsRepository
}

// NewAdminService builds an AdminService.
func NewAdminService(submissions repository.SubmissionsRepository, subscriptions repository.SubscriptionsRepository) *AdminService {
	return &AdminService{submissions: submissions, subscriptions: subscriptions}
}

// ListSubmissions returns form submissions after checking the filter values.
func (s *AdminService) ListSubmissions(ctx context.Context, filter dto.SubmissionFilter) ([]entity.Submission, dto.SubmissionFilter, error) {
	filter.FormType = strings.ToLower(strings.TrimSpace(filter.FormType))
	switch filter.FormType {
	case "", entity.FormTypeContact, entity.FormTypePartnership:
	default:
		return nil, filter, &ValidationError{Field: "form_type", Message: "form_type must be contact or partnership"}
	}

	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	switch filter.Status {
	case "", "all", entity.SubmissionStatusNew, entity.SubmissionStatusInProgress, entity.SubmissionStatusResolved:
	default:
		return nil, filter, &ValidationError{Field: "status", Message: "status must be new, in-progress or resolved"}
	}

	filter.Limit, filter.Offset = dto.ClampPage(filter.Limit, filter.Offset)
	rows, err := s.submissions.List(ctx, filter)
	if err != nil {
		return nil, filter, fmt.Errorf("list submissions: %w", err)
	}
	if rows == nil {
		rows = []entity.Submission{}
	}
	return rows, filter, nil
}

// ListSubscriptions returns newsletter subscriptions after checking the filter values.
func (s *AdminService) ListSubscriptions(ctx context.Context, filter dto.SubscriptionFilter) ([]entity.Subscription, dto.SubscriptionFilter, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	switch filter.Status {
	case "", "all", entity.SubscriptionStatusActive, entity.SubscriptionStatusUnsubscribed:
	default:
		return nil, filter, &ValidationError{Field: "status", Message: "status must be active or unsubscribed"}
	}

	filter.InterestArea = strings.ToLower(strings.TrimSpace(filter.InterestArea))
	if filter.InterestArea != "" && !validate.IsInterestArea(filter.InterestArea) {
		return nil, filter, &ValidationError{Field: "interest_area", Message: MsgInvalidInterestArea}
	}

	filter.Limit, filter.Offset = dto.ClampPage(filter.Limit, filter.Offset)
	rows, err := s.subscriptions.List(ctx, filter)
	if err != nil {
		return nil, filter, fmt.Errorf("list subscriptions: %w", err)
	}
	if rows == nil {
		rows = []entity.Subscription{}
	}
	return rows, filter, nil
}
