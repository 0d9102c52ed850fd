package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bondspire/intake-api/internal/dto"
	"github.com/bondspire/intake-api/internal/entity"
	"github.com/bondspire/intake-api/internal/metrics"
	"github.com/bondspire/intake-api/internal/notify"
	"github.com/bondspire/intake-api/internal/repository"
	"github.com/bondspire/intake-api/pkg/validate"
)

// Metric form labels.
const (
	formContact     = "contact"
	formPartnership = "partnership"
	formNewsletter  = "newsletter"
)

// EventDispatcher hands events to the notification port without blocking.
type EventDispatcher interface {
	Dispatch(event notify.Event)
}

// IntakeService validates, normalizes and stores form submissions, then fires notifications.
type IntakeService struct {
	submissions   repository.SubmissionsRepository
	subscriptions repository.SubscriptionsRepository
	dispatcher    EventDispatcher
	schema        *validator.Validate
	phoneRegion   string
	now           func() time.Time
}

// IntakeOption configures optional dependencies.
type IntakeOption func(*IntakeService)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) IntakeOption {
	return func(s *IntakeService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPhoneRegion sets the region assumed for phone numbers without a country code.
func WithPhoneRegion(region string) IntakeOption {
	return func(s *IntakeService) {
		if region = strings.TrimSpace(region); region != "" {
			s.phoneRegion = region
		}
	}
}

// NewIntakeService wires the intake pipeline. A nil dispatcher disables notifications.
func NewIntakeService(submissions repository.SubmissionsRepository, subscriptions repository.SubscriptionsRepository, dispatcher EventDispatcher, opts ...IntakeOption) *IntakeService {
	s := &IntakeService{
		submissions:   submissions,
		subscriptions: subscriptions,
		dispatcher:    dispatcher,
		schema:        validate.NewSchema(),
		phoneRegion:   notify.DefaultPhoneRegion,
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitContact handles the contact form. A "partnership" discriminator switches to the
// partnership rule set; any other non-empty discriminator is rejected.
func (s *IntakeService) SubmitContact(ctx context.Context, req dto.ContactRequest) (*entity.Submission, error) {
	formType := strings.ToLower(strings.TrimSpace(req.FormType))
	switch formType {
	case "", entity.FormTypeContact:
		formType = entity.FormTypeContact
		if err := check(s.schema, req, contactRules); err != nil {
			return nil, s.rejected(formContact, err)
		}
	case entity.FormTypePartnership:
		if err := check(s.schema, partnershipFromContact(req), partnershipRules); err != nil {
			return nil, s.rejected(formPartnership, err)
		}
	default:
		return nil, s.rejected(formContact, &ValidationError{Field: "formType", Message: MsgInvalidFormType})
	}

	submission := &entity.Submission{
		Name:             strings.TrimSpace(req.Name),
		Email:            normalizeEmail(req.Email),
		Phone:            optional(req.Phone),
		Subject:          optional(req.Subject),
		Message:          strings.TrimSpace(req.Message),
		HowDidYouHear:    optional(req.HowDidYouHear),
		FormType:         formType,
		OrganizationName: optional(req.OrganizationName),
		Website:          normalizeWebsite(req.Website),
		PartnershipType:  normalizeSet(req.PartnershipType),
	}
	return s.store(ctx, submission)
}

// SubmitPartnership handles the partnership inquiry form.
func (s *IntakeService) SubmitPartnership(ctx context.Context, req dto.PartnershipRequest) (*entity.Submission, error) {
	if err := check(s.schema, req, partnershipRules); err != nil {
		return nil, s.rejected(formPartnership, err)
	}

	submission := &entity.Submission{
		Name:             strings.TrimSpace(req.Name),
		Email:            normalizeEmail(req.Email),
		Phone:            optional(req.Phone),
		Message:          strings.TrimSpace(req.Message),
		FormType:         entity.FormTypePartnership,
		OrganizationName: optional(req.OrganizationName),
		Website:          normalizeWebsite(req.Website),
		PartnershipType:  normalizeSet(req.PartnershipType),
	}
	return s.store(ctx, submission)
}

// Subscribe handles the newsletter signup form. Any existing row for the email, active or
// unsubscribed, is a conflict; the storage unique constraint settles concurrent signups.
func (s *IntakeService) Subscribe(ctx context.Context, req dto.NewsletterRequest) (*entity.Subscription, error) {
	if err := check(s.schema, req, newsletterRules); err != nil {
		return nil, s.rejected(formNewsletter, err)
	}

	email := normalizeEmail(req.Email)
	if _, err := s.subscriptions.FindByEmail(ctx, email); err == nil {
		metrics.ObserveSubmission(formNewsletter, metrics.ResultConflict)
		return nil, ErrAlreadySubscribed
	} else if !errors.Is(err, repository.ErrSubscriptionNotFound) {
		metrics.ObserveSubmission(formNewsletter, metrics.ResultFailed)
		return nil, fmt.Errorf("lookup subscription: %w", err)
	}

	interest := strings.TrimSpace(req.InterestArea)
	if interest == "" {
		interest = entity.DefaultInterestArea
	}

	subscription := &entity.Subscription{
		Email:        email,
		FirstName:    optional(req.FirstName),
		InterestArea: interest,
		SubscribedAt: s.now(),
		Status:       entity.SubscriptionStatusActive,
		Source:       entity.SubscriptionSourceWebsite,
	}
	if err := s.subscriptions.Create(ctx, subscription); err != nil {
		if errors.Is(err, repository.ErrEmailAlreadySubscribed) {
			metrics.ObserveSubmission(formNewsletter, metrics.ResultConflict)
			return nil, ErrAlreadySubscribed
		}
		metrics.ObserveSubmission(formNewsletter, metrics.ResultFailed)
		return nil, fmt.Errorf("store subscription: %w", err)
	}
	metrics.ObserveSubmission(formNewsletter, metrics.ResultAccepted)

	event := notify.Event{
		ID:           subscription.ID.String(),
		Kind:         notify.KindNewsletterSubscribed,
		Email:        subscription.Email,
		Name:         deref(subscription.FirstName),
		InterestArea: subscription.InterestArea,
		OccurredAt:   subscription.SubscribedAt,
	}
	s.dispatch(event)

	return subscription, nil
}

func (s *IntakeService) store(ctx context.Context, submission *entity.Submission) (*entity.Submission, error) {
	form := submission.FormType
	submission.Status = entity.SubmissionStatusNew
	submission.Timestamp = s.now()

	if err := s.submissions.Create(ctx, submission); err != nil {
		metrics.ObserveSubmission(form, metrics.ResultFailed)
		return nil, fmt.Errorf("store %s submission: %w", form, err)
	}
	metrics.ObserveSubmission(form, metrics.ResultAccepted)

	kind := notify.KindContactSubmitted
	if form == entity.FormTypePartnership {
		kind = notify.KindPartnershipSubmitted
	}
	s.dispatch(notify.Event{
		ID:               submission.ID.String(),
		Kind:             kind,
		Email:            submission.Email,
		Name:             submission.Name,
		FormType:         form,
		Subject:          deref(submission.Subject),
		OrganizationName: deref(submission.OrganizationName),
		PartnershipTypes: submission.PartnershipType,
		Phone:            s.eventPhone(submission.Phone),
		OccurredAt:       submission.Timestamp,
	})

	return submission, nil
}

func (s *IntakeService) dispatch(event notify.Event) {
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(event)
	}
}

func (s *IntakeService) rejected(form string, err error) error {
	if IsValidationError(err) {
		metrics.ObserveSubmission(form, metrics.ResultInvalid)
	} else {
		metrics.ObserveSubmission(form, metrics.ResultFailed)
	}
	return err
}

// eventPhone prefers the E.164 form and falls back to the stored text.
func (s *IntakeService) eventPhone(phone *string) string {
	raw := deref(phone)
	if e164 := notify.E164(raw, s.phoneRegion); e164 != "" {
		return e164
	}
	return raw
}

func partnershipFromContact(req dto.ContactRequest) dto.PartnershipRequest {
	return dto.PartnershipRequest{
		OrganizationName: req.OrganizationName,
		Name:             req.Name,
		Email:            req.Email,
		Message:          req.Message,
		PartnershipType:  req.PartnershipType,
		Phone:            req.Phone,
		Website:          req.Website,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// normalizeSet trims and de-duplicates tags, keeping first-seen order. Empty input yields nil.
func normalizeSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
