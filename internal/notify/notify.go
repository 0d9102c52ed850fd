// Package notify is the side-effect port of the intake pipeline. Endpoints hand events to a
// Dispatcher, which delivers them to a Notifier without holding up the HTTP response.
package notify

import (
	"context"
	"errors"
	"time"
)

// Event kinds emitted by the intake service.
const (
	KindContactSubmitted     = "contact.submitted"
	KindPartnershipSubmitted = "partnership.submitted"
	KindNewsletterSubscribed = "newsletter.subscribed"
)

// Event describes a stored intake record for downstream email or CRM handling.
type Event struct {
	ID               string    `json:"id"`
	Kind             string    `json:"kind"`
	Email            string    `json:"email"`
	Name             string    `json:"name,omitempty"`
	FormType         string    `json:"form_type,omitempty"`
	Subject          string    `json:"subject,omitempty"`
	OrganizationName string    `json:"organization_name,omitempty"`
	PartnershipTypes []string  `json:"partnership_types,omitempty"`
	InterestArea     string    `json:"interest_area,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Notifier delivers a single event.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, event Event) error

// Notify calls f(ctx, event).
func (f NotifierFunc) Notify(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Multi fans an event out to every notifier and joins their errors.
type Multi []Notifier

// Notify delivers to all notifiers even when some of them fail.
func (m Multi) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
