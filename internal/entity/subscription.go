package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subscription statuses.
const (
	SubscriptionStatusActive       = "active"
	SubscriptionStatusUnsubscribed = "unsubscribed"
)

// SubscriptionSourceWebsite marks subscriptions created through the public signup form.
const SubscriptionSourceWebsite = "website"

// DefaultInterestArea applies when the subscriber does not pick one.
const DefaultInterestArea = "all"

// Subscription is a newsletter signup keyed by its unique email address.
type Subscription struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    *string   `json:"first_name,omitempty"`
	InterestArea string    `json:"interest_area"`
	SubscribedAt time.Time `json:"subscribed_at"`
	Status       string    `json:"status"`
	Source       string    `json:"source"`
}
