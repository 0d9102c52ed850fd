package dto

import "time"

// Listing page bounds.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// SubmissionFilter narrows the admin listing of form submissions.
type SubmissionFilter struct {
	FormType string
	Status   string
	Since    *time.Time
	Limit    int
	Offset   int
}

// SubscriptionFilter narrows the admin listing of newsletter subscriptions.
type SubscriptionFilter struct {
	Status       string
	InterestArea string
	Limit        int
	Offset       int
}

// Pagination echoes the effective paging window back to the caller.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// ClampPage applies the listing defaults: a non-positive limit becomes DefaultPageLimit, limits
// above MaxPageLimit are capped and negative offsets become zero.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
