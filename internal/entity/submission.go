package entity

import (
	"time"

	"github.com/google/uuid"
)

// Form types stored in the form_type discriminator column.
const (
	FormTypeContact     = "contact"
	FormTypePartnership = "partnership"
)

// Submission statuses. The intake pipeline only ever writes SubmissionStatusNew.
const (
	SubmissionStatusNew        = "new"
	SubmissionStatusInProgress = "in-progress"
	SubmissionStatusResolved   = "resolved"
)

// Submission is a contact or partnership form entry stored in form_submissions.
type Submission struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            *string   `json:"phone,omitempty"`
	Subject          *string   `json:"subject,omitempty"`
	Message          string    `json:"message"`
	HowDidYouHear    *string   `json:"how_did_you_hear,omitempty"`
	FormType         string    `json:"form_type"`
	OrganizationName *string   `json:"organization_name,omitempty"`
	Website          *string   `json:"website,omitempty"`
	PartnershipType  []string  `json:"partnership_type,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	Status           string    `json:"status"`
}
