package dto

// ContactRequest is the body of POST /api/contact. FormType defaults to "contact"; a "partnership"
// discriminator switches validation to the PartnershipRequest rules.
type ContactRequest struct {
	Name             string   `json:"name" validate:"nonblank"`
	Email            string   `json:"email" validate:"nonblank,looseemail"`
	Message          string   `json:"message" validate:"nonblank,minrunes=10"`
	Phone            string   `json:"phone" validate:"loosephone"`
	Subject          string   `json:"subject"`
	HowDidYouHear    string   `json:"howDidYouHear"`
	FormType         string   `json:"formType"`
	OrganizationName string   `json:"organizationName"`
	Website          string   `json:"website"`
	PartnershipType  []string `json:"partnershipType" validate:"omitempty,dive,partnershiptype"`
}

// PartnershipRequest is the body of POST /api/partnership.
type PartnershipRequest struct {
	OrganizationName string   `json:"organizationName" validate:"nonblank"`
	Name             string   `json:"name" validate:"nonblank"`
	Email            string   `json:"email" validate:"nonblank,looseemail"`
	Message          string   `json:"message" validate:"nonblank"`
	PartnershipType  []string `json:"partnershipType" validate:"min=1,dive,partnershiptype"`
	Phone            string   `json:"phone" validate:"loosephone"`
	Website          string   `json:"website"`
}

// NewsletterRequest is the body of POST /api/newsletter-signup.
type NewsletterRequest struct {
	Email        string `json:"email" validate:"nonblank,looseemail"`
	FirstName    string `json:"firstName"`
	InterestArea string `json:"interestArea" validate:"interestarea"`
}

// IntakeResponse is the envelope shared by every intake response.
type IntakeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactResponse is returned after a stored contact submission.
type ContactResponse struct {
	IntakeResponse
	SubmissionID string `json:"submissionId"`
}

// PartnershipResponse is returned after a stored partnership inquiry.
type PartnershipResponse struct {
	IntakeResponse
	InquiryID string `json:"inquiryId"`
}

// NewsletterResponse is returned after a new newsletter subscription.
type NewsletterResponse struct {
	IntakeResponse
	SubscriptionID string `json:"subscriptionId"`
}

// EndpointInfo is the static identification payload served on GET.
type EndpointInfo struct {
	Message string `json:"message"`
}
