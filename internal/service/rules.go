package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bondspire/intake-api/pkg/validate"
)

// User-facing validation messages.
const (
	MsgContactRequired      = "Name, email, and message are required"
	MsgPartnershipRequired  = "Organization name, contact name, email, and message are required"
	MsgEmailRequired        = "Email is required"
	MsgInvalidEmail         = "Please enter a valid email address"
	MsgMessageTooShort      = "Message must be at least 10 characters long"
	MsgInvalidPhone         = "Please enter a valid phone number"
	MsgPartnershipTypeEmpty = "Please select at least one partnership type"
	MsgInvalidPartnership   = "Please select a valid partnership type"
	MsgInvalidInterestArea  = "Please select a valid interest area"
	MsgInvalidFormType      = "Invalid form type"
	MsgAlreadySubscribed    = "This email is already subscribed"
)

// rule is one failure category. Rules are checked in order and the first category with a
// matching field error wins, so a submission gets a single message.
type rule struct {
	message string
	fields  []string
	tag     string
}

func (r rule) matches(fe validator.FieldError) bool {
	if fe.Tag() != r.tag {
		return false
	}
	if len(r.fields) == 0 {
		return true
	}
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	for _, f := range r.fields {
		if f == name {
			return true
		}
	}
	return false
}

var contactRules = []rule{
	{message: MsgContactRequired, fields: []string{"name", "email", "message"}, tag: validate.TagNonBlank},
	{message: MsgInvalidEmail, fields: []string{"email"}, tag: validate.TagLooseEmail},
	{message: MsgMessageTooShort, fields: []string{"message"}, tag: validate.TagMinRunes},
	{message: MsgInvalidPhone, fields: []string{"phone"}, tag: validate.TagLoosePhone},
	{message: MsgInvalidPartnership, fields: []string{"partnershipType"}, tag: validate.TagPartnershipType},
}

var partnershipRules = []rule{
	{message: MsgPartnershipRequired, fields: []string{"organizationName", "name", "email", "message"}, tag: validate.TagNonBlank},
	{message: MsgPartnershipTypeEmpty, fields: []string{"partnershipType"}, tag: "min"},
	{message: MsgInvalidEmail, fields: []string{"email"}, tag: validate.TagLooseEmail},
	{message: MsgInvalidPartnership, fields: []string{"partnershipType"}, tag: validate.TagPartnershipType},
	{message: MsgInvalidPhone, fields: []string{"phone"}, tag: validate.TagLoosePhone},
}

var newsletterRules = []rule{
	{message: MsgEmailRequired, fields: []string{"email"}, tag: validate.TagNonBlank},
	{message: MsgInvalidEmail, fields: []string{"email"}, tag: validate.TagLooseEmail},
	{message: MsgInvalidInterestArea, fields: []string{"interestArea"}, tag: validate.TagInterestArea},
}

// check validates payload against its struct tags and converts the outcome into the first
// matching rule category.
func check(schema *validator.Validate, payload any, rules []rule) error {
	err := schema.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate payload: %w", err)
	}

	for _, r := range rules {
		for _, fe := range fieldErrs {
			if r.matches(fe) {
				return &ValidationError{Field: fe.Field(), Message: r.message}
			}
		}
	}

	// A tag without a category still rejects the payload.
	return &ValidationError{Field: fieldErrs[0].Field(), Message: "Invalid " + fieldErrs[0].Field()}
}
