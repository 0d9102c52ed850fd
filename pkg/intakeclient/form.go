// Package intakeclient is a headless rendition of the website's intake forms. A Form collects
// field values, validates them with the same rules the API applies, submits once per call and
// moves through idle, loading, success and error states.
package intakeclient

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bondspire/intake-api/pkg/validate"
)

// DefaultErrorDisplay is how long the error state is shown before the form returns to idle.
const DefaultErrorDisplay = 5 * time.Second

// ErrBusy is returned for edits and submissions while a request is in flight.
var ErrBusy = errors.New("intakeclient: submission in progress")

// State is the form lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Variant selects which intake form a Form drives.
type Variant string

const (
	Contact     Variant = "contact"
	Newsletter  Variant = "newsletter"
	Partnership Variant = "partnership"
)

type variantConfig struct {
	path     string
	fields   []string
	fallback string
	success  string
	// successWindow returns the form to idle after a success, like the error state.
	successWindow bool
}

var variants = map[Variant]variantConfig{
	Contact: {
		path:     "/api/contact",
		fields:   []string{"name", "email", "phone", "subject", "message", "howDidYouHear"},
		fallback: "Failed to send message. Please try again or email us directly at team@wearebondspire.com",
		success:  "Thank you for reaching out. We'll get back to you within 24 hours.",
	},
	Newsletter: {
		path:          "/api/newsletter-signup",
		fields:        []string{"email", "firstName", "interestArea"},
		fallback:      "Something went wrong. Please try again or contact us directly.",
		success:       "Thank you for subscribing. Check your email for a welcome message with next steps.",
		successWindow: true,
	},
	Partnership: {
		path:     "/api/partnership",
		fields:   []string{"organizationName", "name", "email", "phone", "website", "message"},
		fallback: "Failed to send partnership inquiry. Please try again or email us directly at partnerships@wearebondspire.com",
		success:  "Thank you for your interest in partnering with Bondspire. Our partnerships team will review your inquiry and get back to you within 3-5 business days.",
	},
}

// Path returns the endpoint the variant submits to.
func (v Variant) Path() string {
	return variants[v].path
}

// FieldErrors maps field names to the message shown next to them.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Option configures a Form.
type Option func(*Form)

// WithTimeout bounds each submission. Zero or negative keeps DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Form) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithErrorDisplay sets how long the error state lasts.
func WithErrorDisplay(d time.Duration) Option {
	return func(f *Form) {
		if d > 0 {
			f.errorDisplay = d
		}
	}
}

// OnSuccess registers a callback invoked after a successful submission.
func OnSuccess(fn func(Response)) Option {
	return func(f *Form) {
		f.onSuccess = fn
	}
}

// Form is safe for concurrent use.
type Form struct {
	variant      Variant
	cfg          variantConfig
	poster       Poster
	timeout      time.Duration
	errorDisplay time.Duration
	onSuccess    func(Response)

	mu          sync.Mutex
	values      map[string]string
	types       []string
	state       State
	message     string
	fieldErrors FieldErrors
	generation  uint64
}

// NewForm builds a form for variant that submits through poster.
func NewForm(variant Variant, poster Poster, opts ...Option) (*Form, error) {
	cfg, ok := variants[variant]
	if !ok {
		return nil, fmt.Errorf("unknown form variant %q", variant)
	}
	if poster == nil {
		return nil, errors.New("poster must not be nil")
	}
	f := &Form{
		variant:      variant,
		cfg:          cfg,
		poster:       poster,
		timeout:      DefaultTimeout,
		errorDisplay: DefaultErrorDisplay,
		values:       make(map[string]string, len(cfg.fields)),
		state:        StateIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Set updates a field value. Inputs are locked while loading.
func (f *Form) Set(field, value string) error {
	if !f.hasField(field) {
		return fmt.Errorf("unknown field %q for %s form", field, f.variant)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateLoading {
		return ErrBusy
	}
	f.values[field] = value
	return nil
}

// TogglePartnershipType checks or unchecks a partnership category.
func (f *Form) TogglePartnershipType(id string, checked bool) error {
	if f.variant != Partnership {
		return fmt.Errorf("%s form has no partnership types", f.variant)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateLoading {
		return ErrBusy
	}
	kept := f.types[:0:0]
	for _, t := range f.types {
		if t != id {
			kept = append(kept, t)
		}
	}
	if checked {
		kept = append(kept, id)
	}
	f.types = kept
	return nil
}

// Values returns a copy of the current field values.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// PartnershipTypes returns the checked partnership categories.
func (f *Form) PartnershipTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.types...)
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Message returns the confirmation or fallback message for the current state.
func (f *Form) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// FieldErrors returns the errors from the last local validation.
func (f *Form) FieldErrors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(FieldErrors, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = v
	}
	return out
}

// Submit validates locally and, when the values pass, posts them once. Local failures return
// FieldErrors without a network call. Server or transport failures put the form in the error
// state for the display window and keep the values; success clears them.
func (f *Form) Submit(ctx context.Context) (*Response, error) {
	f.mu.Lock()
	if f.state == StateLoading {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	if errs := f.validateLocked(); len(errs) > 0 {
		f.fieldErrors = errs
		f.mu.Unlock()
		return nil, errs
	}
	f.fieldErrors = nil
	f.state = StateLoading
	f.message = ""
	f.generation++
	gen := f.generation
	payload := f.payloadLocked()
	f.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	resp, err := f.poster.PostJSON(ctx, f.cfg.path, payload)
	if err == nil && (resp == nil || !resp.Success) {
		err = &StatusError{StatusCode: statusOf(resp), Message: messageOf(resp)}
	}

	f.mu.Lock()
	if err != nil {
		f.state = StateError
		f.message = f.cfg.fallback
		f.resetAfterLocked(f.errorDisplay, gen)
		f.mu.Unlock()
		return resp, err
	}

	f.state = StateSuccess
	f.message = resp.Message
	if f.message == "" {
		f.message = f.cfg.success
	}
	f.values = make(map[string]string, len(f.cfg.fields))
	f.types = nil
	if f.cfg.successWindow {
		f.resetAfterLocked(f.errorDisplay, gen)
	}
	cb := f.onSuccess
	f.mu.Unlock()

	if cb != nil {
		cb(*resp)
	}
	return resp, nil
}

func (f *Form) resetAfterLocked(d time.Duration, gen uint64) {
	time.AfterFunc(d, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.generation != gen || f.state == StateLoading {
			return
		}
		f.state = StateIdle
		f.message = ""
	})
}

func (f *Form) validateLocked() FieldErrors {
	errs := FieldErrors{}
	v := f.values

	checkEmail := func() {
		switch {
		case !validate.IsNonEmpty(v["email"]):
			errs["email"] = "Email is required"
		case !validate.IsValidEmail(strings.TrimSpace(v["email"])):
			errs["email"] = "Please enter a valid email address"
		}
	}
	checkPhone := func() {
		if validate.IsNonEmpty(v["phone"]) && !validate.IsValidPhone(strings.TrimSpace(v["phone"])) {
			errs["phone"] = "Please enter a valid phone number"
		}
	}

	switch f.variant {
	case Contact:
		if !validate.IsNonEmpty(v["name"]) {
			errs["name"] = "Name is required"
		}
		checkEmail()
		switch {
		case !validate.IsNonEmpty(v["message"]):
			errs["message"] = "Message is required"
		case !validate.HasMinLength(v["message"], validate.ContactMessageMinLength):
			errs["message"] = "Message must be at least 10 characters long"
		}
		checkPhone()
	case Newsletter:
		checkEmail()
		if area := strings.TrimSpace(v["interestArea"]); area != "" && !validate.IsInterestArea(area) {
			errs["interestArea"] = "Please select a valid interest area"
		}
	case Partnership:
		if !validate.IsNonEmpty(v["organizationName"]) {
			errs["organizationName"] = "Organization name is required"
		}
		if !validate.IsNonEmpty(v["name"]) {
			errs["name"] = "Contact name is required"
		}
		checkEmail()
		if !validate.IsNonEmpty(v["message"]) {
			errs["message"] = "Please tell us about your partnership interest"
		}
		if len(f.types) == 0 {
			errs["partnershipType"] = "Please select at least one partnership type"
		} else {
			for _, t := range f.types {
				if !validate.IsPartnershipType(t) {
					errs["partnershipType"] = "Please select a valid partnership type"
					break
				}
			}
		}
		checkPhone()
	}
	return errs
}

func (f *Form) payloadLocked() map[string]any {
	payload := make(map[string]any, len(f.values)+2)
	for k, v := range f.values {
		payload[k] = v
	}
	switch f.variant {
	case Contact:
		payload["formType"] = "contact"
	case Partnership:
		payload["partnershipType"] = append([]string{}, f.types...)
	}
	return payload
}

func (f *Form) hasField(field string) bool {
	for _, name := range f.cfg.fields {
		if name == field {
			return true
		}
	}
	return false
}

func statusOf(r *Response) int {
	if r == nil {
		return 0
	}
	return r.StatusCode
}

func messageOf(r *Response) string {
	if r == nil {
		return ""
	}
	return r.Message
}
