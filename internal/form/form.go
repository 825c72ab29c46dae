// Package form holds the registration form's client-side state machine:
// field values, inline errors, and the submit flow. Validation comes from the
// same rule table the server uses, so the two sides cannot disagree.
package form

import (
	"context"

	"regdesk/internal/registration/models"
	"regdesk/internal/registration/validate"
)

// GeneralError keys response-level errors that belong to no single field.
const GeneralError = "general"

// MessageTransportFailure is shown when the request could not complete or the
// response was not the expected envelope.
const MessageTransportFailure = "Something went wrong. Try again later."

// Submitter issues the registration request. The HTTP client package provides
// the production implementation.
type Submitter interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)
}

// Controller owns the transient form state. It is not safe for concurrent
// use; a form belongs to one interaction at a time.
type Controller struct {
	submitter Submitter

	values         map[validate.Field]string
	errors         map[string]string
	attempted      bool
	successMessage string
}

// NewController builds a Controller with all fields empty.
func NewController(submitter Submitter) *Controller {
	c := &Controller{submitter: submitter}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.values = make(map[validate.Field]string)
	for _, rule := range validate.Rules {
		c.values[rule.Field] = ""
	}
	c.errors = make(map[string]string)
	c.attempted = false
}

// UpdateField overwrites one field's value and clears its inline error so the
// user sees stale feedback disappear while typing.
func (c *Controller) UpdateField(field validate.Field, value string) {
	c.values[field] = value
	delete(c.errors, string(field))
}

// Validate applies the shared rules to the current values. Pure; repeated
// calls on unchanged state return the same mapping.
func (c *Controller) Validate() map[validate.Field]string {
	return validate.Client(c.values)
}

// Submit runs local validation and, only when it passes, issues the
// registration request and maps the response onto the form state. Each
// outcome replaces the error map wholesale, so a stale general message never
// lingers next to fresh field errors or vice versa.
func (c *Controller) Submit(ctx context.Context) {
	c.attempted = true

	if failures := c.Validate(); len(failures) > 0 {
		c.errors = make(map[string]string, len(failures))
		for field, message := range failures {
			c.errors[string(field)] = message
		}
		return
	}

	resp, err := c.submitter.Register(ctx, c.request())
	if err != nil {
		c.errors = map[string]string{GeneralError: MessageTransportFailure}
		return
	}

	if !resp.Success {
		// Keep the values: the user corrects and resubmits.
		c.errors = map[string]string{GeneralError: resp.Message}
		return
	}

	c.successMessage = resp.Message
	c.reset()
}

func (c *Controller) request() models.RegisterRequest {
	return models.RegisterRequest{
		Name:        c.values[validate.FieldName],
		AdmissionNo: c.values[validate.FieldAdmissionNo],
		Branch:      c.values[validate.FieldBranch],
		Phone:       c.values[validate.FieldPhone],
		Email:       c.values[validate.FieldEmail],
	}
}

// Value returns a field's current text.
func (c *Controller) Value(field validate.Field) string {
	return c.values[field]
}

// Error returns the current error message for a field name or GeneralError.
func (c *Controller) Error(name string) string {
	return c.errors[name]
}

// ShowError reports whether a field's inline error should render: only after
// a submit attempt, and only while the field still has an error.
func (c *Controller) ShowError(field validate.Field) bool {
	return c.attempted && c.errors[string(field)] != ""
}

// SuccessMessage returns the message from the last successful registration.
func (c *Controller) SuccessMessage() string {
	return c.successMessage
}
