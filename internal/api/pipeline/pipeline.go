// Package pipeline runs every state-changing form submission through the
// same ordered steps: bind, authorize, validate, apply, respond. Each run
// ends in exactly one outcome.
package pipeline

import (
	"context"

	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/domain"
)

// Outcome is the terminal state of a run.
type Outcome string

const (
	Succeeded Outcome = "succeeded"
	Failed    Outcome = "failed"
	Rejected  Outcome = "rejected"
)

const (
	credentialNotice = "Please check your credentials and try again."
	systemNotice     = "Sorry, something went wrong. Please try again."
	defaultFailure   = "Sorry, the request could not be completed."
)

// Form names the page a submission came from; rejected and failed runs
// render it again.
type Form struct {
	View  string
	Title string
}

// Success tells the runner how to finish a run whose mutation went through.
type Success struct {
	Notice   string
	Redirect string
	// Session, when set, is a freshly issued token to hand to the client.
	Session      string
	ClearSession bool
}

// Valid wraps a submission that passed authorization and validation. Only
// the runner constructs it.
type Valid[T any] struct {
	form     *T
	identity domain.Identity
}

// Form returns the normalized submission.
func (v Valid[T]) Form() *T { return v.form }

// Identity returns the caller the submission was authorized for.
func (v Valid[T]) Identity() domain.Identity { return v.identity }

// Op describes one write. Name, Form and Apply are required.
type Op[T any] struct {
	Name string
	Form func(f *T) Form
	// Authorize runs before validation. It returns domain.ErrForbidden when
	// the caller may not submit this particular record.
	Authorize func(id domain.Identity, f *T) error
	// Echo returns the values written back into a re-rendered form. Secrets
	// must not be included.
	Echo func(f *T) map[string]string
	// Decorate adds the auxiliary data a re-rendered form needs.
	Decorate func(ctx context.Context, f *T, data *view.Data) error
	Apply    func(ctx context.Context, v Valid[T]) (Success, error)
	// FailureNotice is shown when the mutation itself fails.
	FailureNotice func(f *T) string
}
