package pipeline

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cse-motors/dealership/internal/api/metrics"
	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/api/validation"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/domain"
)

const tracerName = "github.com/cse-motors/dealership/internal/api/pipeline"

// NavFunc builds the navigation markup of a page.
type NavFunc func(ctx context.Context) (template.HTML, error)

// Runner holds what every run shares.
type Runner struct {
	validator *validation.Validator
	nav       NavFunc
	cookies   middleware.CookieOptions
	log       zerolog.Logger
	tracer    trace.Tracer
}

// NewRunner wires a Runner. cookies must carry the token lifetime.
func NewRunner(v *validation.Validator, nav NavFunc, cookies middleware.CookieOptions, log zerolog.Logger) *Runner {
	return &Runner{
		validator: v,
		nav:       nav,
		cookies:   cookies,
		log:       log,
		tracer:    otel.Tracer(tracerName),
	}
}

// Run executes op for the current request and writes exactly one response.
func Run[T any](r *Runner, c echo.Context, op Op[T]) (err error) {
	start := time.Now()
	ctx, span := r.tracer.Start(c.Request().Context(), "pipeline."+op.Name)
	c.SetRequest(c.Request().WithContext(ctx))
	outcome := Failed

	defer func() {
		if p := recover(); p != nil {
			r.log.Error().
				Str("operation", op.Name).
				Str("panic", fmt.Sprint(p)).
				Bytes("stack", debug.Stack()).
				Msg("pipeline panic")
			outcome = Failed
			err = echo.NewHTTPError(http.StatusInternalServerError, systemNotice)
		}
		metrics.PipelineRunsTotal.WithLabelValues(op.Name, string(outcome)).Inc()
		metrics.PipelineDuration.WithLabelValues(op.Name).Observe(time.Since(start).Seconds())
		span.SetAttributes(attribute.String("pipeline.outcome", string(outcome)))
		if outcome == Failed {
			span.SetStatus(codes.Error, "pipeline failed")
		}
		span.End()
	}()

	log := r.log.With().Str("operation", op.Name).Logger()

	form := new(T)
	if err := c.Bind(form); err != nil {
		outcome = Rejected
		log.Debug().Err(err).Msg("bind failed")
		return render(r, c, op, form, http.StatusBadRequest, "Please check your submission and try again.", nil)
	}

	identity := middleware.IdentityFrom(c)
	if op.Authorize != nil {
		if err := op.Authorize(identity, form); err != nil {
			outcome = Rejected
			log.Debug().Err(err).Int64("account_id", identity.AccountID).Msg("submission not authorized")
			return middleware.Deny(c, "owner")
		}
	}

	failures, err := r.validator.Check(ctx, form)
	if err != nil {
		span.RecordError(err)
		log.Error().Err(err).Msg("consistency check failed")
		return render(r, c, op, form, http.StatusInternalServerError, failureNotice(op, form), nil)
	}
	if len(failures) > 0 {
		outcome = Rejected
		for _, f := range failures {
			metrics.ValidationFailuresTotal.WithLabelValues(op.Name, f.Field).Inc()
		}
		log.Debug().Int("failures", len(failures)).Msg("submission rejected")
		return render(r, c, op, form, http.StatusBadRequest, "", failures)
	}

	res, err := op.Apply(ctx, Valid[T]{form: form, identity: identity})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidCredentials):
		outcome = Rejected
		log.Debug().Msg("credentials rejected")
		return render(r, c, op, form, http.StatusBadRequest, credentialNotice, nil)
	case errors.Is(err, domain.ErrHashFailed):
		span.RecordError(err)
		log.Error().Err(err).Msg("password hashing failed")
		return render(r, c, op, form, http.StatusInternalServerError, systemNotice, nil)
	default:
		span.RecordError(err)
		log.Error().Err(err).Msg("mutation failed")
		return render(r, c, op, form, http.StatusInternalServerError, failureNotice(op, form), nil)
	}

	outcome = Succeeded
	if res.Session != "" {
		middleware.SetSessionCookie(c, res.Session, r.cookies)
	}
	if res.ClearSession {
		middleware.ClearSessionCookie(c)
	}
	if res.Notice != "" {
		view.SetFlash(c, res.Notice)
	}
	redirect := res.Redirect
	if redirect == "" {
		redirect = "/"
	}
	return c.Redirect(http.StatusSeeOther, redirect)
}

func failureNotice[T any](op Op[T], form *T) string {
	if op.FailureNotice == nil {
		return defaultFailure
	}
	return op.FailureNotice(form)
}

// render writes the originating form again with the notice, the failures
// and the echoed values of the submission.
func render[T any](r *Runner, c echo.Context, op Op[T], form *T, status int, notice string, failures []domain.FieldError) error {
	ctx := c.Request().Context()
	spec := op.Form(form)

	data := view.Data{
		Title:    spec.Title,
		Notice:   notice,
		Errors:   failures,
		Identity: middleware.IdentityFrom(c),
	}
	if op.Echo != nil {
		data.Fields = op.Echo(form)
	}
	if r.nav != nil {
		nav, err := r.nav(ctx)
		if err != nil {
			r.log.Warn().Err(err).Msg("navigation unavailable")
		}
		data.Nav = nav
	}
	if op.Decorate != nil {
		if err := op.Decorate(ctx, form, &data); err != nil {
			r.log.Warn().Err(err).Str("operation", op.Name).Msg("form data unavailable")
		}
	}
	return c.Render(status, spec.View, data)
}
