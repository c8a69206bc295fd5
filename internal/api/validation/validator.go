// Package validation holds the field rules and the state-dependent checks
// every submitted form passes before any mutation runs.
package validation

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// Checker answers the questions that need stored state.
type Checker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	EmailExistsForOther(ctx context.Context, email string, exceptID int64) (bool, error)
	ClassificationExists(ctx context.Context, name string) (bool, error)
	ClassificationKnown(ctx context.Context, id int64) (bool, error)
	PasswordMatches(ctx context.Context, email string, accountID int64, password string) (bool, error)
}

// Normalizer is implemented by forms that trim, escape or canonicalize
// their values before the rules run.
type Normalizer interface {
	Normalize()
}

// Errors is the collected set of field failures of one submission.
type Errors []domain.FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validator wraps go-playground/validator with the dealership rule set.
// It also satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator whose consistency tags consult checker.
func New(checker Checker) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	for tag, fn := range formatRules {
		mustRegister(v.RegisterValidation(tag, fn))
	}
	if checker != nil {
		c := consistency{checker: checker}
		mustRegister(v.RegisterValidationCtx("email_available", c.emailAvailable))
		mustRegister(v.RegisterValidationCtx("email_available_except", c.emailAvailableExcept))
		mustRegister(v.RegisterValidationCtx("classification_available", c.classificationAvailable))
		mustRegister(v.RegisterValidationCtx("known_classification", c.knownClassification))
		mustRegister(v.RegisterValidationCtx("password_matches", c.passwordMatches))
	}
	return &Validator{v: v}
}

func mustRegister(err error) {
	if err != nil {
		panic("validation: " + err.Error())
	}
}

// Check normalizes form in place, runs every rule and returns all failures.
// A non-nil error means a consistency check could not reach storage; the
// failures are then incomplete and must not be shown as a verdict.
func (ev *Validator) Check(ctx context.Context, form any) ([]domain.FieldError, error) {
	if n, ok := form.(Normalizer); ok {
		n.Normalize()
	}

	sink := &errSink{}
	err := ev.v.StructCtx(withSink(ctx, sink), form)
	if sink.err != nil {
		return nil, sink.err
	}
	if err == nil {
		return nil, nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, err
	}
	out := make([]domain.FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, domain.FieldError{Field: fe.Field(), Message: fieldError(fe)})
	}
	return out, nil
}

// Validate satisfies the echo.Validator interface.
func (ev *Validator) Validate(i any) error {
	failures, err := ev.Check(context.Background(), i)
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		return Errors(failures)
	}
	return nil
}

// fieldError converts a single ValidationError into the message shown next
// to the form. State-dependent tags carry their own message; everything else
// uses the message of the field.
func fieldError(fe validator.FieldError) string {
	if msg, ok := consistencyMessages[fe.Tag()]; ok {
		return msg
	}
	if msg, ok := fieldMessages[fe.Field()]; ok {
		return msg
	}
	return "Please provide a valid " + strings.ReplaceAll(fe.Field(), "_", " ") + "."
}

var fieldMessages = map[string]string{
	"account_id":          "Invalid account.",
	"account_firstname":   "Please provide a first name.",
	"account_lastname":    "Please provide a last name.",
	"account_email":       "A valid email is required.",
	"account_password":    "Password does not meet requirements.",
	"classification_name": "Please provide a valid classification name.",
	"classification_id":   "Please select a Classification.",
	"inv_id":              "Invalid inventory item.",
	"inv_make":            "Please provide a valid Make.",
	"inv_model":           "Please provide a valid Model.",
	"inv_description":     "Please provide a valid Description.",
	"inv_image":           "Please provide a valid Image Path.",
	"inv_thumbnail":       "Please provide a valid Thumbnail Image Path.",
	"inv_price":           "Please provide a valid Price.",
	"inv_year":            "Please provide a valid Year.",
	"inv_miles":           "Please provide the Miles.",
	"inv_color":           "Please provide a valid Color.",
}

var consistencyMessages = map[string]string{
	"email_available":          "Email already exists. Login, or register with a different email",
	"email_available_except":   "Email already exists. Please choose a different email.",
	"classification_available": "Classification already exists. Please enter a different name.",
	"known_classification":     "Please select an existing Classification.",
	"password_matches":         "Password does not match your account. Delete request rejected!",
}
