package validation

import (
	"context"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type sinkKey struct{}

// errSink keeps the first storage error raised inside a consistency tag;
// validator.FuncCtx can only answer true or false.
type errSink struct {
	err error
}

func withSink(ctx context.Context, s *errSink) context.Context {
	return context.WithValue(ctx, sinkKey{}, s)
}

func record(ctx context.Context, err error) {
	if s, ok := ctx.Value(sinkKey{}).(*errSink); ok && s.err == nil {
		s.err = err
	}
}

type consistency struct {
	checker Checker
}

func (c consistency) emailAvailable(ctx context.Context, fl validator.FieldLevel) bool {
	exists, err := c.checker.EmailExists(ctx, fl.Field().String())
	if err != nil {
		record(ctx, err)
		return false
	}
	return !exists
}

// emailAvailableExcept takes the name of the sibling field holding the id of
// the account being edited.
func (c consistency) emailAvailableExcept(ctx context.Context, fl validator.FieldLevel) bool {
	id, ok := siblingInt(fl, fl.Param())
	if !ok {
		return false
	}
	exists, err := c.checker.EmailExistsForOther(ctx, fl.Field().String(), id)
	if err != nil {
		record(ctx, err)
		return false
	}
	return !exists
}

func (c consistency) classificationAvailable(ctx context.Context, fl validator.FieldLevel) bool {
	exists, err := c.checker.ClassificationExists(ctx, fl.Field().String())
	if err != nil {
		record(ctx, err)
		return false
	}
	return !exists
}

func (c consistency) knownClassification(ctx context.Context, fl validator.FieldLevel) bool {
	id, err := strconv.ParseInt(fl.Field().String(), 10, 64)
	if err != nil {
		return false
	}
	known, err := c.checker.ClassificationKnown(ctx, id)
	if err != nil {
		record(ctx, err)
		return false
	}
	return known
}

// passwordMatches takes "<EmailField> <AccountIDField>".
func (c consistency) passwordMatches(ctx context.Context, fl validator.FieldLevel) bool {
	emailField, idField, ok := strings.Cut(fl.Param(), " ")
	if !ok {
		return false
	}
	email, ok := siblingString(fl, emailField)
	if !ok {
		return false
	}
	id, ok := siblingInt(fl, idField)
	if !ok {
		return false
	}
	match, err := c.checker.PasswordMatches(ctx, email, id, fl.Field().String())
	if err != nil {
		record(ctx, err)
		return false
	}
	return match
}

func siblingString(fl validator.FieldLevel, name string) (string, bool) {
	f := reflect.Indirect(fl.Parent()).FieldByName(name)
	if !f.IsValid() || f.Kind() != reflect.String {
		return "", false
	}
	return f.String(), true
}

func siblingInt(fl validator.FieldLevel, name string) (int64, bool) {
	s, ok := siblingString(fl, name)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
