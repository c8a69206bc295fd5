package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	passwordMinLength = 12
	passwordSymbols   = "-#!$@£%^&*()_+|~=`{}[]:\";'<>?,./\\ "
)

var (
	digitsRE       = regexp.MustCompile(`^[0-9]+$`)
	vehicleModelRE = regexp.MustCompile(`^[A-Za-z0-9_\-]{3,}$`)
	vehicleImageRE = regexp.MustCompile(`^/images/vehicles/[a-zA-Z0-9_\-]{3,}\.[a-zA-Z]{3,4}$`)
	// numeric(12,2) holds ten whole digits.
	priceRE        = regexp.MustCompile(`^[0-9]{1,10}(\.[0-9]{2})?$`)
	// Nine digits stay below the 32-bit integer column limit.
	mileageRE      = regexp.MustCompile(`^[0-9]{1,9}$`)
)

// formatRules are the pure string predicates registered as custom tags.
var formatRules = map[string]validator.Func{
	"digits":         matches(digitsRE),
	"vehiclemodel":   matches(vehicleModelRE),
	"vehicleimage":   matches(vehicleImageRE),
	"price":          matches(priceRE),
	"mileage":        matches(mileageRE),
	"strongpassword": func(fl validator.FieldLevel) bool { return StrongPassword(fl.Field().String()) },
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// StrongPassword requires at least 12 characters with a lowercase letter,
// an uppercase letter, a digit and a symbol.
func StrongPassword(pw string) bool {
	if utf8.RuneCountInString(pw) < passwordMinLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
