package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/vasapolrittideah/upsy-api/shared/apperror"
)

var (
	personNameRegex = regexp.MustCompile(`^[a-zA-Z\s.]+$`)
	mobileRegex     = regexp.MustCompile(`^[6-9]\d{9}$`)
	aadharRegex     = regexp.MustCompile(`^\d{12}$`)
	panRegex        = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	siteEmailRegex  = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

// customRule is a validation tag together with the message shown when it fails.
type customRule struct {
	tag     string
	fn      validator.Func
	message string
}

var customRules = []customRule{
	{
		tag:     "person_name",
		fn:      matchString(personNameRegex),
		message: "Name should only contain letters, spaces, and dots",
	},
	{
		tag:     "mobile_in",
		fn:      matchString(mobileRegex),
		message: "Please enter a valid 10-digit mobile number",
	},
	{
		tag:     "aadhar",
		fn:      matchString(aadharRegex),
		message: "Please enter a valid 12-digit Aadhar number",
	},
	{
		tag:     "pan",
		fn:      matchString(panRegex),
		message: "Please enter a valid PAN number (e.g., ABCDE1234F)",
	},
	{
		tag:     "site_email",
		fn:      matchString(siteEmailRegex),
		message: "Please enter a valid email address",
	},
	{
		tag:     "strong_password",
		fn:      strongPassword,
		message: "Password must contain at least one uppercase letter, one lowercase letter, and one number",
	},
	{
		tag:     "phone_digits",
		fn:      phoneDigits,
		message: "Phone number must be 10-15 digits",
	},
	{
		tag:     "accepted",
		fn:      func(fl validator.FieldLevel) bool { return fl.Field().Kind() == reflect.Bool && fl.Field().Bool() },
		message: "You must agree to the terms and conditions",
	},
}

// Validator validates request payloads and renders failures as per-field
// English messages keyed by the JSON field name.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with the English translations and every custom rule
// registered.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	for _, rule := range customRules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return nil, err
		}
		if err := registerMessage(validate, trans, rule.tag, rule.message); err != nil {
			return nil, err
		}
	}

	if err := registerMessage(validate, trans, "eqfield", "{0} must match {1}"); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates s. It returns nil or an *apperror.Error of kind Validation
// whose message is "Validation failed".
func (v *Validator) Struct(s any) error {
	details, err := v.fieldErrors(s)
	if err != nil || len(details) == 0 {
		return err
	}

	return apperror.Validation("Validation failed", details...)
}

// StructFirst validates s like Struct, but uses the first field message as the
// error message.
func (v *Validator) StructFirst(s any) error {
	details, err := v.fieldErrors(s)
	if err != nil || len(details) == 0 {
		return err
	}

	return apperror.Validation(details[0].Message, details...)
}

// Var validates a single value against tag.
func (v *Validator) Var(field any, tag string) bool {
	return v.validate.Var(field, tag) == nil
}

func (v *Validator) fieldErrors(s any) ([]apperror.FieldError, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, apperror.Internal(err)
	}

	details := make([]apperror.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		details = append(details, apperror.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fe.Translate(v.trans),
		})
	}

	return details, nil
}

// fieldPath drops the struct name from a namespace such as
// "SignupRequest.programs[0]".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func registerMessage(validate *validator.Validate, trans ut.Translator, tag, message string) error {
	return validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
		return ut.Add(tag, message, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, err := ut.T(tag, fe.Field(), fe.Param())
		if err != nil {
			return fe.Error()
		}
		return t
	})
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func strongPassword(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func phoneDigits(fl validator.FieldLevel) bool {
	n := len(DigitsOnly(fl.Field().String()))
	return n >= 10 && n <= 15
}

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
