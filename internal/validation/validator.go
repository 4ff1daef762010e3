package validation

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// PayloadError carries per-field validation messages for the response
// envelope
type PayloadError struct {
	violations map[string][]string
}

func (e *PayloadError) Error() string {
	var sb strings.Builder
	for _, msgs := range e.violations {
		for _, msg := range msgs {
			sb.WriteString(msg)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (e *PayloadError) Violation(field, msg string) {
	e.violations[field] = append(e.violations[field], msg)
}

func (e *PayloadError) Violations() map[string][]string {
	return e.violations
}

type EchoValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// New builds the validator with english translations and the dns
// checking email rule registered
func New() (*EchoValidator, error) {
	validate := validator.New()

	// report fields by their json names so envelope errors match the
	// request payload
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	translator, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("failed to find en translator")
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, fmt.Errorf("failed to register en translations - %w", err)
	}

	if err := validate.RegisterValidation("email_dns", emailDNS); err != nil {
		return nil, fmt.Errorf("failed to register email_dns rule - %w", err)
	}

	err := validate.RegisterTranslation("email_dns", translator,
		func(ut ut.Translator) error {
			return ut.Add("email_dns", "{0} must belong to a resolvable domain", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("email_dns", fe.Field())
			return t
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register email_dns translation - %w", err)
	}

	return &EchoValidator{validator: validate, translator: translator}, nil
}

func (v *EchoValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (v *EchoValidator) payloadError(ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make(map[string][]string)}
	for _, e := range ve {
		pldErr.Violation(e.Field(), e.Translate(v.translator))
	}
	return pldErr
}

// emailDNS rejects addresses whose domain neither has MX records nor
// resolves to a host
func emailDNS(fl validator.FieldLevel) bool {
	addr := fl.Field().String()

	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return false
	}
	host := addr[at+1:]

	if _, err := net.LookupMX(host); err == nil {
		return true
	}
	if _, err := net.LookupHost(host); err == nil {
		return true
	}
	return false
}
