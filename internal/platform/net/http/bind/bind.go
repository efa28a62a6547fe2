// Package bind decodes JSON request bodies and validates them with go-playground/validator
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "activitycal/internal/platform/errors"
	"activitycal/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps decoded request bodies
const MaxBody = 1 << 20

type validatorSvc struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	vOnce sync.Once
	vSvc  validatorSvc
)

func get() validatorSvc {
	vOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = validatorSvc{v: v, trans: trans}
		translate("min", "{0} must be at least {1}")
		translate("max", "{0} must be at most {1}")
	})
	return vSvc
}

// jsonName reports fields by their json names in messages
func jsonName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return f.Name
	}
	return tag
}

// translate registers message for tag. {0} is the field and {1} the tag param
func translate(tag, message string) {
	s := vSvc
	_ = s.v.RegisterTranslation(tag, s.trans,
		func(t ut.Translator) error { return t.Add(tag, message, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// RegisterTag adds a custom string validation with its message. Call it from package init
func RegisterTag(tag, message string, ok func(string) bool) {
	s := get()
	_ = s.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		v := fl.Field().String()
		return v == "" || ok(v)
	})
	translate(tag, message)
}

// Struct validates v and maps the first failure to a validation error naming the field
func Struct(v any) error {
	s := get()
	err := s.v.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", fe.Translate(s.trans)), fe.Field())
	}
	logger.Get().Error().Err(err).Msg("validator internal error")
	return perr.Internalf("validation error")
}

// ParseJSON decodes one JSON value into T, rejecting unknown fields and trailing data, then validates it
func ParseJSON[T any](r *http.Request) (T, error) {
	var dst T
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, perr.JSONErrf("empty body")
		}
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return dst, perr.JSONErrf("unexpected trailing data")
	}
	if err := Struct(dst); err != nil {
		return dst, err
	}
	return dst, nil
}
