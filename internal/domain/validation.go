package domain

import (
	"errors"
	"html"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// plainText strips every tag from admin supplied text.
var plainText = bluemonday.StrictPolicy()

// maxSanitizePasses bounds the strip/decode loop for nested entity escaping.
const maxSanitizePasses = 4

// SanitizeText turns free-form admin input into a single line of plain text:
// markup removed, entities decoded, whitespace runs collapsed. Markup hidden
// behind entities is stripped once decoded.
func SanitizeText(s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		out := html.UnescapeString(plainText.Sanitize(s))
		if out == s {
			break
		}
		s = out
	}
	return strings.Join(strings.Fields(s), " ")
}

// FieldError describes one rejected form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// newValidator returns a validator knowing the banner specific tags:
//
//	hexcolor6      "#rrggbb", case-insensitive
//	stickydatetime "YYYY-MM-DD HH:MM" or "YYYY-MM-DDTHH:MM"
//
// Field names in errors come from the `form` struct tag.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return IsValidColor(fl.Field().String())
	})
	_ = v.RegisterValidation("stickydatetime", func(fl validator.FieldLevel) bool {
		return IsValidExpiryInput(fl.Field().String())
	})
	return v
}

// invalidFields runs struct validation and returns the names of failing fields.
func invalidFields(v *validator.Validate, s interface{}) (map[string]bool, error) {
	err := v.Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.Field()] = true
	}
	return failed, nil
}
