package domain

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// OptionsForm is the raw settings form submission.
type OptionsForm struct {
	Title      string `form:"title"`
	Background string `form:"background" validate:"omitempty,hexcolor6"`
	Color      string `form:"color" validate:"omitempty,hexcolor6"`
}

// OptionsEditor validates and stores GlobalOptions.
type OptionsEditor struct {
	store    OptionsStore
	validate *validator.Validate
}

// NewOptionsEditor builds an editor over store.
func NewOptionsEditor(store OptionsStore) *OptionsEditor {
	return &OptionsEditor{store: store, validate: newValidator()}
}

// Current returns the stored options.
func (e *OptionsEditor) Current(ctx context.Context) (GlobalOptions, error) {
	return e.store.GetOptions(ctx)
}

// Save validates form and writes the resulting record.
//
// A blank colour unsets the field. An invalid colour is reported as a
// FieldError and the previously stored value is kept, so the stored record is
// always well formed. The record is written even when field errors occur.
func (e *OptionsEditor) Save(ctx context.Context, form OptionsForm) (GlobalOptions, []FieldError, error) {
	prev, err := e.store.GetOptions(ctx)
	if err != nil {
		return GlobalOptions{}, nil, fmt.Errorf("load options: %w", err)
	}

	form.Background = SanitizeText(form.Background)
	form.Color = SanitizeText(form.Color)

	failed, err := invalidFields(e.validate, form)
	if err != nil {
		return GlobalOptions{}, nil, fmt.Errorf("validate options: %w", err)
	}

	next := GlobalOptions{
		Title:      SanitizeText(form.Title),
		Background: form.Background,
		Color:      form.Color,
	}

	var fieldErrs []FieldError
	if failed["background"] {
		fieldErrs = append(fieldErrs, FieldError{Field: "background", Message: "Insert a valid color for Background"})
		next.Background = prev.Background
	}
	if failed["color"] {
		fieldErrs = append(fieldErrs, FieldError{Field: "color", Message: "Insert a valid color for Color"})
		next.Color = prev.Color
	}

	if err := e.store.SaveOptions(ctx, next); err != nil {
		return GlobalOptions{}, fieldErrs, fmt.Errorf("save options: %w", err)
	}
	return next, fieldErrs, nil
}
