// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package validation provides struct validation using go-playground/validator
// v10. It keeps a thread-safe singleton validator instance and translates
// validator errors into the API's field-error list.
//
// Example usage:
//
//	var req models.CreateBlogRequest
//	if err := json.NewDecoder(r.Body).Decode(&req); err != nil { ... }
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondValidationError(w, verr.FieldErrors())
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/inkwell-hq/inkwell/internal/models"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the singleton validator instance. The instance caches
// struct metadata, so sharing one across the process is both faster and safe
// for concurrent use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// RequestValidationError is a collection of field validation failures for one
// request payload.
type RequestValidationError struct {
	fields []models.FieldError
}

// Error implements the error interface with a combined message.
func (ve *RequestValidationError) Error() string {
	if len(ve.fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(ve.fields))
	for _, f := range ve.fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// FieldErrors returns the per-field failure list in response order.
func (ve *RequestValidationError) FieldErrors() []models.FieldError {
	return ve.fields
}

// ValidateStruct validates v against its `validate` tags. Returns nil when
// validation passes.
func ValidateStruct(v interface{}) *RequestValidationError {
	err := GetValidator().Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		// Non-struct input is a programming error, not a client error.
		return &RequestValidationError{fields: []models.FieldError{
			{Field: "", Message: "invalid validation target"},
		}}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestValidationError{fields: []models.FieldError{
			{Field: "", Message: err.Error()},
		}}
	}

	fields := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, models.FieldError{
			Field:   fieldName(fe),
			Message: fieldMessage(fe),
		})
	}
	return &RequestValidationError{fields: fields}
}

// fieldName lowercases the first rune of the struct field name so error
// output matches the JSON payload keys (Title -> title, CommentText ->
// commentText).
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// fieldMessage renders a human-readable message for the failed tag.
func fieldMessage(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and numbers", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation on %s", field, fe.Tag())
	}
}
