package errors

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ValidationError collects validation errors for multiple fields and can convert
// itself to a standard Error with InvalidArgument code.
type ValidationError struct {
	// Fields maps field names to their validation error messages
	Fields map[string][]string `json:"fields"`
}

// Error implements the error interface. Fields are listed in sorted order so
// messages are stable across runs.
func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return "validation failed"
	}

	names := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		names = append(names, field)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, field := range names {
		parts[i] = fmt.Sprintf("%s: %s", field, strings.Join(v.Fields[field], ", "))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// NewValidationError creates a new validation error
func NewValidationError() *ValidationError {
	return &ValidationError{
		Fields: make(map[string][]string),
	}
}

// AddFieldError adds an error for a specific field
func (v *ValidationError) AddFieldError(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

// AddFieldErrorf adds a formatted error for a specific field
func (v *ValidationError) AddFieldErrorf(field, format string, args ...interface{}) {
	v.AddFieldError(field, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any validation errors
func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// ToError converts the validation error to our standard error type
func (v *ValidationError) ToError() *Error {
	if !v.HasErrors() {
		return nil
	}

	return InvalidArgument(v.Error()).WithMeta("validation_errors", v.Fields)
}

// ValidationBuilder accumulates field-level validation errors. Build returns
// nil if nothing was recorded, or an InvalidArgument error with the details.
type ValidationBuilder struct {
	err *ValidationError
}

// NewValidationBuilder creates a new validation builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{
		err: NewValidationError(),
	}
}

// Field adds a validation error for a field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.err.AddFieldError(field, message)
	return vb
}

// Fieldf adds a formatted validation error for a field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...interface{}) *ValidationBuilder {
	vb.err.AddFieldErrorf(field, format, args...)
	return vb
}

// RequiredField adds a required field error
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// Build returns the error if there are validation errors, nil otherwise
func (vb *ValidationBuilder) Build() error {
	if vb.err.HasErrors() {
		return vb.err.ToError()
	}
	return nil
}

// ValidateRequired checks if a string field is set
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// validateFinite rejects NaN and infinite values
func validateFinite(field string, value float64, vb *ValidationBuilder) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		vb.Field(field, "must be a finite number")
		return false
	}
	return true
}

// ValidatePositive checks that a float is finite and > 0
func ValidatePositive(field string, value float64, vb *ValidationBuilder) {
	if validateFinite(field, value, vb) && value <= 0 {
		vb.Fieldf(field, "must be positive, got %v", value)
	}
}

// ValidateNonNegative checks that a float is finite and >= 0
func ValidateNonNegative(field string, value float64, vb *ValidationBuilder) {
	if validateFinite(field, value, vb) && value < 0 {
		vb.Fieldf(field, "must not be negative, got %v", value)
	}
}

// ValidateHalfOpen checks that min <= value < max
func ValidateHalfOpen(field string, value, minValue, maxValue float64, vb *ValidationBuilder) {
	if validateFinite(field, value, vb) && (value < minValue || value >= maxValue) {
		vb.Fieldf(field, "must be in [%v, %v), got %v", minValue, maxValue, value)
	}
}
