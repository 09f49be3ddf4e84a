package content

import (
	"errors"
	"fmt"

	"portfolio-cms/pkg/models"
)

// ConfigurationError means the required backing store is not configured
// and no fallback was permitted.
type ConfigurationError struct {
	Kind   models.Kind
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s storage is not configured: %s", e.Kind, e.Reason)
}

// ValidationError names the first mandatory field that is missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type DuplicateSlugError struct {
	Kind models.Kind
	Slug string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("a record in %s with slug %q already exists", e.Kind, e.Slug)
}

type NotFoundError struct {
	Kind models.Kind
	Slug string
}

func (e *NotFoundError) Error() string {
	slug := e.Slug
	if slug == "" {
		slug = "(missing slug)"
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, slug)
}

// ReorderError reports the first item of a reorder batch that failed.
// Items after Index were not applied.
type ReorderError struct {
	Index int
	Slug  string
	Err   error
}

func (e *ReorderError) Error() string {
	return fmt.Sprintf("reorder failed at item %d (%s): %v", e.Index, e.Slug, e.Err)
}

func (e *ReorderError) Unwrap() error { return e.Err }

func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsDuplicateSlug(err error) bool {
	var target *DuplicateSlugError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
