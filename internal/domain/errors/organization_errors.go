package errors

import (
	"fmt"
)

// OrganizationError represents errors related to organization business rules
type OrganizationError struct {
	Type           string
	Message        string
	OrganizationID string
	Value          string
	Cause          error
}

func (e *OrganizationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (value: %q)", e.Type, e.Message, e.Value)
	}
	if e.OrganizationID != "" {
		return fmt.Sprintf("%s: %s (organization: %s)", e.Type, e.Message, e.OrganizationID)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *OrganizationError) Unwrap() error {
	return e.Cause
}

// Organization error types
const (
	ErrTypeUnmappedStatus          = "UNMAPPED_STATUS"
	ErrTypeInvalidEnumValue        = "INVALID_ENUM_VALUE"
	ErrTypeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrTypeSlugTaken               = "SLUG_TAKEN"
	ErrTypeInvalidReviewThreshold  = "INVALID_REVIEW_THRESHOLD"
)

// NewUnmappedStatusError creates an error for a status value outside the known set
func NewUnmappedStatusError(value string) *OrganizationError {
	return &OrganizationError{
		Type:    ErrTypeUnmappedStatus,
		Message: "organization status has no display name mapping",
		Value:   value,
	}
}

// NewInvalidEnumValueError creates an error for a persisted enum value that is
// not a recognized member
func NewInvalidEnumValueError(enum, value string) *OrganizationError {
	return &OrganizationError{
		Type:    ErrTypeInvalidEnumValue,
		Message: fmt.Sprintf("value is not a member of %s", enum),
		Value:   value,
	}
}

// NewInvalidStatusTransitionError creates an error for a lifecycle transition
// that is not allowed from the current status
func NewInvalidStatusTransitionError(organizationID, from, to string) *OrganizationError {
	return &OrganizationError{
		Type:           ErrTypeInvalidStatusTransition,
		Message:        fmt.Sprintf("cannot transition from %s to %s", from, to),
		OrganizationID: organizationID,
	}
}

// NewSlugTakenError creates an error for a slug already used by another
// organization (slugs are unique ignoring case)
func NewSlugTakenError(slug string) *OrganizationError {
	return &OrganizationError{
		Type:    ErrTypeSlugTaken,
		Message: "organization slug is already taken",
		Value:   slug,
	}
}

// NewInvalidReviewThresholdError creates an error for a negative review threshold
func NewInvalidReviewThresholdError(organizationID string, threshold int) *OrganizationError {
	return &OrganizationError{
		Type:           ErrTypeInvalidReviewThreshold,
		Message:        fmt.Sprintf("next review threshold must be >= 0, got %d", threshold),
		OrganizationID: organizationID,
	}
}
