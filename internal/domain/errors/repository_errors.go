package errors

import "errors"

var (
	// ErrOrganizationNotFound indicates that no organization matches the given id or slug
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrAccountNotFound indicates that the referenced payout account does not exist
	ErrAccountNotFound = errors.New("account not found")
)
