package store

import "errors"

// Error Handling Guidelines:
// - Stores return apperrors for outcomes a caller can act on (not found, forbidden, duplicate)
// - Unexpected database failures are wrapped with fmt.Errorf("context: %w", err)
// - The sentinels below are for conditions services branch on

var (
	// ErrSlugTaken is returned when a location slug collides with an existing one.
	ErrSlugTaken = errors.New("slug already taken")

	// ErrIntegrity means stored rows violate a relationship the schema should guarantee,
	// e.g. stops whose trip no longer exists.
	ErrIntegrity = errors.New("referential integrity violation")
)
