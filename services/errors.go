package services

import "errors"

// Общие ошибки сервисного слоя, маппятся на HTTP-статусы в handlers.
var (
	// Lookup: benign "nothing to do" conditions.
	ErrCompetitorNotFound = errors.New("competitor not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	ErrMappingNotFound    = errors.New("ring mapping not found")

	// Validation and business rules.
	ErrValidationFailed     = errors.New("validation failed")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrDivisionRequired     = errors.New("division is required")
	ErrRingNameRequired     = errors.New("ring name is required")
	ErrInvalidAltRing       = errors.New("alternate ring tag must be 'a', 'b' or empty")
	ErrEmptyRoster          = errors.New("roster import requires at least one competitor")

	// Auth.
	ErrInvalidCredentials = errors.New("invalid operator name or password")

	// Persistence.
	ErrSnapshotStoreNotConfigured = errors.New("no snapshot backend configured")
	ErrNoSavedDataset             = errors.New("no saved dataset to restore")
)
