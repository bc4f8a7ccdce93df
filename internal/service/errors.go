package service

import "errors"

// Common service errors
var (
	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrClientNotFound is returned when a client is not found
	ErrClientNotFound = errors.New("client not found")

	// ErrClientInactive is returned when an order targets a deactivated client
	ErrClientInactive = errors.New("client is inactive")

	// ErrPurchaseOrderNotFound is returned when a purchase order is not found
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")

	// ErrDeliveryOrderNotFound is returned when a delivery order is not found
	ErrDeliveryOrderNotFound = errors.New("delivery order not found")

	// ErrInvoiceNotFound is returned when an invoice is not found
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrAlertNotFound is returned when an alert is not found
	ErrAlertNotFound = errors.New("alert not found")

	// ErrFileNotFound is returned when a file is not found
	ErrFileNotFound = errors.New("file not found")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidTransition is returned when a status change is not allowed
	// from the entity's current state
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyVerified is returned when a delivery order already carries
	// a proof of delivery
	ErrAlreadyVerified = errors.New("delivery order already verified")

	// ErrImageRequired is returned when a delivery verification is missing
	// its proof image
	ErrImageRequired = errors.New("delivery image is required")

	// ErrImageTooLarge is returned when the proof image exceeds the size limit
	ErrImageTooLarge = errors.New("delivery image exceeds maximum size")

	// ErrUnsupportedImageType is returned for proof images that are not
	// jpeg, png or webp
	ErrUnsupportedImageType = errors.New("unsupported delivery image type")

	// ErrInvoiceAlreadyPaid is returned when paying an invoice twice
	ErrInvoiceAlreadyPaid = errors.New("invoice already paid")
)
