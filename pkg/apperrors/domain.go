package apperrors

import (
	"net/http"
)

// Factories and predefined variables for common business-logic errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict builds a 409 for a named domain.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for an operation the current state forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 400 for an unknown or disallowed status value.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrInsufficientPermissions is returned when a user acts outside their role.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Intake & files ---

// ErrFileTooLarge: staged file exceeds the configured size limit.
var ErrFileTooLarge = New(
	CodeFileTooLarge,
	"intake",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType: the file's MIME type is not allowed for the slot.
var ErrInvalidFileType = New(
	CodeInvalidFileType,
	"intake",
	"File type is not allowed",
	http.StatusBadRequest,
)

// ErrStepIncomplete: a wizard step's required fields are missing.
func ErrStepIncomplete(details interface{}) *AppError {
	return New(CodeStepIncomplete, "intake", "Current step is incomplete", http.StatusBadRequest).
		WithDetails(details)
}

// --- Invitation / NDA gate ---

// ErrNDARequired: the contractor has not signed the NDA, so the action is gated.
var ErrNDARequired = New(
	CodeNDARequired,
	"invitation",
	"NDA must be signed before this action",
	http.StatusForbidden,
)

// ErrInvitationClosed: accept/decline on a terminal invitation.
var ErrInvitationClosed = New(
	CodeConflict,
	"invitation",
	"Invitation has already been accepted or declined",
	http.StatusConflict,
)

// --- Auction / bids ---

// ErrAuctionClosed: the auction is no longer accepting bids.
var ErrAuctionClosed = New(
	CodeInvalidStatus,
	"auction",
	"Auction is closed",
	http.StatusConflict,
)

// ErrAuctionStillOpen: deletion is only allowed once the auction has closed.
var ErrAuctionStillOpen = New(
	CodeInvalidOperation,
	"auction",
	"Auction must be closed before it can be deleted",
	http.StatusConflict,
)

// ErrInvalidBidAmount: bids must carry a positive amount.
var ErrInvalidBidAmount = New(
	CodeValidationFailed,
	"bid",
	"Bid amount must be a positive number",
	http.StatusBadRequest,
)
