// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// docmanager client.
//
// The Backend* constants are the exact error strings the document service
// writes into {"error": ...} bodies; the adapter and session code compare
// against them. The Msg* constants are the sentences shown to the user when
// an operation fails. Keeping both in one place keeps wording consistent
// between the terminal UI and the logs.
package app

// Error strings emitted by the document service.
const (
	BackendFilenameRequired    = "filename is required"
	BackendNoFileProvided      = "No file provided"
	BackendOnlyDocx            = "Only .docx files are allowed"
	BackendValidationFailed    = "Validation failed"
	BackendMissingCredentials  = "Please provide both username and password"
	BackendInvalidCredentials  = "Invalid credentials"
	BackendAccountDisabled     = "User account is disabled"
	BackendRefreshRequired     = "Refresh token is required"
	BackendInvalidRefreshToken = "Invalid or expired refresh token"
	BackendInvalidToken        = "Invalid token"
)

// User-facing messages.
const (
	// MsgBadRequest is shown for HTTP 400 responses without a usable body.
	MsgBadRequest = "Invalid request. Please check your input."

	// MsgUnauthorized is shown when the session is missing or expired.
	MsgUnauthorized = "Authentication required. Please log in."

	// MsgForbidden is shown for HTTP 403.
	MsgForbidden = "You don't have permission to access this resource."

	// MsgNotFound is shown for HTTP 404, e.g. a template deleted meanwhile.
	MsgNotFound = "The requested resource was not found."

	// MsgPayloadTooLarge is shown when an upload exceeds the server limit.
	MsgPayloadTooLarge = "The file is too large to upload."

	// MsgTooManyRequests is shown for HTTP 429.
	MsgTooManyRequests = "Too many requests. Please try again later."

	// MsgServerError is shown for HTTP 500.
	MsgServerError = "Server error. Please try again later."

	// MsgServiceUnavailable is shown for HTTP 502, 503 and 504.
	MsgServiceUnavailable = "Service temporarily unavailable. Please try again."

	// MsgNetwork is shown when the server cannot be reached at all.
	MsgNetwork = "Unable to connect to the server. Please check your internet connection."

	// MsgTimeout is shown when a request runs past its deadline.
	MsgTimeout = "The request took too long. Please try again."

	// MsgUnexpected is the fallback for errors without a better description.
	MsgUnexpected = "An unexpected error occurred."

	// MsgUnsupportedFile is shown when a non-.docx file is picked for
	// validation.
	MsgUnsupportedFile = BackendOnlyDocx

	// MsgFixFormErrors is shown when a submission is refused because of
	// field errors.
	MsgFixFormErrors = "Please fix the highlighted fields."
)
