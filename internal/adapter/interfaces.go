// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the document service.
//
// The primary abstraction is [ServerAdapter], which decouples the service layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty, with idempotent calls wrapped in a
// [RetryPolicy].
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401). The
// server's message travels in a [*StatusError].
package adapter

import (
	"context"

	"github.com/YuvrajShekhar/docmanager-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the document
// service. Implementations are responsible for serialisation, authentication
// header management, retries and mapping transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer access token attached to all subsequent
	// authenticated requests. An empty token clears it.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Login exchanges credentials for an access/refresh token pair and the
	// user profile. On success the access token is stored via SetToken.
	// Login is never retried.
	Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error)

	// Refresh exchanges a refresh token for a new access token, stores it via
	// SetToken and returns it. Refresh is never retried.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Logout tells the server to blacklist refreshToken. The response body
	// is ignored.
	Logout(ctx context.Context, refreshToken string) error

	// Me returns the profile of the user owning the current access token.
	Me(ctx context.Context) (models.User, error)

	// ListTemplates returns every template known to the service.
	ListTemplates(ctx context.Context) ([]models.TemplateItem, error)

	// GetPlaceholders returns the placeholder schema, metadata and layout of
	// a template.
	GetPlaceholders(ctx context.Context, filename string) (models.PlaceholderSchema, error)

	// GenerateDocument renders a template with the given context and returns
	// the produced binary document.
	GenerateDocument(ctx context.Context, req models.GenerateRequest) (models.GeneratedDocument, error)

	// ValidateDocument uploads a .docx file and returns the normalised
	// validation result. Names without a .docx suffix are rejected with
	// [ErrUnsupportedFile] before any request is made.
	ValidateDocument(ctx context.Context, filename string, content []byte) (models.ValidationResult, error)
}
