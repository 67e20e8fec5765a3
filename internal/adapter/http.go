package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/YuvrajShekhar/docmanager-client/internal/config"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/utils"
	"github.com/YuvrajShekhar/docmanager-client/models"
	"github.com/go-resty/resty/v2"
)

const (
	pathTemplates    = "/api/templates/"
	pathPlaceholders = "/api/placeholders/"
	pathGenerate     = "/api/generateDoc/"
	pathValidate     = "/api/validateDoc/"
	pathLogin        = "/api/auth/login/"
	pathRefresh      = "/api/auth/refresh/"
	pathLogout       = "/api/auth/logout/"
	pathMe           = "/api/auth/me/"

	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	retry  RetryPolicy

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL, request
// timeout and retry policy.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		retry:  NewRetryPolicy(adapterCfg.Retry),
		logger: log,
	}
	a.retry.OnRetry = func(attempt int, err error) {
		a.logger.Warn().Err(err).Int("attempt", attempt).Str("func", "httpServerAdapter.retry").Msg("retrying request")
	}

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login/ and stores the returned access token.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return models.LoginResponse{}, ErrEmptyCredentials
	}

	var out models.LoginResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post(pathLogin)
	if err != nil {
		return models.LoginResponse{}, mapTransportError("login", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.LoginResponse{}, fmt.Errorf("%w: decode login response: %w", ErrInvalidResponse, err)
	}
	if out.Access == "" {
		return models.LoginResponse{}, fmt.Errorf("%w: login response has no access token", ErrInvalidResponse)
	}

	h.SetToken(out.Access)
	return out, nil
}

// Refresh implements [ServerAdapter]. It POSTs the refresh token to
// POST /api/auth/refresh/ and stores the new access token.
func (h *httpServerAdapter) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var out models.RefreshResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{Refresh: refreshToken}).
		Post(pathRefresh)
	if err != nil {
		return "", mapTransportError("refresh", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("%w: decode refresh response: %w", ErrInvalidResponse, err)
	}
	if out.Access == "" {
		return "", fmt.Errorf("%w: refresh response has no access token", ErrInvalidResponse)
	}

	h.SetToken(out.Access)
	return out.Access, nil
}

// Logout implements [ServerAdapter]. It POSTs the refresh token to
// POST /api/auth/logout/ with the current bearer token.
func (h *httpServerAdapter) Logout(ctx context.Context, refreshToken string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{Refresh: refreshToken}).
		Post(pathLogout)
	if err != nil {
		return mapTransportError("logout", err)
	}
	return mapHTTPError(resp)
}

// Me implements [ServerAdapter]. It GETs /api/auth/me/.
func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := h.retry.Do(ctx, func(ctx context.Context) error {
		resp, err := h.authedRequest(ctx).Get(pathMe)
		if err != nil {
			return mapTransportError("me", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}
		if err = json.Unmarshal(resp.Body(), &user); err != nil {
			return fmt.Errorf("%w: decode user: %w", ErrInvalidResponse, err)
		}
		return nil
	})
	return user, err
}

// ListTemplates implements [ServerAdapter]. It GETs /api/templates/ and
// unwraps the {"files": [...]} envelope.
func (h *httpServerAdapter) ListTemplates(ctx context.Context) ([]models.TemplateItem, error) {
	var list models.TemplateList
	err := h.retry.Do(ctx, func(ctx context.Context) error {
		resp, err := h.authedRequest(ctx).Get(pathTemplates)
		if err != nil {
			return mapTransportError("list templates", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}
		if err = json.Unmarshal(resp.Body(), &list); err != nil {
			return fmt.Errorf("%w: decode template list: %w", ErrInvalidResponse, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if list.Files == nil {
		return []models.TemplateItem{}, nil
	}
	return list.Files, nil
}

// GetPlaceholders implements [ServerAdapter]. It POSTs {"filename"} to
// /api/placeholders/.
func (h *httpServerAdapter) GetPlaceholders(ctx context.Context, filename string) (models.PlaceholderSchema, error) {
	var schema models.PlaceholderSchema
	err := h.retry.Do(ctx, func(ctx context.Context) error {
		schema = models.PlaceholderSchema{}
		resp, err := h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(models.PlaceholdersRequest{Filename: filename}).
			Post(pathPlaceholders)
		if err != nil {
			return mapTransportError("get placeholders", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}
		if err = json.Unmarshal(resp.Body(), &schema); err != nil {
			return fmt.Errorf("%w: decode placeholders: %w", ErrInvalidResponse, err)
		}
		return nil
	})
	return schema, err
}

// GenerateDocument implements [ServerAdapter]. It POSTs {"filename",
// "context"} to /api/generateDoc/ and returns the binary body. The file
// name comes from Content-Disposition when present.
func (h *httpServerAdapter) GenerateDocument(ctx context.Context, req models.GenerateRequest) (models.GeneratedDocument, error) {
	var doc models.GeneratedDocument
	err := h.retry.Do(ctx, func(ctx context.Context) error {
		resp, err := h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", docxContentType+", application/json").
			SetBody(req).
			Post(pathGenerate)
		if err != nil {
			return mapTransportError("generate document", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}

		doc = models.GeneratedDocument{
			Filename:    attachmentFilename(resp.Header().Get("Content-Disposition")),
			ContentType: resp.Header().Get("Content-Type"),
			Content:     resp.Body(),
		}
		if doc.ContentType == "" {
			doc.ContentType = docxContentType
		}
		return nil
	})
	return doc, err
}

// ValidateDocument implements [ServerAdapter]. It uploads content as the
// multipart field "file" to /api/validateDoc/ and normalises the polymorphic
// issues payload.
func (h *httpServerAdapter) ValidateDocument(ctx context.Context, filename string, content []byte) (models.ValidationResult, error) {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if !strings.HasSuffix(strings.ToLower(name), ".docx") {
		return models.ValidationResult{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
	}

	var res models.ValidationResponse
	err := h.retry.Do(ctx, func(ctx context.Context) error {
		res = models.ValidationResponse{}
		resp, err := h.authedRequest(ctx).
			SetFileReader("file", name, bytes.NewReader(content)).
			Post(pathValidate)
		if err != nil {
			return mapTransportError("validate document", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}
		if err = json.Unmarshal(resp.Body(), &res); err != nil {
			return fmt.Errorf("%w: decode validation response: %w", ErrInvalidResponse, err)
		}
		return nil
	})
	if err != nil {
		return models.ValidationResult{}, err
	}

	result := res.Normalize()
	if result.Filename == "" {
		result.Filename = name
	}
	return result, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if requestID, ok := utils.GetRequestIDFromContext(ctx); ok {
		req.SetHeader("X-Request-ID", requestID)
	}
	return req
}

// attachmentFilename returns the filename parameter of a Content-Disposition
// header, or "" when the header is absent or malformed.
func attachmentFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := params["filename"]
	if name == "" {
		return ""
	}
	if name = path.Base(name); name == "." || name == "/" {
		return ""
	}
	return name
}
