package tenant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// infoPath is the directory endpoint translating an identifier into a tenant record.
const infoPath = "/api/marketplace/client/info"

// maxResponseBody caps directory response reads; tenant records are small.
const maxResponseBody = 1 << 20

// infoEnvelope is the directory response shape. Only error:false with a
// present client is a success; an absent client payload means the tenant
// does not exist, and an explicit error flag is a failed lookup.
type infoEnvelope struct {
	Error   bool    `json:"error"`
	Client  *Tenant `json:"client,omitempty"`
	Message string  `json:"message,omitempty"`
}

// HTTPDirectory looks tenants up over the platform's REST API.
// It performs exactly one request per Lookup and never retries;
// the caller owns the retry policy.
type HTTPDirectory struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// DirectoryOption configures an HTTPDirectory.
type DirectoryOption func(*HTTPDirectory)

// WithHTTPClient sets a custom HTTP client, e.g. with a shorter timeout.
func WithHTTPClient(client *http.Client) DirectoryOption {
	return func(d *HTTPDirectory) {
		if client != nil {
			d.client = client
		}
	}
}

// WithDirectoryLogger sets a logger for transport and decode failures.
func WithDirectoryLogger(log *slog.Logger) DirectoryOption {
	return func(d *HTTPDirectory) {
		if log != nil {
			d.log = log
		}
	}
}

// NewHTTPDirectory creates a directory client against the given API base URL.
func NewHTTPDirectory(baseURL string, opts ...DirectoryOption) *HTTPDirectory {
	d := &HTTPDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lookup translates an identifier into a full tenant record.
func (d *HTTPDirectory) Lookup(ctx context.Context, identifier string) (*Tenant, error) {
	if identifier == "" {
		return nil, ErrTenantNotFound
	}

	endpoint := d.baseURL + infoPath + "?identifier=" + url.QueryEscape(identifier)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.ErrorContext(ctx, "tenant directory request failed",
			slog.String("identifier", identifier), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrTenantNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		d.log.ErrorContext(ctx, "tenant directory returned non-success status",
			slog.String("identifier", identifier), slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransportFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	var envelope infoEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		d.log.ErrorContext(ctx, "tenant directory response undecodable",
			slog.String("identifier", identifier), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// An explicit error flag is the backend rejecting the lookup, distinct
	// from an absent record: the former fails the resolution, the latter
	// is a plain miss. Neither ever crashes the caller.
	if envelope.Error {
		d.log.WarnContext(ctx, "tenant directory rejected lookup",
			slog.String("identifier", identifier), slog.String("message", envelope.Message))
		if envelope.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrLookupRejected, envelope.Message)
		}
		return nil, ErrLookupRejected
	}
	if envelope.Client == nil {
		if envelope.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, envelope.Message)
		}
		return nil, ErrTenantNotFound
	}

	if envelope.Client.ID == "" {
		d.log.ErrorContext(ctx, "tenant directory success envelope missing id",
			slog.String("identifier", identifier))
		return nil, fmt.Errorf("%w: success envelope missing tenant id", ErrMalformedResponse)
	}

	return envelope.Client, nil
}
